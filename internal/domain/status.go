package domain

// Status is the terminal outcome of processing one document.
type Status string

const (
	StatusSuccess         Status = "success"
	StatusSkippedExisting Status = "skipped_existing"
	StatusFailedNetwork   Status = "failed_network"
	StatusFailedParse     Status = "failed_parse"
	StatusFailedWrite     Status = "failed_write"
)

// Statuses lists every status in reporting order.
var Statuses = []Status{
	StatusSuccess,
	StatusSkippedExisting,
	StatusFailedNetwork,
	StatusFailedParse,
	StatusFailedWrite,
}

// Failed reports whether the status is one of the failure outcomes.
func (s Status) Failed() bool {
	switch s {
	case StatusFailedNetwork, StatusFailedParse, StatusFailedWrite:
		return true
	default:
		return false
	}
}

// StatusFor maps a non-fatal error kind to its document status.
// The boolean is false for kinds that must abort the run.
func StatusFor(kind ErrorKind) (Status, bool) {
	switch kind {
	case KindNetwork:
		return StatusFailedNetwork, true
	case KindParse:
		return StatusFailedParse, true
	case KindWrite:
		return StatusFailedWrite, true
	default:
		return "", false
	}
}
