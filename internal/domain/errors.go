package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can decide whether to skip or abort.
type ErrorKind string

const (
	// KindNetwork covers page loads and document downloads. Non-fatal: skip the unit of work.
	KindNetwork ErrorKind = "network"
	// KindParse covers unreadable or corrupt documents. Non-fatal: skip the document.
	KindParse ErrorKind = "parse"
	// KindWrite covers artifact persistence. Non-fatal: the artifact is considered absent.
	KindWrite ErrorKind = "write"
	// KindConfig covers invalid configuration and session setup. Fatal.
	KindConfig ErrorKind = "config"
	// KindUnexpected is anything unclassified. Fatal at the orchestrator level.
	KindUnexpected ErrorKind = "unexpected"
)

// Error is a classified error carrying the operation that produced it.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a classified error.
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func NetworkError(op string, err error) *Error { return NewError(KindNetwork, op, err) }
func ParseError(op string, err error) *Error   { return NewError(KindParse, op, err) }
func WriteError(op string, err error) *Error   { return NewError(KindWrite, op, err) }
func ConfigError(op string, err error) *Error  { return NewError(KindConfig, op, err) }

// KindOf returns the kind of the first classified error in err's chain, or KindUnexpected.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
