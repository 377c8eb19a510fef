package fetcher

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
)

var (
	// ErrTooManyRedirects is returned when a document download exceeds the redirect cap.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrUnsupportedRedirect is returned when a download is redirected away from http(s).
	ErrUnsupportedRedirect = errors.New("redirect to unsupported scheme")
)

// RedirectPolicy caps document downloads at maxHops redirects (fetcher.max_redirects).
// A non-positive cap falls back to config.DefaultMaxRedirects. CDN links commonly redirect
// once or twice to a signed object URL; only http and https targets are followed.
func RedirectPolicy(maxHops int) func(*http.Request, []*http.Request) error {
	if maxHops <= 0 {
		maxHops = config.DefaultMaxRedirects
	}
	return func(req *http.Request, via []*http.Request) error {
		if scheme := req.URL.Scheme; scheme != "http" && scheme != "https" {
			return fmt.Errorf("%w: %s", ErrUnsupportedRedirect, req.URL.Redacted())
		}
		if len(via) >= maxHops {
			return fmt.Errorf("%w: %d hops, last %s", ErrTooManyRedirects, len(via), req.URL.Redacted())
		}
		return nil
	}
}
