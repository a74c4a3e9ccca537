// Package httpclient holds the transport seam between request composition
// and request execution.
package httpclient

import (
	"net/http"
	"time"
)

// HTTPDoer captures the subset of *http.Client the composition and
// execution packages rely on. Tests inject fake implementations of this
// interface so they can run offline without issuing real requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Factory produces a fresh low-level transport client. A request
// descriptor carries one of these so the dispatch layer can obtain a
// client without knowing how it is configured.
type Factory func() HTTPDoer

const DefaultTimeout = 30 * time.Second

// DefaultFactory returns clients suited to an API consumer: a bounded
// overall timeout and no redirect following, since the service answers
// redirects with authentication round-trips the caller must handle.
func DefaultFactory() HTTPDoer {
	return New(DefaultTimeout)
}

// New returns an *http.Client with the given overall timeout.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
