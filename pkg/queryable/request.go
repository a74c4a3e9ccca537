package queryable

import (
	"context"
	"net/http"

	"github.com/odqkit/odq/pkg/httpclient"
)

// Transport issues a fully composed request and returns the raw response.
// Retry policy belongs to implementations, never to the composition core.
type Transport interface {
	Send(ctx context.Context, verb, absoluteURL string, opts *RequestOptions) (*http.Response, error)
}

// Batch aggregates deferred requests. RegisterDependency returns a release
// callback; the batch must not finalize until every outstanding release
// has been invoked. Callers must release on failure paths too, or the
// batch deadlocks waiting on the dependency.
type Batch interface {
	RegisterDependency() (release func())
}

// Parser turns a raw response into a typed result.
type Parser interface {
	Parse(resp *http.Response) (any, error)
}

// URLResolver returns the absolute form of a possibly relative URL. The
// lookup may require network or cached state, hence the context.
type URLResolver interface {
	ToAbsolute(ctx context.Context, rawURL string) (string, error)
}

// Sender executes a request described by its context.
type Sender func(ctx context.Context, rc *RequestContext) (*http.Response, error)

// Middleware wraps a Sender with additional processing.
type Middleware func(next Sender) Sender

// Pipeline is the ordered middleware chain a descriptor is executed
// through. The first element is outermost.
type Pipeline []Middleware

// Apply wraps base with the pipeline's middlewares.
func (p Pipeline) Apply(base Sender) Sender {
	for i := len(p) - 1; i >= 0; i-- {
		base = p[i](base)
	}
	return base
}

// RequestContext is the immutable dispatch-ready descriptor produced by
// Build. The dispatch layer owns invoking Release once the request has
// actually been queued or sent, on failure paths as well.
type RequestContext struct {
	Batch         Batch
	Release       func()
	Caching       *CachingDirective
	ClientFactory httpclient.Factory
	InBatch       bool
	CacheEligible bool
	Options       *RequestOptions
	Parser        Parser
	Pipeline      Pipeline
	URL           string
	RequestID     string
	Verb          string
}
