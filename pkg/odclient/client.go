// Package odclient executes request descriptors produced by the
// composition core against a concrete service: it resolves relative URLs
// against the configured service root, issues the HTTP request through an
// injectable transport, and parses the OData response payload.
package odclient

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/odqkit/odq/pkg/config"
	"github.com/odqkit/odq/pkg/httpclient"
	"github.com/odqkit/odq/pkg/odurl"
	"github.com/odqkit/odq/pkg/queryable"
	"github.com/odqkit/odq/pkg/requestid"
)

const tracerName = "github.com/odqkit/odq/pkg/odclient"

// Client binds the composition core to one target service.
type Client struct {
	base              string
	doer              httpclient.HTTPDoer
	factory           httpclient.Factory
	options           *queryable.RequestOptions
	pipeline          queryable.Pipeline
	logger            *log.Logger
	tracer            trace.Tracer
	correlationHeader string
	defaultCaching    bool
}

type Option func(*Client)

// WithDoer injects the transport client; tests use a recording fake.
func WithDoer(d httpclient.HTTPDoer) Option {
	return func(c *Client) { c.doer = d }
}

// WithFactory sets the factory carried into request descriptors.
func WithFactory(f httpclient.Factory) Option {
	return func(c *Client) { c.factory = f }
}

// WithOptions sets the request options applied to every node created from
// this client.
func WithOptions(o *queryable.RequestOptions) Option {
	return func(c *Client) { c.options = o.Clone() }
}

// WithPipeline replaces the default processing pipeline.
func WithPipeline(p queryable.Pipeline) Option {
	return func(c *Client) { c.pipeline = p }
}

// WithLogger routes request logging to l instead of the process logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithCorrelationHeader overrides the header carrying the correlation id.
func WithCorrelationHeader(key string) Option {
	return func(c *Client) { c.correlationHeader = key }
}

// WithDefaultCaching marks every GET built from this client cache-eligible.
func WithDefaultCaching() Option {
	return func(c *Client) { c.defaultCaching = true }
}

// New returns a client rooted at the absolute service URL baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:              strings.TrimSuffix(baseURL, "/"),
		options:           &queryable.RequestOptions{},
		tracer:            otel.Tracer(tracerName),
		correlationHeader: requestid.DefaultHeaderKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.factory == nil {
		if c.doer != nil {
			doer := c.doer
			c.factory = func() httpclient.HTTPDoer { return doer }
		} else {
			c.factory = httpclient.DefaultFactory
		}
	}
	if c.doer == nil {
		c.doer = c.factory()
	}
	if c.pipeline == nil {
		c.pipeline = queryable.Pipeline{
			CorrelationHeader(c.correlationHeader),
			RequestLogger(c.logger),
		}
	}
	return c
}

// NewFromProfile builds a client from a loaded profile.
func NewFromProfile(p *config.Profile, opts ...Option) *Client {
	headers := make(http.Header, len(p.Headers))
	for k, v := range p.Headers {
		headers.Set(k, v)
	}
	timeout := p.Timeout()
	base := []Option{
		WithFactory(func() httpclient.HTTPDoer { return httpclient.New(timeout) }),
		WithOptions(&queryable.RequestOptions{Headers: headers, Credentials: p.Credentials}),
		WithCorrelationHeader(p.CorrelationHeader),
	}
	if p.UseCaching {
		base = append(base, WithDefaultCaching())
	}
	return New(p.BaseURL, append(base, opts...)...)
}

// BaseURL returns the service root this client resolves against.
func (c *Client) BaseURL() string { return c.base }

// Collection returns a collection node rooted at the service base.
func (c *Client) Collection(paths ...string) *queryable.Collection {
	col := queryable.NewCollection(c.base, paths...)
	c.bind(col.Queryable)
	return col
}

// Instance returns a single-instance node rooted at the service base.
func (c *Client) Instance(paths ...string) *queryable.Instance {
	inst := queryable.NewInstance(c.base, paths...)
	c.bind(inst.Queryable)
	return inst
}

func (c *Client) bind(q *queryable.Queryable) {
	q.UseResolver(c)
	q.UseClientFactory(c.factory)
	q.Configure(c.options)
	if c.defaultCaching {
		q.UsingCaching(nil)
	}
}

// ToAbsolute implements queryable.URLResolver against the configured
// service root.
func (c *Client) ToAbsolute(ctx context.Context, rawURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if odurl.IsAbsolute(rawURL) {
		return rawURL, nil
	}
	if c.base == "" {
		return "", fmt.Errorf("cannot resolve relative url %q without a service root", rawURL)
	}
	return odurl.Combine(c.base, rawURL), nil
}

// Send implements queryable.Transport using the client's own doer.
func (c *Client) Send(ctx context.Context, verb, absoluteURL string, opts *queryable.RequestOptions) (*http.Response, error) {
	req, err := newRequest(ctx, verb, absoluteURL, opts)
	if err != nil {
		return nil, err
	}
	return c.doer.Do(req)
}

// Execute runs a built descriptor through its pipeline, dispatches it and
// parses the response. The descriptor's release callback is invoked on
// every path, success or failure, so a pending batch never waits on a
// request that already finished.
func (c *Client) Execute(ctx context.Context, rc *queryable.RequestContext) (any, error) {
	defer rc.Release()

	ctx, span := c.tracer.Start(ctx, "odq.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", rc.Verb),
			attribute.String("url.full", rc.URL),
		),
	)
	defer span.End()

	send := rc.Pipeline.Apply(c.dispatch)
	resp, err := send(ctx, rc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return nil, fmt.Errorf("send %s %s: %w", rc.Verb, rc.URL, err)
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	parser := rc.Parser
	if parser == nil {
		parser = ODataParser{}
	}
	out, err := parser.Parse(resp)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse failure")
		return nil, err
	}
	return out, nil
}

// Get builds and executes a GET for the node using the client's pipeline
// and the default OData parser.
func (c *Client) Get(ctx context.Context, q *queryable.Queryable) (any, error) {
	rc, err := q.Build(ctx, http.MethodGet, nil, ODataParser{}, c.pipeline)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, rc)
}

// Post builds and executes a POST carrying body for the node.
func (c *Client) Post(ctx context.Context, q *queryable.Queryable, body []byte) (any, error) {
	rc, err := q.Build(ctx, http.MethodPost, &queryable.RequestOptions{Body: body}, ODataParser{}, c.pipeline)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, rc)
}

// dispatch is the innermost sender: it materializes the descriptor into an
// *http.Request and issues it. The descriptor's client factory is the
// fallback for callers without a transport of their own (a batch executor
// replaying deferred descriptors); this client always has one.
func (c *Client) dispatch(ctx context.Context, rc *queryable.RequestContext) (*http.Response, error) {
	doer := c.doer
	if doer == nil && rc.ClientFactory != nil {
		doer = rc.ClientFactory()
	}
	req, err := newRequest(ctx, rc.Verb, rc.URL, rc.Options)
	if err != nil {
		return nil, err
	}
	return doer.Do(req)
}

func newRequest(ctx context.Context, verb, absoluteURL string, opts *queryable.RequestOptions) (*http.Request, error) {
	var body *bytes.Reader
	if opts != nil && len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, strings.ToUpper(verb), absoluteURL, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, strings.ToUpper(verb), absoluteURL, http.NoBody)
	}
	if err != nil {
		return nil, fmt.Errorf("compose %s %s: %w", verb, absoluteURL, err)
	}
	// Serialized query values carry raw spaces ("$filter=Id eq 1"); the
	// request line must not.
	if req.URL.RawQuery != "" {
		req.URL.RawQuery = strings.ReplaceAll(req.URL.RawQuery, " ", "%20")
	}
	if opts != nil {
		for k, vs := range opts.Headers {
			req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
		}
	}
	return req, nil
}
