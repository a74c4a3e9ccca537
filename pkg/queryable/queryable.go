// Package queryable implements the request-composition core: a
// hierarchical description of a resource path plus its accumulated query
// modifiers, and the translation of that description into a dispatch-ready
// request descriptor.
package queryable

import (
	"github.com/odqkit/odq/pkg/httpclient"
	"github.com/odqkit/odq/pkg/odurl"
)

// targetKey addresses a resource on a different host than the ambient
// context. Once present it propagates unchanged to every derived node.
const targetKey = "@target"

// Queryable represents one addressable resource: its composed URL, the URL
// of its logical parent, and the accumulated not-yet-serialized query
// parameters.
//
// Fluent mutators return the receiver and mutate shared state in place.
// Branching a chain by holding an intermediate reference and applying two
// different suffixes mutates the same node; take an explicit Clone first.
type Queryable struct {
	url       string
	parentURL string
	query     *odurl.Params
	options   *RequestOptions

	caching    *CachingDirective
	useCaching bool
	batch      Batch

	resolver      URLResolver
	clientFactory httpclient.Factory
}

// New derives a node from a base URL string and optional path suffixes,
// applying the service's separator-vs-parenthesis path grammar.
func New(base string, paths ...string) *Queryable {
	url, parent := odurl.Resolve(base, odurl.Combine("", paths...))
	return &Queryable{
		url:       url,
		parentURL: parent,
		query:     odurl.NewParams(),
		options:   &RequestOptions{},
	}
}

// From derives a child node from an existing node. The parent's URL becomes
// the child's base, and the parent's query and options are copied by value:
// the child never observes later mutations of the parent's accumulator. A
// batch association is not inherited; re-attach one with InBatch.
func From(parent *Queryable, paths ...string) *Queryable {
	return &Queryable{
		url:           odurl.Combine(parent.url, paths...),
		parentURL:     parent.url,
		query:         parent.query.Clone(),
		options:       parent.options.Clone(),
		resolver:      parent.resolver,
		clientFactory: parent.clientFactory,
	}
}

// URL returns the composed resource URL without its query string.
func (q *Queryable) URL() string { return q.url }

// ParentURL returns the URL of the logical parent resource.
func (q *Queryable) ParentURL() string { return q.parentURL }

// Query exposes the parameter accumulator for fluent modifiers.
func (q *Queryable) Query() *odurl.Params { return q.query }

// Concat appends a raw suffix to the composed URL without re-running path
// resolution; the parent URL is unchanged.
func (q *Queryable) Concat(path string) *Queryable {
	q.url += path
	return q
}

// Configure merges o into the node's request options. Values set here
// override per-call options supplied later to Build.
func (q *Queryable) Configure(o *RequestOptions) *Queryable {
	q.options = MergeOptions(q.options, o)
	return q
}

// UsingCaching marks the node's eventual request as cache-eligible and
// records the directive to pass through to the dispatch layer. The
// directive is opaque here; eligibility still requires a GET verb.
func (q *Queryable) UsingCaching(directive *CachingDirective) *Queryable {
	q.useCaching = true
	q.caching = directive
	return q
}

// InBatch defers the node's eventual request into b instead of issuing it
// immediately.
func (q *Queryable) InBatch(b Batch) *Queryable {
	q.batch = b
	return q
}

// UseResolver sets the absolute-URL resolver consulted by Build.
func (q *Queryable) UseResolver(r URLResolver) *Queryable {
	q.resolver = r
	return q
}

// UseClientFactory sets the transport-client factory carried into the
// request descriptor.
func (q *Queryable) UseClientFactory(f httpclient.Factory) *Queryable {
	q.clientFactory = f
	return q
}

// Clone returns an independent copy of the node: same URLs, query and
// options copied by value. The batch association is deliberately not
// carried over; callers re-attach with InBatch when the copy should join
// the same batch.
func (q *Queryable) Clone() *Queryable {
	return &Queryable{
		url:           q.url,
		parentURL:     q.parentURL,
		query:         q.query.Clone(),
		options:       q.options.Clone(),
		caching:       q.caching,
		useCaching:    q.useCaching,
		resolver:      q.resolver,
		clientFactory: q.clientFactory,
	}
}

// GetParent derives the node addressing the logical parent resource. The
// parent starts with a fresh accumulator; only a cross-host target entry
// survives the derivation.
func (q *Queryable) GetParent() *Queryable {
	p := &Queryable{
		url:           q.parentURL,
		parentURL:     q.parentURL,
		query:         odurl.NewParams(),
		options:       q.options.Clone(),
		resolver:      q.resolver,
		clientFactory: q.clientFactory,
	}
	if target, ok := q.query.Get(targetKey); ok {
		p.query.Add(targetKey, target)
	}
	return p
}

// ToURLAndQuery serializes the composed URL and accumulated parameters,
// including the aliased-parameter rewrite. It is synchronous, has no side
// effects on the accumulator, and is idempotent between mutations.
func (q *Queryable) ToURLAndQuery() string {
	return odurl.Serialize(q.url, q.query)
}

// Snapshot is the URL and query state handed to an As factory.
type Snapshot struct {
	URL       string
	ParentURL string
	Query     *odurl.Params
	Options   *RequestOptions
}

// As reinterprets the node's current URL and query state as a different
// resource type through factory. The snapshot carries value copies, so the
// new node and the original do not share accumulator state.
func As[T any](q *Queryable, factory func(Snapshot) T) T {
	return factory(Snapshot{
		URL:       q.url,
		ParentURL: q.parentURL,
		Query:     q.query.Clone(),
		Options:   q.options.Clone(),
	})
}

// FromSnapshot rebuilds a node from an As snapshot.
func FromSnapshot(s Snapshot) *Queryable {
	query := s.Query
	if query == nil {
		query = odurl.NewParams()
	}
	options := s.Options
	if options == nil {
		options = &RequestOptions{}
	}
	return &Queryable{
		url:       s.URL,
		parentURL: s.ParentURL,
		query:     query,
		options:   options,
	}
}
