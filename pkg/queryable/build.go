package queryable

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/odqkit/odq/pkg/httpclient"
	"github.com/odqkit/odq/pkg/requestid"
)

// Build translates the node's accumulated state into a dispatch-ready
// request descriptor.
//
// When the node is batch-associated, the batch dependency is registered
// before URL resolution begins, so the batch cannot finalize while this
// node's setup is still pending. Resolution of the absolute URL is the
// only blocking step; on resolution failure no partial context is
// returned and the registered dependency is released before the error
// propagates.
//
// The caller-supplied opts lose to the node's accumulated options on
// collision. Cache eligibility requires both a GET verb (case-insensitive)
// and a prior UsingCaching call on the node.
func (q *Queryable) Build(ctx context.Context, verb string, opts *RequestOptions, parser Parser, pipeline Pipeline) (*RequestContext, error) {
	release := func() {}
	if q.batch != nil {
		release = q.batch.RegisterDependency()
	}

	abs, err := q.resolveAbsolute(ctx)
	if err != nil {
		release()
		return nil, fmt.Errorf("resolve absolute url for %q: %w", q.url, err)
	}

	factory := q.clientFactory
	if factory == nil {
		factory = httpclient.DefaultFactory
	}

	return &RequestContext{
		Batch:         q.batch,
		Release:       release,
		Caching:       q.caching,
		ClientFactory: factory,
		InBatch:       q.batch != nil,
		CacheEligible: strings.EqualFold(verb, http.MethodGet) && q.useCaching,
		Options:       MergeOptions(opts, q.options),
		Parser:        parser,
		Pipeline:      pipeline,
		URL:           abs,
		RequestID:     requestid.Gen(),
		Verb:          verb,
	}, nil
}

func (q *Queryable) resolveAbsolute(ctx context.Context) (string, error) {
	serialized := q.ToURLAndQuery()
	if q.resolver == nil {
		return serialized, nil
	}
	return q.resolver.ToAbsolute(ctx, serialized)
}
