package queryable

import (
	"net/http"
	"time"
)

// RequestOptions is the transport-level option overlay merged from
// ancestor to descendant and finally with the per-call options at build
// time. The merge is shallow: header keys overwrite, scalar fields
// overwrite when set.
type RequestOptions struct {
	Headers http.Header
	// Credentials names the credential mode the transport should use,
	// e.g. "include" or "omit". Passed through opaquely.
	Credentials string
	Body        []byte
}

// Clone returns a copy that shares no mutable state with o.
func (o *RequestOptions) Clone() *RequestOptions {
	if o == nil {
		return &RequestOptions{}
	}
	out := &RequestOptions{
		Credentials: o.Credentials,
		Body:        append([]byte(nil), o.Body...),
	}
	if o.Headers != nil {
		out.Headers = o.Headers.Clone()
	}
	return out
}

// MergeOptions overlays override onto base, override winning on collision.
// At build time the node's accumulated options are the override: values
// that must remain consistent per-resource (credentials, base headers)
// beat the ad hoc options passed for a single call. Neither argument is
// modified.
func MergeOptions(base, override *RequestOptions) *RequestOptions {
	out := base.Clone()
	if override == nil {
		return out
	}
	if len(override.Headers) > 0 {
		if out.Headers == nil {
			out.Headers = make(http.Header, len(override.Headers))
		}
		for k, vs := range override.Headers {
			out.Headers[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
		}
	}
	if override.Credentials != "" {
		out.Credentials = override.Credentials
	}
	if override.Body != nil {
		out.Body = append([]byte(nil), override.Body...)
	}
	return out
}

// CachingDirective is the opaque payload forwarded to the dispatch layer
// when a node opts into caching. The composition core only consults its
// presence; expiration and storage policy live with the cache itself.
type CachingDirective struct {
	Key       string
	Expires   time.Time
	StoreName string
}
