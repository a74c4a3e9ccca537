package odclient

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/odqkit/odq/pkg/queryable"
	"github.com/odqkit/odq/pkg/requestid"
)

// CorrelationHeader stamps the descriptor's correlation id onto outgoing
// requests under the given header key. An id already present in the
// options is kept.
func CorrelationHeader(key string) queryable.Middleware {
	resolved := requestid.ResolveHeaderKey(key)
	return func(next queryable.Sender) queryable.Sender {
		return func(ctx context.Context, rc *queryable.RequestContext) (*http.Response, error) {
			if rc.Options == nil {
				rc.Options = &queryable.RequestOptions{}
			}
			if rc.Options.Headers == nil {
				rc.Options.Headers = make(http.Header)
			}
			if rc.Options.Headers.Get(resolved) == "" {
				rc.Options.Headers.Set(resolved, rc.RequestID)
			}
			return next(ctx, rc)
		}
	}
}

// RequestLogger logs one line per dispatched request with verb, URL,
// outcome and latency. A nil logger uses the process logger.
func RequestLogger(l *log.Logger) queryable.Middleware {
	return func(next queryable.Sender) queryable.Sender {
		return func(ctx context.Context, rc *queryable.RequestContext) (*http.Response, error) {
			start := time.Now()
			resp, err := next(ctx, rc)
			lg := l
			if lg == nil {
				lg = log.Default()
			}
			if err != nil {
				lg.Printf("request failed: verb=%s url=%s request_id=%s latency=%s err=%v",
					rc.Verb, rc.URL, rc.RequestID, time.Since(start).Round(time.Millisecond), err)
				return resp, err
			}
			lg.Printf("request done: verb=%s url=%s status=%d request_id=%s latency=%s",
				rc.Verb, rc.URL, resp.StatusCode, rc.RequestID, time.Since(start).Round(time.Millisecond))
			return resp, nil
		}
	}
}
