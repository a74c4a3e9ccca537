// Package httpclienttest provides a recording fake for httpclient.HTTPDoer
// so callers can test request dispatch without outbound HTTP.
package httpclienttest

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/odqkit/odq/pkg/httpclient"
)

// FakeDoer implements httpclient.HTTPDoer, recording every request and
// answering from a queue of canned responses.
type FakeDoer struct {
	t         testing.TB
	responses []*http.Response
	requests  []*http.Request
}

// NewFakeDoer returns a FakeDoer seeded with the responses that should be
// returned for each Do call, in order.
func NewFakeDoer(t testing.TB, responses ...*http.Response) *FakeDoer {
	return &FakeDoer{
		t:         t,
		responses: append([]*http.Response(nil), responses...),
	}
}

// Do records the request and returns the next queued response.
func (f *FakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	if len(f.responses) == 0 {
		f.t.Fatalf("fake http client has no responses left for request %s %s", req.Method, req.URL.String())
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	if resp.Request == nil {
		resp.Request = req
	}
	return resp, nil
}

// Requests returns the HTTP requests captured so far.
func (f *FakeDoer) Requests() []*http.Request {
	return append([]*http.Request(nil), f.requests...)
}

// NewJSONResponse builds a minimal http.Response with the provided status
// code and JSON body.
func NewJSONResponse(status int, body string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp
}

var _ httpclient.HTTPDoer = (*FakeDoer)(nil)
