package odclient

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odqkit/odq/pkg/config"
	"github.com/odqkit/odq/pkg/httpclient/httpclienttest"
	"github.com/odqkit/odq/pkg/queryable/queryabletest"
	"github.com/odqkit/odq/pkg/requestid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeService serves a minimal slice of the document service surface.
func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	r := gin.New()
	r.GET("/_api/web/lists", func(c *gin.Context) {
		if c.Query("$top") == "1" {
			c.JSON(http.StatusOK, gin.H{"d": gin.H{"results": []gin.H{{"Title": "Docs"}}}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"d": gin.H{"results": []gin.H{{"Title": "Docs"}, {"Title": "Pages"}}}})
	})
	r.GET("/_api/web/currentuser", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"d": gin.H{"Title": "Dev User", "Email": "dev@example.com"}})
	})
	r.GET("/_api/web/lists/getByTitle('Missing')", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "list not found"}})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientGetCollection(t *testing.T) {
	srv := fakeService(t)
	c := New(srv.URL+"/_api", WithLogger(log.New(&strings.Builder{}, "", 0)))

	lists := c.Collection("web/lists").Top(1)
	out, err := c.Get(context.Background(), lists.Queryable)
	require.NoError(t, err)

	items, ok := out.([]any)
	require.True(t, ok, "expected collection payload, got %T", out)
	require.Len(t, items, 1)
	assert.Equal(t, "Docs", items[0].(map[string]any)["Title"])
}

func TestClientGetInstance(t *testing.T) {
	srv := fakeService(t)
	c := New(srv.URL + "/_api")

	user := c.Instance("web", "currentuser").Select("Title", "Email")
	out, err := c.Get(context.Background(), user.Queryable)
	require.NoError(t, err)

	m, ok := out.(map[string]any)
	require.True(t, ok, "expected instance payload, got %T", out)
	assert.Equal(t, "Dev User", m["Title"])
}

func TestClientSurfacesHTTPError(t *testing.T) {
	srv := fakeService(t)
	c := New(srv.URL + "/_api")

	missing := c.Collection("web/lists/getByTitle('Missing')")
	_, err := c.Get(context.Background(), missing.Queryable)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "list not found")
}

func TestCorrelationHeaderStamped(t *testing.T) {
	fake := httpclienttest.NewFakeDoer(t, httpclienttest.NewJSONResponse(200, `{"d":{"results":[]}}`))
	c := New("https://tenant.example.com/_api", WithDoer(fake))

	lists := c.Collection("web/lists")
	rc, err := lists.Build(context.Background(), http.MethodGet, nil, ODataParser{}, c.pipeline)
	require.NoError(t, err)

	_, err = c.Execute(context.Background(), rc)
	require.NoError(t, err)

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, rc.RequestID, reqs[0].Header.Get(requestid.DefaultHeaderKey))
	assert.Equal(t, "https://tenant.example.com/_api/web/lists", reqs[0].URL.String())
}

type errDoer struct{ err error }

func (d errDoer) Do(*http.Request) (*http.Response, error) { return nil, d.err }

func TestExecuteReleasesBatchDependencyOnFailure(t *testing.T) {
	sendErr := errors.New("connection reset")
	batch := &queryabletest.Batch{}
	c := New("https://tenant.example.com/_api", WithDoer(errDoer{err: sendErr}),
		WithLogger(log.New(&strings.Builder{}, "", 0)))

	lists := c.Collection("web/lists")
	lists.InBatch(batch)
	rc, err := lists.Build(context.Background(), http.MethodGet, nil, nil, c.pipeline)
	require.NoError(t, err)

	_, err = c.Execute(context.Background(), rc)
	require.ErrorIs(t, err, sendErr)
	assert.Equal(t, 1, batch.Released(), "release must run on the failure path")
}

func TestToAbsolute(t *testing.T) {
	c := New("https://tenant.example.com/_api")

	abs, err := c.ToAbsolute(context.Background(), "web/lists?$top=1")
	require.NoError(t, err)
	assert.Equal(t, "https://tenant.example.com/_api/web/lists?$top=1", abs)

	same, err := c.ToAbsolute(context.Background(), "https://other.example.com/_api/web")
	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com/_api/web", same)

	_, err = New("").ToAbsolute(context.Background(), "web/lists")
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.ToAbsolute(ctx, "web/lists")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewFromProfile(t *testing.T) {
	fake := httpclienttest.NewFakeDoer(t, httpclienttest.NewJSONResponse(200, `{"value":[]}`))
	p := &config.Profile{
		BaseURL:           "https://tenant.example.com/_api",
		Headers:           map[string]string{"Accept": "application/json;odata=verbose"},
		UseCaching:        true,
		TimeoutMs:         5000,
		Credentials:       "include",
		CorrelationHeader: "X-Trace",
	}
	c := NewFromProfile(p, WithDoer(fake))

	lists := c.Collection("web/lists")
	rc, err := lists.Build(context.Background(), http.MethodGet, nil, nil, c.pipeline)
	require.NoError(t, err)
	assert.True(t, rc.CacheEligible, "profile caching default should apply to GET")
	assert.Equal(t, "application/json;odata=verbose", rc.Options.Headers.Get("Accept"))
	assert.Equal(t, "include", rc.Options.Credentials)

	_, err = c.Execute(context.Background(), rc)
	require.NoError(t, err)
	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, rc.RequestID, reqs[0].Header.Get("X-Trace"))
	assert.Equal(t, "application/json;odata=verbose", reqs[0].Header.Get("Accept"))
}
