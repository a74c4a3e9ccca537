package odclient

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/odqkit/odq/pkg/requestid"
)

const bodyExcerptLimit = 512

// HTTPError reports a non-2xx service response.
type HTTPError struct {
	StatusCode    int
	Status        string
	URL           string
	CorrelationID string
	Body          string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("request failed: status=%d url=%s", e.StatusCode, e.URL)
	if e.CorrelationID != "" {
		msg += " request_id=" + e.CorrelationID
	}
	if e.Body != "" {
		msg += " body=" + e.Body
	}
	return msg
}

func newHTTPError(resp *http.Response, body []byte) *HTTPError {
	excerpt := strings.TrimSpace(string(body))
	if len(excerpt) > bodyExcerptLimit {
		excerpt = excerpt[:bodyExcerptLimit]
	}
	e := &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       excerpt,
	}
	if resp.Request != nil {
		if resp.Request.URL != nil {
			e.URL = resp.Request.URL.String()
		}
		e.CorrelationID = resp.Request.Header.Get(requestid.DefaultHeaderKey)
	}
	return e
}
