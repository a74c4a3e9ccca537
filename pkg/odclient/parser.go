package odclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ODataParser decodes a service response, unwrapping both the verbose
// ({"d": {...}} / {"d": {"results": [...]}}) and the minimal-metadata
// ({"value": [...]}) payload envelopes. Non-2xx responses surface as
// *HTTPError.
type ODataParser struct{}

func (ODataParser) Parse(resp *http.Response) (any, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp, body)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return unwrap(payload), nil
}

func unwrap(payload any) any {
	m, ok := payload.(map[string]any)
	if !ok {
		return payload
	}
	if d, ok := m["d"]; ok {
		if dm, ok := d.(map[string]any); ok {
			if results, ok := dm["results"]; ok {
				return results
			}
		}
		return d
	}
	if v, ok := m["value"]; ok {
		return v
	}
	return payload
}

// ParseJSON decodes a response into T after envelope unwrapping.
func ParseJSON[T any](resp *http.Response) (T, error) {
	var out T
	raw, err := ODataParser{}.Parse(resp)
	if err != nil {
		return out, err
	}
	if raw == nil {
		return out, nil
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return out, fmt.Errorf("reencode payload: %w", err)
	}
	if err := json.Unmarshal(buf, &out); err != nil {
		return out, fmt.Errorf("decode payload into %T: %w", out, err)
	}
	return out, nil
}
