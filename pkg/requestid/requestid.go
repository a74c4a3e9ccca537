// Package requestid generates the correlation identifier attached to every
// request descriptor.
package requestid

import (
	"strings"

	"github.com/google/uuid"
)

const DefaultHeaderKey = "X-Correlation-Id"

// ResolveHeaderKey returns the provided header key when non-empty,
// otherwise falls back to the default correlation header key.
func ResolveHeaderKey(headerKey string) string {
	if v := strings.TrimSpace(headerKey); v != "" {
		return v
	}
	return DefaultHeaderKey
}

// Gen returns a fresh unique correlation id. Generation is stateless; ids
// from concurrent callers never collide beyond UUID probability.
func Gen() string {
	return uuid.NewString()
}
