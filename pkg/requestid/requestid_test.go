package requestid

import (
	"testing"

	"github.com/google/uuid"
)

func TestGen(t *testing.T) {
	a := Gen()
	b := Gen()
	if a == b {
		t.Fatalf("ids should be unique: %q", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("unexpected id format %q: %v", a, err)
	}
}

func TestResolveHeaderKey(t *testing.T) {
	if got := ResolveHeaderKey(""); got != DefaultHeaderKey {
		t.Fatalf("empty key resolved to %q", got)
	}
	if got := ResolveHeaderKey("  "); got != DefaultHeaderKey {
		t.Fatalf("blank key resolved to %q", got)
	}
	if got := ResolveHeaderKey("X-Trace"); got != "X-Trace" {
		t.Fatalf("explicit key resolved to %q", got)
	}
}
