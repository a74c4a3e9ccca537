package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProfileFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "odq.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	path := writeProfileFile(t, `
base_url: "https://tenant.example.com/sites/dev/_api"
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if p.TimeoutMs != 30000 {
		t.Fatalf("default timeout_ms=%d", p.TimeoutMs)
	}
	if p.Credentials != "include" {
		t.Fatalf("default credentials=%q", p.Credentials)
	}
	if p.CorrelationHeader != "X-Correlation-Id" {
		t.Fatalf("default correlation_header=%q", p.CorrelationHeader)
	}
	if p.UseCaching {
		t.Fatalf("use_caching default should be false")
	}
	if p.AutoReload.Enabled {
		t.Fatalf("auto_reload.enabled default should be false")
	}
	if p.AutoReload.DebounceMs != 300 {
		t.Fatalf("auto_reload.debounce_ms default=%d", p.AutoReload.DebounceMs)
	}
}

func TestLoad_Explicit(t *testing.T) {
	path := writeProfileFile(t, `
base_url: "https://tenant.example.com/_api"
headers:
  Accept: "application/json;odata=verbose"
use_caching: true
timeout_ms: 5000
credentials: omit
correlation_header: X-Trace
auto_reload:
  enabled: true
  debounce_ms: 50
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if p.Headers["Accept"] != "application/json;odata=verbose" {
		t.Fatalf("headers=%v", p.Headers)
	}
	if !p.UseCaching || p.TimeoutMs != 5000 || p.Credentials != "omit" {
		t.Fatalf("explicit values lost: %+v", p)
	}
	if p.CorrelationHeader != "X-Trace" {
		t.Fatalf("correlation_header=%q", p.CorrelationHeader)
	}
	if !p.AutoReload.Enabled || p.AutoReload.DebounceMs != 50 {
		t.Fatalf("auto_reload=%+v", p.AutoReload)
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	path := writeProfileFile(t, `
headers:
  Accept: "application/json"
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "base_url is required") {
		t.Fatalf("expected base_url error, got %v", err)
	}
}

func TestLoad_RelativeBaseURL(t *testing.T) {
	path := writeProfileFile(t, `
base_url: "sites/dev/_api"
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "must be absolute") {
		t.Fatalf("expected absolute base_url error, got %v", err)
	}
}

func TestLoad_FileMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
