// Package config loads client profiles: the service root, static headers
// and transport defaults a long-running consumer applies to every node it
// creates.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/odqkit/odq/pkg/requestid"
)

const (
	defaultTimeoutMs         = 30000
	defaultReloadDebounceMs  = 300
	defaultCredentialsPolicy = "include"
)

type AutoReloadConfig struct {
	Enabled    bool `yaml:"enabled"`
	DebounceMs int  `yaml:"debounce_ms"`
}

// Profile describes one target service.
type Profile struct {
	// BaseURL is the absolute service root, e.g.
	// "https://tenant.example.com/sites/dev/_api".
	BaseURL string `yaml:"base_url"`

	// Headers are applied to every request built from this profile.
	Headers map[string]string `yaml:"headers"`

	// UseCaching marks GET requests built from this profile as
	// cache-eligible by default.
	UseCaching bool `yaml:"use_caching"`

	TimeoutMs         int    `yaml:"timeout_ms"`
	Credentials       string `yaml:"credentials"`
	CorrelationHeader string `yaml:"correlation_header"`

	AutoReload AutoReloadConfig `yaml:"auto_reload"`
}

func (p *Profile) Timeout() time.Duration {
	return time.Duration(p.TimeoutMs) * time.Millisecond
}

// Load reads a profile file and applies defaults.
func Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	applyDefaults(&p)
	if err := validate(&p); err != nil {
		return nil, fmt.Errorf("validate profile %s: %w", path, err)
	}
	return &p, nil
}

func applyDefaults(p *Profile) {
	if p.TimeoutMs <= 0 {
		p.TimeoutMs = defaultTimeoutMs
	}
	if strings.TrimSpace(p.Credentials) == "" {
		p.Credentials = defaultCredentialsPolicy
	}
	p.CorrelationHeader = requestid.ResolveHeaderKey(p.CorrelationHeader)
	if p.AutoReload.DebounceMs <= 0 {
		p.AutoReload.DebounceMs = defaultReloadDebounceMs
	}
}

func validate(p *Profile) error {
	base := strings.TrimSpace(p.BaseURL)
	if base == "" {
		return errors.New("base_url is required")
	}
	if !strings.HasPrefix(strings.ToLower(base), "http://") &&
		!strings.HasPrefix(strings.ToLower(base), "https://") {
		return fmt.Errorf("base_url must be absolute, got %q", base)
	}
	for k := range p.Headers {
		if strings.TrimSpace(k) == "" {
			return errors.New("headers contains an empty key")
		}
	}
	return nil
}
