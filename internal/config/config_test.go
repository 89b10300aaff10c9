package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
default: staging
fetch_interval: 10
profiles:
  production:
    url: https://aleph.example.org
    token: prod-token
  staging:
    url: https://staging.example.org/
    token: staging-token
  local:
    url: http://localhost:8080
    token: local-token
`

func TestParse_PreservesProfileOrder(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"production", "staging", "local"}
	if len(cfg.Profiles) != len(want) {
		t.Fatalf("expected %d profiles, got %d", len(want), len(cfg.Profiles))
	}
	for i, name := range want {
		p := cfg.Profiles[i]
		if p.Name != name {
			t.Fatalf("profile %d: expected %q, got %q", i, name, p.Name)
		}
		if p.Index != i {
			t.Fatalf("profile %q: expected index %d, got %d", name, i, p.Index)
		}
	}
}

func TestParse_TrimsTrailingSlashFromURL(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, ok := cfg.Profile("staging")
	if !ok {
		t.Fatalf("staging profile missing")
	}
	if p.URL != "https://staging.example.org" {
		t.Fatalf("unexpected url: %q", p.URL)
	}
}

func TestParse_DefaultResolves(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Default != "staging" {
		t.Fatalf("unexpected default: %q", cfg.Default)
	}
	if cfg.FetchInterval != 10 {
		t.Fatalf("unexpected fetch_interval: %d", cfg.FetchInterval)
	}
}

func TestParse_UnknownDefaultFails(t *testing.T) {
	raw := `
default: nope
profiles:
  one:
    url: http://localhost:8080
    token: tok
`
	_, err := Parse([]byte(raw))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Fatalf("error should name the missing profile: %v", err)
	}
}

func TestParse_FetchIntervalDefaultsToFive(t *testing.T) {
	raw := `
default: one
profiles:
  one:
    url: http://localhost:8080
    token: tok
`
	cfg, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.FetchInterval != DefaultFetchInterval {
		t.Fatalf("expected default interval %d, got %d", DefaultFetchInterval, cfg.FetchInterval)
	}
}

func TestParse_ExplicitZeroIntervalFails(t *testing.T) {
	raw := `
default: one
fetch_interval: 0
profiles:
  one:
    url: http://localhost:8080
    token: tok
`
	_, err := Parse([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "fetch_interval") {
		t.Fatalf("an explicit zero must not be rewritten to the default, got %v", err)
	}
}

func TestParse_NegativeIntervalFails(t *testing.T) {
	raw := `
default: one
fetch_interval: -3
profiles:
  one:
    url: http://localhost:8080
    token: tok
`
	_, err := Parse([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "fetch_interval") {
		t.Fatalf("expected fetch_interval error, got %v", err)
	}
}

func TestParse_MalformedYAMLPrefixesError(t *testing.T) {
	_, err := Parse([]byte("default: [unclosed"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.HasPrefix(err.Error(), "config: parse:") {
		t.Fatalf("yaml errors should carry the package prefix, got %v", err)
	}
}

func TestParse_MissingTokenFails(t *testing.T) {
	raw := `
default: one
profiles:
  one:
    url: http://localhost:8080
`
	_, err := Parse([]byte(raw))
	if err == nil || !strings.Contains(err.Error(), "token") {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestParse_NoProfilesFails(t *testing.T) {
	_, err := Parse([]byte("default: one\n"))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := cfg.Profile("production"); !ok {
		t.Fatalf("production profile missing after load")
	}
}
