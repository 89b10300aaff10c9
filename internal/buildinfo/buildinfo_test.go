package buildinfo

import "testing"

func TestDisplayVersion(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "2026.1.2"
	if got := DisplayVersion(); got != "v2026.1.2" {
		t.Fatalf("numeric version should gain a v prefix, got %q", got)
	}

	Version = "v1.4.0"
	if got := DisplayVersion(); got != "v1.4.0" {
		t.Fatalf("prefixed version should pass through, got %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.0.0"
	if got := UserAgent(); got != "aleph-tui/v1.0.0" {
		t.Fatalf("unexpected user agent: %q", got)
	}
}
