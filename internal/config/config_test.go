package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "5175" {
		t.Errorf("Port = %q, want 5175", cfg.Port)
	}
	if cfg.LookupTimeout != 3*time.Second {
		t.Errorf("LookupTimeout = %v, want 3s", cfg.LookupTimeout)
	}
	if cfg.MaxCandidateAttempts != 5 {
		t.Errorf("MaxCandidateAttempts = %d, want 5", cfg.MaxCandidateAttempts)
	}
	if !cfg.CacheEnabled {
		t.Error("CacheEnabled should default to true")
	}
	if cfg.Production() {
		t.Error("Production() should be false by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOOKUP_TIMEOUT", "750ms")
	t.Setenv("MAX_CANDIDATE_ATTEMPTS", "2")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("CACHE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.LookupTimeout != 750*time.Millisecond {
		t.Errorf("LookupTimeout = %v, want 750ms", cfg.LookupTimeout)
	}
	if cfg.MaxCandidateAttempts != 2 {
		t.Errorf("MaxCandidateAttempts = %d, want 2", cfg.MaxCandidateAttempts)
	}
	if !cfg.Production() {
		t.Error("Production() should be true for NODE_ENV=production")
	}
	if cfg.CacheEnabled {
		t.Error("CacheEnabled should be false")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		key, val, want string
	}{
		{"LOOKUP_TIMEOUT", "0s", "LOOKUP_TIMEOUT"},
		{"MAX_CANDIDATE_ATTEMPTS", "0", "MAX_CANDIDATE_ATTEMPTS"},
		{"RATE_LIMIT_BURST", "0", "RATE_LIMIT"},
	}
	for _, c := range cases {
		t.Run(c.key, func(t *testing.T) {
			t.Setenv(c.key, c.val)
			_, err := Load()
			if err == nil {
				t.Fatalf("Load() with %s=%s should fail", c.key, c.val)
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error %q should mention %s", err, c.want)
			}
		})
	}
}

func TestLoadRejectsUnparsable(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail for an unparsable duration")
	}
}
