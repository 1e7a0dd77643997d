package config

import (
	"testing"
	"time"
)

// TestLoad_Defaults verifies every field falls back to its default when the
// environment is empty.
func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("FetchTimeout = %v, want %v", cfg.FetchTimeout, DefaultFetchTimeout)
	}
	if cfg.SearchLimit != DefaultSearchLimit {
		t.Errorf("SearchLimit = %d, want %d", cfg.SearchLimit, DefaultSearchLimit)
	}
	if cfg.SynthesisFallback != "generic" {
		t.Errorf("SynthesisFallback = %q, want generic", cfg.SynthesisFallback)
	}
}

// TestLoad_FromEnvironment verifies environment values override defaults and
// malformed values fall back rather than fail.
func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("GOOGLE_CSE_KEY", "k")
	t.Setenv("GOOGLE_CSE_CX", "cx")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("SEARCH_LIMIT", "not-a-number")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG", cfg.LogLevel)
	}
	if cfg.GoogleCSEKey != "k" || cfg.GoogleCSECX != "cx" {
		t.Errorf("Google CSE credentials = (%q, %q), want (k, cx)", cfg.GoogleCSEKey, cfg.GoogleCSECX)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.FetchTimeout)
	}
	if cfg.SearchLimit != DefaultSearchLimit {
		t.Errorf("SearchLimit with malformed value = %d, want default %d", cfg.SearchLimit, DefaultSearchLimit)
	}
}
