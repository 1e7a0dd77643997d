// Package config loads process configuration from the environment into a
// typed struct. A local .env file is honoured when present (godotenv), and
// every value has a usable default so the binaries start with zero
// configuration. The struct is built once in main and passed down explicitly;
// no other package reads the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Page fetches are cut off slightly before search calls so one slow host
// cannot starve a run.
const (
	DefaultPort          = 8080
	DefaultFetchTimeout  = 8 * time.Second
	DefaultSearchTimeout = 10 * time.Second
	DefaultSearchLimit   = 8
)

// Config holds every runtime setting for the enrichment binaries.
type Config struct {
	// Port is the listen port for the HTTP service.
	Port int

	// LogLevel is the textual slog level (DEBUG, INFO, WARN, ERROR).
	LogLevel string

	// GoogleCSEKey and GoogleCSECX configure the Google Custom Search
	// provider. Both must be set for the provider to be selected.
	GoogleCSEKey string
	GoogleCSECX  string

	// SerpAPIKey configures the SerpAPI provider.
	SerpAPIKey string

	// FetchTimeout bounds a single page fetch, SearchTimeout a single
	// search API call.
	FetchTimeout  time.Duration
	SearchTimeout time.Duration

	// SearchLimit is the maximum number of URLs requested per query.
	SearchLimit int

	// SearchProvider forces a specific backend: "googlecse", "serpapi",
	// "googlenews", or "duckduckgo". The default "auto" picks the
	// best-configured one.
	SearchProvider string

	// SynthesisFallback selects how an evidence sentence with no matched
	// verb is handled: "generic" emits a generic involvement clause,
	// "skip" moves on to the next evidence item.
	SynthesisFallback string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists. Missing values fall back to
// defaults; Load never fails.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err.Error())
	}

	return Config{
		Port:              getEnvInt("PORT", DefaultPort),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		GoogleCSEKey:      getEnv("GOOGLE_CSE_KEY", ""),
		GoogleCSECX:       getEnv("GOOGLE_CSE_CX", ""),
		SerpAPIKey:        getEnv("SERPAPI_KEY", ""),
		FetchTimeout:      getEnvDuration("FETCH_TIMEOUT", DefaultFetchTimeout),
		SearchTimeout:     getEnvDuration("SEARCH_TIMEOUT", DefaultSearchTimeout),
		SearchLimit:       getEnvInt("SEARCH_LIMIT", DefaultSearchLimit),
		SearchProvider:    getEnv("SEARCH_PROVIDER", "auto"),
		SynthesisFallback: getEnv("SYNTHESIS_FALLBACK", "generic"),
	}
}

// getEnv returns the value of key, or fallback when unset or empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns the integer value of key, or fallback when unset or
// unparsable.
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}

// getEnvDuration returns the duration value of key (Go duration syntax, e.g.
// "8s"), or fallback when unset or unparsable.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value)
		return fallback
	}
	return parsed
}
