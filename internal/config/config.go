// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GitHubToken string
	ListenAddr  string
	DBPath      string
	RedisURL    string
	CacheTTL    time.Duration
	HTTPTimeout time.Duration
}

// Load reads configuration from environment variables and returns a validated
// Config. GITSCOPE_GITHUB_TOKEN is optional; without it requests run against
// GitHub's unauthenticated rate limit. GITSCOPE_REDIS_URL is optional; without
// it the session cache is process-local. Optional variables with defaults:
// GITSCOPE_LISTEN_ADDR (127.0.0.1:8080), GITSCOPE_DB_PATH (gitscope.db),
// GITSCOPE_CACHE_TTL (30m), GITSCOPE_HTTP_TIMEOUT (15s).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("GITSCOPE_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "gitscope.db"
	if v, ok := os.LookupEnv("GITSCOPE_DB_PATH"); ok {
		dbPath = v
	}

	cacheTTL := 30 * time.Minute
	if v, ok := os.LookupEnv("GITSCOPE_CACHE_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("GITSCOPE_CACHE_TTL has invalid duration %q: %w", v, err)
		}
		cacheTTL = parsed
	}

	httpTimeout := 15 * time.Second
	if v, ok := os.LookupEnv("GITSCOPE_HTTP_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("GITSCOPE_HTTP_TIMEOUT has invalid duration %q: %w", v, err)
		}
		httpTimeout = parsed
	}

	return &Config{
		GitHubToken: os.Getenv("GITSCOPE_GITHUB_TOKEN"),
		ListenAddr:  listenAddr,
		DBPath:      dbPath,
		RedisURL:    os.Getenv("GITSCOPE_REDIS_URL"),
		CacheTTL:    cacheTTL,
		HTTPTimeout: httpTimeout,
	}, nil
}
