package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every config variable for the test's duration. t.Setenv
// registers the restore; the explicit unset makes LookupEnv miss.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITSCOPE_GITHUB_TOKEN",
		"GITSCOPE_LISTEN_ADDR",
		"GITSCOPE_DB_PATH",
		"GITSCOPE_REDIS_URL",
		"GITSCOPE_CACHE_TTL",
		"GITSCOPE_HTTP_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.GitHubToken)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "gitscope.db", cfg.DBPath)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITSCOPE_GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITSCOPE_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("GITSCOPE_DB_PATH", "/tmp/test.db")
	t.Setenv("GITSCOPE_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("GITSCOPE_CACHE_TTL", "5m")
	t.Setenv("GITSCOPE_HTTP_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ghp_test", cfg.GitHubToken)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func TestLoad_InvalidCacheTTL(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITSCOPE_CACHE_TTL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITSCOPE_CACHE_TTL")
}

func TestLoad_InvalidHTTPTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITSCOPE_HTTP_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITSCOPE_HTTP_TIMEOUT")
}
