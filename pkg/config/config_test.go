package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
environment: test
provider:
  api_key: demo
`

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "test", cfg.Environment)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "https://www.alphavantage.co/query", cfg.Provider.BaseURL)
	require.Equal(t, 15*time.Second, cfg.Provider.Timeout)
	require.Equal(t, "compact", cfg.Provider.OutputSize)
	require.Equal(t, 5, cfg.Provider.RequestsPerMinute)
	require.Equal(t, "data", cfg.Storage.Dir)
	require.Equal(t, "cache/market_data.json", cfg.Cache.Path)
	require.Equal(t, "memory", cfg.QueryCache.Backend)
	require.Equal(t, 30*time.Second, cfg.QueryCache.TTL)
	require.Equal(t, "seriesvault.ingest", cfg.Events.Topic)
	require.False(t, cfg.EventsEnabled())
	require.True(t, cfg.MetricsEnabled())
	require.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadMetricsDisabled(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
metrics:
  disabled: true
  path: /internal/metrics
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.MetricsEnabled())
	require.Equal(t, "/internal/metrics", cfg.Metrics.Path)
}

func TestLoadMissingAPIKey(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "provider.api_key")
}

func TestLoadMissingEnvironment(t *testing.T) {
	path := writeConfig(t, "provider:\n  api_key: demo\n")

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "environment")
}

func TestLoadBadQueryCacheBackend(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
query_cache:
  backend: memcached
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "query_cache.backend")
}

func TestLoadRedisBackendRequiresAddr(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
query_cache:
  backend: redis
`)

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "query_cache.redis.addr")
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	t.Setenv("PROVIDER_API_KEY", "from-env")
	t.Setenv("STORAGE_DIR", "/var/lib/seriesvault")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadWithEnv(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Provider.APIKey)
	require.Equal(t, "/var/lib/seriesvault", cfg.Storage.Dir)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers)
	require.True(t, cfg.EventsEnabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
