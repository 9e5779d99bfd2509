package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 10, cfg.Rates.TimeoutSeconds)
	assert.Equal(t, 30, cfg.Metrics.TimeoutSeconds)
	assert.Equal(t, 20, cfg.Accounts.MaxVisible)
	assert.Equal(t, 2000, cfg.Accounts.RefreshDebounceMs)
	assert.Equal(t, 5, cfg.Publish.ProgressStep)
}

func TestLoadExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: 0.0.0.0
rates:
  base_url: https://rates.example.com
  timeout_seconds: 5
accounts:
  max_visible: 3
  refresh_debounce_ms: 500
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://rates.example.com", cfg.Rates.BaseURL)
	assert.Equal(t, 5, cfg.Rates.TimeoutSeconds)
	assert.Equal(t, 3, cfg.Accounts.MaxVisible)
	assert.Equal(t, 500, cfg.Accounts.RefreshDebounceMs)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	path := writeConfig(t, "ads_platform:\n  api_key: from-file\n")

	t.Setenv("ADS_PLATFORM_API_KEY", "from-env")
	t.Setenv("SQS_ACCOUNT_EVENTS_QUEUE_URL", "https://sqs.us-west-2.amazonaws.com/1/account-events")

	cfg, err := LoadFromEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.AdsPlatform.APIKey)
	assert.True(t, cfg.SQS.Enabled)
	assert.Equal(t, "https://sqs.us-west-2.amazonaws.com/1/account-events", cfg.SQS.AccountEventsQueueURL)
}
