package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangohow/fmpmcp/errors"
)

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationMissing(err))
	assert.Contains(t, err.Error(), "FMP_API_KEY")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "secret")
	t.Setenv("FMP_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
	assert.Equal(t, 8, cfg.MaxWorkers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogEncoding)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(APIKeyEnv, "secret")
	t.Setenv("FMP_BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("FMP_HTTP_TIMEOUT", "15s")
	t.Setenv("FMP_MAX_WORKERS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 2, cfg.MaxWorkers)
}

func TestLoadInvalidWorkers(t *testing.T) {
	t.Setenv(APIKeyEnv, "secret")
	t.Setenv("FMP_MAX_WORKERS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FMP_TEST_ENV_FILE_VALUE=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("FMP_TEST_ENV_FILE_VALUE") })

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("FMP_TEST_ENV_FILE_VALUE"))

	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
