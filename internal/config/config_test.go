package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.test/v1")
	t.Setenv("PARTICIPATION_PAGE_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "https://api.example.test/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, 25, cfg.Console.ParticipationPageSize)
	assert.True(t, cfg.Database.Enabled())
	assert.False(t, cfg.MinIO.Enabled())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONSOLE_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout())
	assert.Equal(t, 20, cfg.Console.ParticipationPageSize)
	assert.Equal(t, time.UTC, cfg.Console.Location())
}

func TestLoad_YAMLOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.yaml")
	content := `
port: "9090"
upstream:
  base_url: https://yaml.example.test
  timeout_sec: 5
console:
  participation_page_size: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONSOLE_CONFIG_PATH", path)
	// env still wins over the file
	t.Setenv("UPSTREAM_TIMEOUT_SEC", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://yaml.example.test", cfg.Upstream.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.Upstream.Timeout())
	assert.Equal(t, 50, cfg.Console.ParticipationPageSize)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONSOLE_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		assert.ErrorContains(t, err, "read config file")
	})

	t.Run("invalid page size", func(t *testing.T) {
		t.Setenv("CONSOLE_CONFIG_PATH", "")
		t.Setenv("PARTICIPATION_PAGE_SIZE", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "invalid PARTICIPATION_PAGE_SIZE")
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
