package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, `
serverAddr: ":9090"
databaseConfig:
  dsn: "postgres://file"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, 3600*time.Second, cfg.TTL.CredentialTTL())
	assert.Equal(t, 60*time.Second, cfg.RateLimit.WindowDuration())
	assert.Equal(t, 10, cfg.RateLimit.SensitiveLimit)
	assert.Equal(t, 20, cfg.RateLimit.DefaultLimit)
	assert.Equal(t, int64(50*1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, DefaultAllowedTypes, cfg.Upload.AllowedTypes)
	assert.Equal(t, 5*time.Second, cfg.S3Config.BlobTimeout())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
databaseConfig:
  dsn: "postgres://file"
jwt:
  secret_key: "from-file"
`)
	t.Setenv("FILESHARE_DB_DSN", "postgres://env")
	t.Setenv("FILESHARE_JWT_SECRET", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env", cfg.DatabaseConfig.DSN)
	assert.Equal(t, "from-env", cfg.JWT.SecretKey)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestBlobTimeout_Invalid(t *testing.T) {
	assert.Equal(t, 5*time.Second, S3Config{Timeout: "oops"}.BlobTimeout())
	assert.Equal(t, 2*time.Second, S3Config{Timeout: "2s"}.BlobTimeout())
}
