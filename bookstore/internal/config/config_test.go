package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromEnvAppliesDefaults(t *testing.T) {
	cfg, err := Load("", envMap(map[string]string{
		"BOOKSTORE_ADMIN_USER":     "admin",
		"BOOKSTORE_ADMIN_PASSWORD": "pw",
		"BOOKSTORE_JWT_SECRET":     "0123456789abcdef",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "bookstore.db", cfg.DB.Path)
	assert.Equal(t, 4, cfg.DB.MaxOpenConns)
	assert.Equal(t, 12*time.Hour, cfg.Admin.TokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 72*time.Hour, cfg.Carts.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Carts.SweepInterval)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "bookstore.yaml", `
server:
  addr: ":9000"
db:
  path: /var/lib/bookstore/data.db
  max_open_conns: 8
admin:
  user: admin
  password: from-file
  jwt_secret: file-secret-0123456789
log:
  level: debug
  format: console
carts:
  ttl: 48h
  sweep_interval: 5m
`)
	cfg, err := Load(path, envMap(map[string]string{
		"BOOKSTORE_ADMIN_PASSWORD": "from-env",
		"BOOKSTORE_SWEEP_INTERVAL": "30s",
		"BOOKSTORE_DB_DEBUG":       "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "/var/lib/bookstore/data.db", cfg.DB.Path)
	assert.Equal(t, 8, cfg.DB.MaxOpenConns)
	assert.True(t, cfg.DB.Debug)
	assert.Equal(t, "from-env", cfg.Admin.Password)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 48*time.Hour, cfg.Carts.TTL)
	assert.Equal(t, 30*time.Second, cfg.Carts.SweepInterval)
}

func TestLoadReportsAllProblems(t *testing.T) {
	_, err := Load("", envMap(map[string]string{
		"BOOKSTORE_JWT_SECRET": "short",
		"BOOKSTORE_LOG_FORMAT": "xml",
	}))
	require.Error(t, err)
	for _, want := range []string{
		"admin.user is required",
		"admin.password is required",
		"admin.jwt_secret must be at least 16 bytes",
		"log.format must be json or console",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	_, err := Load("", envMap(map[string]string{
		"BOOKSTORE_DB_MAX_OPEN_CONNS": "many",
		"BOOKSTORE_CART_TTL":          "3 days",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOOKSTORE_DB_MAX_OPEN_CONNS must be an integer")
	assert.Contains(t, err.Error(), "BOOKSTORE_CART_TTL must be a duration")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), envMap(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadDotEnvSkipsMissingFiles(t *testing.T) {
	path := writeFile(t, ".env", "BOOKSTORE_TEST_DOTENV=loaded\n")
	t.Setenv("BOOKSTORE_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("BOOKSTORE_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	assert.Equal(t, "loaded", os.Getenv("BOOKSTORE_TEST_DOTENV"))
}
