package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearBrokerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTEN_ADDR", "DB_PATH", "BASE_URL", "BROKER_NAME", "SERVICE_TYPE",
		"CATALOG_PATH", "JWT_SECRET", "BROKER_ADMIN_PASSWORD", "ENCRYPTION_KEY",
		"LOG_LEVEL", "ENV", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	clearBrokerEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "bookstore_broker.sqlite", cfg.DBPath)
	assert.Equal(t, ServiceTypeBookStore, cfg.ServiceType)
	assert.Equal(t, "bookstore-broker", cfg.BrokerName)
	assert.Equal(t, "supersecret", cfg.AdminPassword)
	assert.False(t, cfg.EscrowEnabled())
	assert.False(t, cfg.IsProduction())
	assert.NotEmpty(t, cfg.Warnings)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	clearBrokerEnv(t)
	t.Setenv("SERVICE_TYPE", "keyvalue")
	t.Setenv("BROKER_ADMIN_PASSWORD", "rotated")
	t.Setenv("ENCRYPTION_KEY", "00ff")
	t.Setenv("RATE_LIMIT_RPS", "5.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ServiceTypeKeyValue, cfg.ServiceType)
	assert.Equal(t, "rotated", cfg.AdminPassword)
	assert.True(t, cfg.EscrowEnabled())
	assert.Equal(t, 5.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnvRejectsUnknownServiceType(t *testing.T) {
	clearBrokerEnv(t)
	t.Setenv("SERVICE_TYPE", "blobstore")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnvProductionChecks(t *testing.T) {
	clearBrokerEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://platform.example.com")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "real-secret")
	_, err = LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BROKER_ADMIN_PASSWORD")

	t.Setenv("BROKER_ADMIN_PASSWORD", "rotated")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: ""}).SlogLevel())
}

func TestLoadDotEnv(t *testing.T) {
	clearBrokerEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nBROKER_NAME=\"dotenv-broker\"\nSERVICE_TYPE=keyvalue\n\nnot-a-pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// Env vars win over the file.
	t.Setenv("SERVICE_TYPE", "bookstore")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "dotenv-broker", os.Getenv("BROKER_NAME"))
	assert.Equal(t, "bookstore", os.Getenv("SERVICE_TYPE"))

	// A missing file is not an error.
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
