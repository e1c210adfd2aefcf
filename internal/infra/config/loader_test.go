package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Database.Postgres.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Database.Postgres.ConnMaxLifetime)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "token", cfg.Auth.CookieName)
	assert.Equal(t, time.Minute, cfg.Dashboard.CacheTTL)
	assert.Equal(t, 10, cfg.RabbitMQ.Prefetch)
	assert.NotEmpty(t, cfg.Auth.JWTSecret, "development gets a fallback secret")
}

func TestLoadFrom_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
app:
  environment: test
server:
  port: 9090
database:
  postgres:
    host: db.internal
    max_open_conns: 20
dashboard:
  cache_ttl: 30s
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("DATABASE_POSTGRES_PASSWORD", "s3cret")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, 20, cfg.Database.Postgres.MaxOpenConns)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.CacheTTL)
	assert.Contains(t, cfg.Database.Postgres.GetDSN(), "host=db.internal")
}

func TestLoadFrom_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "production")

	_, err := LoadFrom(t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}
