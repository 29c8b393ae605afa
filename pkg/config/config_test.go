package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lztmeat/inventario-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "inventario-api", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, 100*time.Millisecond, cfg.Retry.InitialInterval)
	assert.Equal(t, uint64(3), cfg.Retry.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "300-M", cfg.RateLimit.Rate)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_STOCK_TTL", "5s")
	t.Setenv("RETRY_INITIAL_INTERVAL", "250")
	t.Setenv("RETRY_MAX_RETRIES", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.InitialInterval, "un entero se lee en milisegundos")
	assert.Equal(t, uint64(5), cfg.Retry.MaxRetries)
}

func TestLoad_Validaciones(t *testing.T) {
	t.Run("driver desconocido", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "sqlite")
		_, err := config.Load()
		assert.Error(t, err)
	})
	t.Run("production sin JWT_SECRET", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load()
		assert.Error(t, err)
	})
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "inventario", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/inventario?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", c.ConnectionString())
}
