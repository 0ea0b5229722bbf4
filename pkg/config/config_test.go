package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/avatax-connector/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "un-secreto-de-al-menos-16")
	t.Setenv("AVATAX_TIMEOUT_SECONDS", "12")
	t.Setenv("PLATFORM_VERSION", "1.9.4")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "avatax-connector", cfg.App.Name)
	assert.Equal(t, 12*time.Second, cfg.AvaTax.Timeout)
	assert.Equal(t, "postgres", cfg.Platform.ErrorFlagBackend)
	assert.Equal(t, "1.9.4", cfg.Platform.Version)
	assert.True(t, cfg.DB.MigrateOnStart)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_SinSecretoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_BackendDesconocidoFalla(t *testing.T) {
	t.Setenv("JWT_SECRET", "un-secreto-de-al-menos-16")
	t.Setenv("ERROR_FLAG_BACKEND", "memcached")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "avatax", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/avatax?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
