package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihora04/djbook.in-sub000/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "djbook", cfg.Database.Database)
	assert.Equal(t, 50.0, cfg.Directory.DefaultRadiusKm)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DIRECTORY_RADIUS_KM", "25.5")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 25.5, cfg.Directory.DefaultRadiusKm)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "dj",
		Password: "secret",
		Database: "djbook",
		SSLMode:  "require",
	}
	assert.Equal(t, "host=db port=5433 user=dj password=secret dbname=djbook sslmode=require", cfg.DatabaseDSN())
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("REDIS_PORT", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 6379, cfg.Redis.Port)
}
