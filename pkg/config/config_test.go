package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Stock.AtomicFEFO)
	assert.Equal(t, 30, cfg.Stock.ExpiringSoonDays)
	assert.Equal(t, 100, cfg.Stock.LedgerPageSize)
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, 15*time.Second, cfg.Telemetry.Interval)
	assert.False(t, cfg.Telemetry.MetricsEnabled)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Empty(t, cfg.JWT.Secret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STOCK_FEFO_ATOMIC", "false")
	t.Setenv("STOCK_EXPIRING_SOON_DAYS", "7")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("METRICS_INTERVAL", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Stock.AtomicFEFO)
	assert.Equal(t, 7, cfg.Stock.ExpiringSoonDays)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, 5*time.Second, cfg.Telemetry.Interval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, JWTConfig{Secret: "s3cr3t"}, cfg.JWT)
}

func TestLoad_RejectsInvalidPool(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsSamplingRatio(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRACES_SAMPLING_RATIO", "1.5")

	_, err := Load()
	require.Error(t, err)
}

func TestConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
