package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  host: db.internal
  port: "5433"
  user: guero
  password: secreto
  database: elguero_db
rabbitmq:
  host: mq.internal
  port: "5672"
  user: guest
  password: guest
alerts:
  interval_seconds: 30
  lookahead_minutes: 10
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "5433", cfg.DB.Port)
	assert.Equal(t, "elguero_db", cfg.DB.Database)
	assert.Equal(t, "mq.internal", cfg.RMQ.Host)
	assert.Equal(t, 30, cfg.Alerts.IntervalSeconds)
	assert.Equal(t, 10, cfg.Alerts.LookaheadMinutes)
}

func TestLoadConfigAlertDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  host: localhost
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Alerts)
	assert.Equal(t, 60, cfg.Alerts.IntervalSeconds)
	assert.Equal(t, 20, cfg.Alerts.LookaheadMinutes)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadDotEnvDefaults(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("POSTGRES_DBNAME", "")

	cfg := LoadDotEnv()
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "elguero_db", cfg.DB.Database)
	assert.Equal(t, "guest", cfg.RMQ.User)
	assert.Equal(t, 60, cfg.Alerts.IntervalSeconds)
}

func TestLoadDotEnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "10.0.0.5")
	t.Setenv("RABBITMQ_PORT", "5673")

	cfg := LoadDotEnv()
	assert.Equal(t, "10.0.0.5", cfg.DB.Host)
	assert.Equal(t, "5673", cfg.RMQ.Port)
}
