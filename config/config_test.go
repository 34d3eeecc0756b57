package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithEnvParsesYAML(t *testing.T) {
	cfg, err := LoadWithEnv[Config]("config", "testdata")
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Env.Env)
	assert.Equal(t, "sistema-rastreo", cfg.Env.ServiceName)
	assert.True(t, cfg.Env.Log.Pretty)
	assert.Equal(t, 3100, cfg.HTTP.Port)

	require.NotNil(t, cfg.Postgres)
	assert.Equal(t, "rastreo_test", cfg.Postgres.DBName)
	assert.Equal(t, 30*time.Minute, cfg.Postgres.ConnMaxLifetime)

	require.NotNil(t, cfg.Auth)
	assert.Equal(t, "test-secret", cfg.Auth.Secret)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)

	require.NotNil(t, cfg.SMTP)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 5*time.Second, cfg.SMTP.SendTimeout)
}

func TestLoadWithEnvAppliesEnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("AUTH_SECRET", "from-environment")

	cfg, err := LoadWithEnv[Config]("config", "testdata")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, "from-environment", cfg.Auth.Secret)
}

func TestLoadWithEnvMissingFile(t *testing.T) {
	_, err := LoadWithEnv[Config]("nonexistent", "testdata")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
