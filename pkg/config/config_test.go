package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 1440, cfg.JWT.Expiration)
	assert.Equal(t, "token", cfg.Cookie.Name)
	assert.Equal(t, 30, cfg.Warranty.WindowDays)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("JWT_EXPIRATION_MINUTES", "90")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AUTH_COOKIE_SECURE", "true")
	t.Setenv("DB_PASSWORD", "p@ss:word")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.JWT.Expiration)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Cookie.Secure)
	assert.Contains(t, cfg.DB.DSN(), "p%40ss%3Aword")
}

func TestLoad_ProduccionSinSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := config.Load()
	assert.Error(t, err)
}
