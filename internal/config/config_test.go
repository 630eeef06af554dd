package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "API_PORT", "DB_DSN", "CORS_ORIGIN",
		"AUTH_MODE", "JWT_SECRET", "AUTH_PROVIDER_URL", "AUTH_PROVIDER_KEY",
		"AUTH_TIMEOUT", "AUTH_ADMIN_DENY_ON_ERROR",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, AuthModeLocal, cfg.AuthMode)
	assert.Equal(t, 5*time.Second, cfg.AuthTimeout)
	assert.False(t, cfg.AdminDenyOnError)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_PORT", "8080")
	t.Setenv("AUTH_MODE", AuthModeProvider)
	t.Setenv("AUTH_PROVIDER_URL", "https://id.example.com")
	t.Setenv("AUTH_TIMEOUT", "750ms")
	t.Setenv("AUTH_ADMIN_DENY_ON_ERROR", "true")

	cfg := Load()
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, AuthModeProvider, cfg.AuthMode)
	assert.Equal(t, "https://id.example.com", cfg.ProviderURL)
	assert.Equal(t, 750*time.Millisecond, cfg.AuthTimeout)
	assert.True(t, cfg.AdminDenyOnError)
}

func TestBadValuesFallBack(t *testing.T) {
	t.Setenv("AUTH_TIMEOUT", "not-a-duration")
	t.Setenv("AUTH_ADMIN_DENY_ON_ERROR", "maybe")

	cfg := Load()
	assert.Equal(t, 5*time.Second, cfg.AuthTimeout)
	assert.False(t, cfg.AdminDenyOnError)
}
