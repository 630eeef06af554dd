package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbummouad/ticket-backend/internal/config"
)

func TestNewVerifier(t *testing.T) {
	t.Run("local mode", func(t *testing.T) {
		v, err := NewVerifier(config.Config{AuthMode: config.AuthModeLocal, JWTSecret: "s"})
		require.NoError(t, err)
		assert.IsType(t, &LocalVerifier{}, v)
	})

	t.Run("local mode requires a secret", func(t *testing.T) {
		_, err := NewVerifier(config.Config{AuthMode: config.AuthModeLocal})
		assert.Error(t, err)
	})

	t.Run("provider mode", func(t *testing.T) {
		v, err := NewVerifier(config.Config{AuthMode: config.AuthModeProvider, ProviderURL: "http://localhost"})
		require.NoError(t, err)
		assert.IsType(t, &ProviderVerifier{}, v)
	})

	t.Run("provider mode requires an endpoint", func(t *testing.T) {
		_, err := NewVerifier(config.Config{AuthMode: config.AuthModeProvider})
		assert.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := NewVerifier(config.Config{AuthMode: "keycloak"})
		assert.Error(t, err)
	})
}
