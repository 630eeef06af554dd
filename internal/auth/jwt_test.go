package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestLocalVerifier_Verify(t *testing.T) {
	v := NewLocalVerifier(testSecret)
	ctx := context.Background()

	t.Run("valid token resolves subject and email", func(t *testing.T) {
		tok, err := Sign(testSecret, "u-123", "a@example.com", time.Hour)
		require.NoError(t, err)

		id, err := v.Verify(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, Identity{ID: "u-123", Email: "a@example.com"}, id)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := v.Verify(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := v.Verify(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		tok, err := Sign(testSecret, "u-123", "a@example.com", -time.Minute)
		require.NoError(t, err)

		_, err = v.Verify(ctx, tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := Sign("other-secret", "u-123", "a@example.com", time.Hour)
		require.NoError(t, err)

		_, err = v.Verify(ctx, tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects non-HMAC signing method", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u-123"},
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = v.Verify(ctx, tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("idempotent for the same token", func(t *testing.T) {
		tok, err := Sign(testSecret, "u-123", "a@example.com", time.Hour)
		require.NoError(t, err)

		first, err := v.Verify(ctx, tok)
		require.NoError(t, err)
		second, err := v.Verify(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
