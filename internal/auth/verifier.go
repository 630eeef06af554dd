package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbummouad/ticket-backend/internal/config"
)

// Identity is the authenticated caller for the duration of one request.
// It is constructed once by the auth gate and never mutated.
type Identity struct {
	ID    string
	Email string
}

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// CredentialVerifier resolves a bearer token to an Identity. Implementations
// must be idempotent, side-effect free and safe for concurrent use.
type CredentialVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// NewVerifier selects the verification strategy from configuration:
// a local HS256 signature check, or a delegated provider lookup.
func NewVerifier(cfg config.Config) (CredentialVerifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeLocal:
		if cfg.JWTSecret == "" {
			return nil, errors.New("auth: JWT_SECRET is required in local mode")
		}
		return NewLocalVerifier(cfg.JWTSecret), nil
	case config.AuthModeProvider:
		if cfg.ProviderURL == "" {
			return nil, errors.New("auth: AUTH_PROVIDER_URL is required in provider mode")
		}
		return NewProviderVerifier(cfg.ProviderURL, cfg.ProviderKey), nil
	default:
		return nil, fmt.Errorf("auth: unknown AUTH_MODE %q", cfg.AuthMode)
	}
}
