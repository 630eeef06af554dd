package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cbummouad/ticket-backend/internal/auth"
	"github.com/cbummouad/ticket-backend/internal/utils"
)

type ctxKey string

const ctxIdentity ctxKey = "identity"

// IdentityFrom reads the authenticated identity attached by WithAuth.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(ctxIdentity).(auth.Identity)
	return id, ok
}

// BearerToken extracts the credential from the Authorization header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// WithAuth is the authentication gate: it verifies the bearer token and
// attaches the resolved identity to the request context. Requests
// without a valid credential are rejected with 401 and never reach the
// handler. Verification is bounded by timeout and never retried.
func WithAuth(log zerolog.Logger, verifier auth.CredentialVerifier, timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := BearerToken(r)
			if tok == "" {
				utils.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			identity, err := verifier.Verify(ctx, tok)
			cancel()
			if err != nil {
				// Uniform 401; the concrete failure (signature, expiry,
				// provider rejection) is not disclosed to the caller.
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("token rejected")
				utils.Error(w, http.StatusUnauthorized, "Invalid token.")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxIdentity, identity)))
		})
	}
}
