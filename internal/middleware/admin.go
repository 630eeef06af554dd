package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/cbummouad/ticket-backend/internal/auth"
	"github.com/cbummouad/ticket-backend/internal/utils"
)

// RequireAdmin is the admin gate, applied after WithAuth on privileged
// routes. It performs exactly one role lookup per request and checks,
// case-insensitively, for a role named "admin".
//
// When the lookup itself fails the gate answers 500 rather than deny:
// a provider outage must not read as "not admin". Set denyOnError to
// get fail-closed (403) behavior instead.
func RequireAdmin(log zerolog.Logger, resolver auth.RoleResolver, timeout time.Duration, denyOnError bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				utils.Error(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			grants, err := resolver.RolesOf(ctx, identity.ID)
			cancel()
			if err != nil {
				log.Error().Err(err).Str("user_id", identity.ID).Msg("role lookup failed")
				if denyOnError {
					utils.Error(w, http.StatusForbidden, "Admin access required.")
					return
				}
				utils.Error(w, http.StatusInternalServerError, "Authorization check failed.")
				return
			}

			if !auth.HasAdmin(grants) {
				utils.Error(w, http.StatusForbidden, "Admin access required.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
