package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rmachado/library-api/internal/api/shared"
	"github.com/rmachado/library-api/internal/redact"
	"github.com/rmachado/library-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	denylist   auth.TokenDenylist
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, denylist auth.TokenDenylist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		denylist:   denylist,
	}
}

// Authenticate validates JWT tokens from the Authorization header, rejects
// revoked tokens, and adds the user ID and claims to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required", nil)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format", nil)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch err {
			case auth.ErrExpiredToken:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired", nil)
			case auth.ErrInvalidToken, auth.ErrTokenNotYetValid:
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token", nil)
			default:
				slog.Error("failed to validate token", "error", redact.Error(err))
				shared.RespondWithError(
					w,
					r,
					http.StatusInternalServerError,
					"Authentication error",
					nil,
				)
			}
			return
		}

		// A signed-out token is still cryptographically valid; the denylist
		// is what actually ends the session.
		revoked, err := m.denylist.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			slog.Error("failed to check token denylist", "error", redact.Error(err))
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error", nil)
			return
		}
		if revoked {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Token has been revoked", nil)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserIDContextKey, claims.UserID)
		ctx = context.WithValue(ctx, shared.TokenClaimsContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
