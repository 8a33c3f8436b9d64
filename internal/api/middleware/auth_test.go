package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmachado/library-api/internal/api/shared"
	"github.com/rmachado/library-api/internal/service/auth"
)

type stubJWTService struct {
	claims *auth.Claims
	err    error
}

func (s *stubJWTService) GenerateToken(_ context.Context, _ int64) (string, error) {
	return "", nil
}

func (s *stubJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	return s.claims, s.err
}

type stubDenylist struct {
	revoked map[string]bool
	err     error
}

func (s *stubDenylist) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	if s.revoked == nil {
		s.revoked = make(map[string]bool)
	}
	s.revoked[tokenID] = true
	return nil
}

func (s *stubDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], s.err
}

func validClaims() *auth.Claims {
	return &auth.Claims{
		UserID:        41,
		Authenticated: true,
		ID:            "token-abc",
		ExpiresAt:     time.Now().Add(time.Hour),
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid token reaches the handler with identity", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&stubJWTService{claims: validClaims()}, &stubDenylist{})

		var gotUserID int64
		var gotClaims *auth.Claims
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID, _ = shared.GetUserID(r.Context())
			gotClaims, _ = r.Context().Value(shared.TokenClaimsContextKey).(*auth.Claims)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/getUser", nil)
		req.Header.Set("Authorization", "Bearer some.jwt.token")
		rec := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(41), gotUserID)
		require.NotNil(t, gotClaims)
		assert.Equal(t, "token-abc", gotClaims.ID)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&stubJWTService{claims: validClaims()}, &stubDenylist{})

		req := httptest.NewRequest(http.MethodGet, "/getUser", nil)
		rec := httptest.NewRecorder()

		mw.Authenticate(blockedHandler(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&stubJWTService{claims: validClaims()}, &stubDenylist{})

		req := httptest.NewRequest(http.MethodGet, "/getUser", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		mw.Authenticate(blockedHandler(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		mw := NewAuthMiddleware(&stubJWTService{err: auth.ErrExpiredToken}, &stubDenylist{})

		req := httptest.NewRequest(http.MethodGet, "/getUser", nil)
		req.Header.Set("Authorization", "Bearer some.jwt.token")
		rec := httptest.NewRecorder()

		mw.Authenticate(blockedHandler(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token expired")
	})

	t.Run("revoked token", func(t *testing.T) {
		t.Parallel()
		denylist := &stubDenylist{revoked: map[string]bool{"token-abc": true}}
		mw := NewAuthMiddleware(&stubJWTService{claims: validClaims()}, denylist)

		req := httptest.NewRequest(http.MethodGet, "/getUser", nil)
		req.Header.Set("Authorization", "Bearer some.jwt.token")
		rec := httptest.NewRecorder()

		mw.Authenticate(blockedHandler(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "revoked")
	})
}

// blockedHandler fails the test if the middleware lets the request through.
func blockedHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("handler must not be reached")
	})
}
