package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmachado/library-api/internal/api/shared"
	"github.com/rmachado/library-api/internal/domain"
	"github.com/rmachado/library-api/internal/service"
	"github.com/rmachado/library-api/internal/service/auth"
	"github.com/rmachado/library-api/internal/store"
)

// withUser attaches an authenticated user ID the way the auth middleware does.
func withUser(req *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func TestUserHandlerSignUp(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := &mockUserService{
			signUpFn: func(_ context.Context, email, password, name string) (*domain.User, error) {
				assert.Equal(t, "reader@example.com", email)
				return &domain.User{ID: 41, Name: name}, nil
			},
		}
		handler := NewUserHandler(svc)

		body := `{"email":"reader@example.com","password":"secret123","name":"Reader One"}`
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)

		var user UserResponse
		require.NoError(t, testJSON.Unmarshal(env.Data, &user))
		assert.Equal(t, int64(41), user.ID)
		assert.Equal(t, "Reader One", user.Name)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		svc := &mockUserService{
			signUpFn: func(_ context.Context, _, _, _ string) (*domain.User, error) {
				return nil, service.E(service.FailureUserAlreadyExists, "sign up", store.ErrEmailExists)
			},
		}
		handler := NewUserHandler(svc)

		body := `{"email":"reader@example.com","password":"secret123","name":"Reader One"}`
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "User already exists", env.Message)
	})

	t.Run("short password", func(t *testing.T) {
		t.Parallel()
		handler := NewUserHandler(&mockUserService{})

		body := `{"email":"reader@example.com","password":"short","name":"Reader One"}`
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "too short", env.Errors["password"])
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		handler := NewUserHandler(&mockUserService{})

		body := `{"email":"not-an-email","password":"secret123","name":"Reader One"}`
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignUp(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserHandlerSignIn(t *testing.T) {
	t.Parallel()

	t.Run("returns the token", func(t *testing.T) {
		t.Parallel()
		svc := &mockUserService{
			signInFn: func(_ context.Context, _, _ string) (string, error) {
				return "signed-token", nil
			},
		}
		handler := NewUserHandler(svc)

		body := `{"email":"reader@example.com","password":"secret123"}`
		req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignIn(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)

		var resp SigninResponse
		require.NoError(t, testJSON.Unmarshal(env.Data, &resp))
		assert.Equal(t, "signed-token", resp.Token)
	})

	t.Run("bad credentials", func(t *testing.T) {
		t.Parallel()
		svc := &mockUserService{
			signInFn: func(_ context.Context, _, _ string) (string, error) {
				return "", service.E(service.FailureInvalidCredentials, "sign in",
					errors.New("mismatch"))
			},
		}
		handler := NewUserHandler(svc)

		body := `{"email":"reader@example.com","password":"wrong1"}`
		req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.SignIn(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "Invalid credentials", env.Message)
	})
}

func TestUserHandlerSignOut(t *testing.T) {
	t.Parallel()

	t.Run("revokes via the service", func(t *testing.T) {
		t.Parallel()
		var revokedID string
		svc := &mockUserService{
			signOutFn: func(_ context.Context, claims *auth.Claims) error {
				revokedID = claims.ID
				return nil
			},
		}
		handler := NewUserHandler(svc)

		claims := &auth.Claims{UserID: 41, ID: "token-abc", ExpiresAt: time.Now().Add(time.Hour)}
		req := httptest.NewRequest(http.MethodPost, "/signout", nil)
		ctx := context.WithValue(req.Context(), shared.TokenClaimsContextKey, claims)
		rec := httptest.NewRecorder()

		handler.SignOut(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "token-abc", revokedID)
	})

	t.Run("missing claims", func(t *testing.T) {
		t.Parallel()
		handler := NewUserHandler(&mockUserService{})

		req := httptest.NewRequest(http.MethodPost, "/signout", nil)
		rec := httptest.NewRecorder()

		handler.SignOut(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserHandlerGetUser(t *testing.T) {
	t.Parallel()

	svc := &mockUserService{
		getUserFn: func(_ context.Context, userID int64) (*domain.User, error) {
			return &domain.User{ID: userID, Name: "Reader One"}, nil
		},
	}
	handler := NewUserHandler(svc)

	req := withUser(httptest.NewRequest(http.MethodGet, "/getUser", nil), 41)
	rec := httptest.NewRecorder()

	handler.GetUser(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var user UserResponse
	require.NoError(t, testJSON.Unmarshal(env.Data, &user))
	assert.Equal(t, int64(41), user.ID)
	// Credential material never appears in the body.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "digest")
}

func TestUserHandlerUpdateUserName(t *testing.T) {
	t.Parallel()

	svc := &mockUserService{
		updateUserNameFn: func(_ context.Context, userID int64, name string) (*domain.User, error) {
			return &domain.User{ID: userID, Name: name}, nil
		},
	}
	handler := NewUserHandler(svc)

	req := withUser(httptest.NewRequest(http.MethodPut, "/updateUserName",
		strings.NewReader(`{"name":"New Name"}`)), 41)
	rec := httptest.NewRecorder()

	handler.UpdateUserName(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var user UserResponse
	require.NoError(t, testJSON.Unmarshal(env.Data, &user))
	assert.Equal(t, "New Name", user.Name)
}

func TestUserHandlerDeleteUser(t *testing.T) {
	t.Parallel()

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		svc := &mockUserService{
			deleteUserFn: func(_ context.Context, _ int64, _ string) error {
				return service.E(service.FailureInvalidCredentials, "delete user",
					errors.New("mismatch"))
			},
		}
		handler := NewUserHandler(svc)

		req := withUser(httptest.NewRequest(http.MethodDelete, "/deleteUser",
			strings.NewReader(`{"password":"wrong1"}`)), 41)
		rec := httptest.NewRecorder()

		handler.DeleteUser(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc := &mockUserService{
			deleteUserFn: func(_ context.Context, userID int64, _ string) error {
				assert.Equal(t, int64(41), userID)
				return nil
			},
		}
		handler := NewUserHandler(svc)

		req := withUser(httptest.NewRequest(http.MethodDelete, "/deleteUser",
			strings.NewReader(`{"password":"secret123"}`)), 41)
		rec := httptest.NewRecorder()

		handler.DeleteUser(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		handler := NewUserHandler(&mockUserService{})

		req := httptest.NewRequest(http.MethodDelete, "/deleteUser",
			strings.NewReader(`{"password":"secret123"}`))
		rec := httptest.NewRecorder()

		handler.DeleteUser(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
