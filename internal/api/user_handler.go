package api

import (
	"net/http"

	"github.com/rmachado/library-api/internal/api/shared"
	"github.com/rmachado/library-api/internal/service"
	"github.com/rmachado/library-api/internal/service/auth"
)

// UserHandler handles account and session requests.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// SignUp handles POST /signup.
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, UserResponse{ID: user.ID, Name: user.Name})
}

// SignIn handles POST /signin.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.userService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, SigninResponse{Token: token})
}

// SignOut handles POST /signout. The auth middleware has already validated
// the token and stored its claims in the context.
func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(shared.TokenClaimsContextKey).(*auth.Claims)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	if err := h.userService.SignOut(r.Context(), claims); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Signed out successfully")
}

// GetUser handles GET /getUser.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, UserResponse{ID: user.ID, Name: user.Name})
}

// UpdateUserName handles PUT /updateUserName.
func (h *UserHandler) UpdateUserName(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req UpdateUserNameRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateUserName(r.Context(), userID, req.Name)
	if err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, UserResponse{ID: user.ID, Name: user.Name})
}

// DeleteUser handles DELETE /deleteUser.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req DeleteUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userID, req.Password); err != nil {
		RespondWithServiceError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "User deleted successfully")
}
