package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/storefrontdev/storefront/internal/auth"
	"github.com/storefrontdev/storefront/internal/model"
	"github.com/storefrontdev/storefront/internal/repository"
)

// PasswordVerifier checks a clear-text password against a stored
// digest. Implemented by auth.Hasher.
type PasswordVerifier interface {
	Compare(digest, password string) bool
}

// loginResponse is the body returned by a successful login.
type loginResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    model.PublicUser `json:"user"`
}

// checkResponse is the body of GET /api/login/check.
type checkResponse struct {
	Authenticated bool              `json:"authenticated"`
	User          *model.PublicUser `json:"user,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// AuthHandler handles /api/login requests: session issuance plus
// admin-gated user management.
type AuthHandler struct {
	base
	users    *repository.Users
	verifier PasswordVerifier
	tokens   *auth.TokenManager
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	users *repository.Users,
	verifier PasswordVerifier,
	tokens *auth.TokenManager,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		base:     base{logger: logger},
		users:    users,
		verifier: verifier,
		tokens:   tokens,
	}
}

// RegisterRoutes registers the auth routes. Specific paths (check,
// logout, all) are registered before the {username} wildcard so they
// are not captured as usernames; requireAuth and requireAdmin wrap
// the protected ones.
func (h *AuthHandler) RegisterRoutes(
	router *mux.Router,
	requireAuth func(http.Handler) http.Handler,
	requireAdmin func(http.Handler) http.Handler,
) {
	router.HandleFunc("/api/login", h.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/login/check", h.Check).Methods(http.MethodGet)
	router.HandleFunc("/api/login/logout", h.Logout).Methods(http.MethodPost)

	router.Handle("/api/login",
		requireAuth(http.HandlerFunc(h.CurrentUser))).Methods(http.MethodGet)
	router.Handle("/api/login/all",
		requireAuth(requireAdmin(http.HandlerFunc(h.ListUsers)))).Methods(http.MethodGet)
	router.Handle("/api/login/{username}",
		requireAuth(requireAdmin(http.HandlerFunc(h.GetUser)))).Methods(http.MethodGet)
	router.Handle("/api/login/{username}",
		requireAuth(requireAdmin(http.HandlerFunc(h.UpdateUser)))).Methods(http.MethodPut)
	router.Handle("/api/login/{username}",
		requireAuth(requireAdmin(http.HandlerFunc(h.DeleteUser)))).Methods(http.MethodDelete)
}

// Login handles POST /api/login. On success it returns the token and
// also sets it in an HTTP-only cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.FindByUsername(r.Context(), req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.writeStorageError(w, "find user", err)
		return
	}

	if !h.verifier.Compare(user.Password, req.Password) {
		h.logger.Warn("login rejected",
			zap.String("username", req.Username),
			zap.String("remote_addr", r.RemoteAddr),
		)
		h.writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokens.Issue(&auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Type:     user.Type,
	})
	if err != nil {
		h.logger.Error("failed to issue token", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	h.writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}

// Logout handles POST /api/login/logout. The server keeps no session
// state; logout only clears the cookie, so a token retained by the
// client stays valid until its natural expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	h.writeJSON(w, http.StatusOK, messageResponse{Message: "Logout successful"})
}

// Check handles GET /api/login/check. It reports the session status
// without requiring one.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	token, err := auth.ExtractToken(r)
	if err != nil {
		h.writeJSON(w, http.StatusUnauthorized, checkResponse{
			Authenticated: false,
			Error:         "Not authenticated",
		})
		return
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		h.writeJSON(w, http.StatusUnauthorized, checkResponse{
			Authenticated: false,
			Error:         "Invalid or expired token",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, checkResponse{
		Authenticated: true,
		User: &model.PublicUser{
			ID:       claims.UserID,
			Username: claims.Username,
			Type:     claims.Type,
		},
	})
}

// CurrentUser handles GET /api/login for an authenticated session.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.users.Get(r.Context(), claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		// Account deleted after the token was issued.
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "get current user", err)
		return
	}

	h.writeJSON(w, http.StatusOK, user.Public())
}

// ListUsers handles GET /api/login/all (admin only).
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.writeStorageError(w, "list users", err)
		return
	}

	public := make([]model.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}

	h.writeJSON(w, http.StatusOK, public)
}

// GetUser handles GET /api/login/{username} (admin only).
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, err := h.users.FindByUsername(r.Context(), username)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "find user", err)
		return
	}

	h.writeJSON(w, http.StatusOK, user.Public())
}

// UpdateUser handles PUT /api/login/{username} (admin only).
func (h *AuthHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var req model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.UpdateByUsername(r.Context(), username, &req)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "update user", err)
		return
	}

	h.writeJSON(w, http.StatusOK, user.Public())
}

// DeleteUser handles DELETE /api/login/{username} (admin only).
func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	err := h.users.DeleteByUsername(r.Context(), username)
	if errors.Is(err, repository.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.writeStorageError(w, "delete user", err)
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
