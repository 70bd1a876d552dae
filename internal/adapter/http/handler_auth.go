package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/validation"
)

// AuthService defines the behavior the auth handler depends on
type AuthService interface {
	Login(ctx context.Context, role domain.UserRole) (domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (domain.User, error)
}

// Limiter wraps a handler with rate limiting
type Limiter func(http.HandlerFunc) http.HandlerFunc

func (l Limiter) wrap(h http.HandlerFunc) http.HandlerFunc {
	if l == nil {
		return h
	}
	return l(h)
}

type loginRequest struct {
	Role domain.UserRole `json:"role" validate:"required,oneof=ADMIN OPERATOR"`
}

// AuthHandler handles the simulated login and session endpoints
type AuthHandler struct {
	auth         AuthService
	loginLimiter Limiter
}

// NewAuthHandler creates a new auth handler. loginLimiter may be nil.
func NewAuthHandler(auth AuthService, loginLimiter Limiter) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		loginLimiter: loginLimiter,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/auth/login", h.loginLimiter.wrap(h.Login)).Methods("POST")
	router.HandleFunc("/api/v1/auth/logout", h.Logout).Methods("POST")
	router.HandleFunc("/api/v1/auth/me", h.Me).Methods("GET")
}

// Login provisions the identity for the requested role
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg, ok := validation.Struct(req); !ok {
		writeErrorResponse(w, http.StatusUnprocessableEntity, "validation_failed", msg)
		return
	}

	user, err := h.auth.Login(r.Context(), req.Role)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, "Logged in successfully", user)
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		writeAppError(w, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the session identity
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.CurrentUser(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, "Current user retrieved successfully", user)
}
