package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/validation"
)

// UserService defines the behavior the user handler depends on
type UserService interface {
	ListUsers(ctx context.Context) []domain.User
	UpdateRole(ctx context.Context, id string, role domain.UserRole) (domain.User, error)
	ToggleStatus(ctx context.Context, id string) (domain.User, error)
	AuditLogs(ctx context.Context, limit int) []domain.AuditEntry
}

type updateRoleRequest struct {
	Role domain.UserRole `json:"role" validate:"required,oneof=ADMIN OPERATOR"`
}

// UserHandler handles user management and the audit log
type UserHandler struct {
	users UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes registers user and audit routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/users", h.ListUsers).Methods("GET")
	router.HandleFunc("/api/v1/users/{id}/role", h.UpdateRole).Methods("PATCH")
	router.HandleFunc("/api/v1/users/{id}/toggle-status", h.ToggleStatus).Methods("POST")
	router.HandleFunc("/api/v1/audit-logs", h.AuditLogs).Methods("GET")
}

// ListUsers handles listing users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	writeSuccessResponse(w, http.StatusOK, "Users retrieved successfully", h.users.ListUsers(r.Context()))
}

// UpdateRole handles role changes
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg, ok := validation.Struct(req); !ok {
		writeErrorResponse(w, http.StatusUnprocessableEntity, "validation_failed", msg)
		return
	}

	user, err := h.users.UpdateRole(r.Context(), mux.Vars(r)["id"], req.Role)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, "User role updated successfully", user)
}

// ToggleStatus handles enabling or disabling a user
func (h *UserHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.ToggleStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, "User status toggled successfully", user)
}

// AuditLogs returns the audit log newest first. ?limit= caps the result.
func (h *UserHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 0 {
			writeErrorResponse(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = l
	}

	writeSuccessResponse(w, http.StatusOK, "Audit logs retrieved successfully", h.users.AuditLogs(r.Context(), limit))
}
