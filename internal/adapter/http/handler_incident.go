package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sentinel/sentinel/internal/domain"
	"github.com/sentinel/sentinel/internal/usecase"
	"github.com/sentinel/sentinel/internal/validation"
)

// IncidentService defines the behavior the incident handler depends on
type IncidentService interface {
	CreateIncident(ctx context.Context, req usecase.CreateIncidentRequest) (domain.Incident, error)
	GetIncident(ctx context.Context, id string) (domain.Incident, error)
	ListIncidents(ctx context.Context, status domain.IncidentStatus, priority domain.IncidentPriority) []domain.Incident
	UpdateStatus(ctx context.Context, id string, status domain.IncidentStatus) (domain.Incident, error)
	AddComment(ctx context.Context, incidentID, content string) (domain.Comment, error)
	Stats(ctx context.Context) domain.Stats
}

// AdvisorService defines the AI advisor behavior the incident handler depends on
type AdvisorService interface {
	SuggestResolution(ctx context.Context, incidentID string) (usecase.Suggestion, error)
}

type updateStatusRequest struct {
	Status domain.IncidentStatus `json:"status" validate:"required,oneof=OPEN INVESTIGATING RESOLVED CLOSED"`
}

type addCommentRequest struct {
	Content string `json:"content" validate:"notblank,max=5000"`
}

// IncidentHandler handles HTTP requests for incidents
type IncidentHandler struct {
	incidents      IncidentService
	advisor        AdvisorService
	advisorLimiter Limiter
}

// NewIncidentHandler creates a new incident handler. advisorLimiter may be nil.
func NewIncidentHandler(incidents IncidentService, advisor AdvisorService, advisorLimiter Limiter) *IncidentHandler {
	return &IncidentHandler{
		incidents:      incidents,
		advisor:        advisor,
		advisorLimiter: advisorLimiter,
	}
}

// RegisterRoutes registers incident routes
func (h *IncidentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/incidents", h.ListIncidents).Methods("GET")
	router.HandleFunc("/api/v1/incidents", h.CreateIncident).Methods("POST")
	router.HandleFunc("/api/v1/incidents/{id}", h.GetIncident).Methods("GET")
	router.HandleFunc("/api/v1/incidents/{id}/status", h.UpdateStatus).Methods("PATCH")
	router.HandleFunc("/api/v1/incidents/{id}/comments", h.AddComment).Methods("POST")
	router.HandleFunc("/api/v1/incidents/{id}/suggestion", h.advisorLimiter.wrap(h.SuggestResolution)).Methods("POST")
	router.HandleFunc("/api/v1/stats", h.Stats).Methods("GET")
}

// ListIncidents handles listing incidents with optional status and priority filters
func (h *IncidentHandler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := domain.IncidentStatus(query.Get("status"))
	priority := domain.IncidentPriority(query.Get("priority"))

	if status != "" && !status.IsValid() {
		writeAppError(w, domain.ErrInvalidStatus)
		return
	}
	if priority != "" && !priority.IsValid() {
		writeAppError(w, domain.ErrInvalidPriority)
		return
	}

	incidents := h.incidents.ListIncidents(r.Context(), status, priority)
	writeSuccessResponse(w, http.StatusOK, "Incidents retrieved successfully", incidents)
}

// CreateIncident handles incident creation
func (h *IncidentHandler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateIncidentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg, ok := validation.Struct(req); !ok {
		writeErrorResponse(w, http.StatusUnprocessableEntity, "validation_failed", msg)
		return
	}

	incident, err := h.incidents.CreateIncident(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeSuccessResponse(w, http.StatusCreated, "Incident created successfully", incident)
}

// GetIncident handles retrieving one incident with its comments
func (h *IncidentHandler) GetIncident(w http.ResponseWriter, r *http.Request) {
	incident, err := h.incidents.GetIncident(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, "Incident retrieved successfully", incident)
}

// UpdateStatus handles status changes
func (h *IncidentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg, ok := validation.Struct(req); !ok {
		writeErrorResponse(w, http.StatusUnprocessableEntity, "validation_failed", msg)
		return
	}

	incident, err := h.incidents.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeSuccessResponse(w, http.StatusOK, "Incident status updated successfully", incident)
}

// AddComment handles posting a comment
func (h *IncidentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req addCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if msg, ok := validation.Struct(req); !ok {
		writeErrorResponse(w, http.StatusUnprocessableEntity, "validation_failed", msg)
		return
	}

	comment, err := h.incidents.AddComment(r.Context(), mux.Vars(r)["id"], req.Content)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeSuccessResponse(w, http.StatusCreated, "Comment added successfully", comment)
}

// SuggestResolution asks the AI advisor about an incident
func (h *IncidentHandler) SuggestResolution(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.advisor.SuggestResolution(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, err)
		return
	}

	message := "Suggestion generated successfully"
	if !suggestion.Available {
		message = "No suggestion available"
	}
	writeSuccessResponse(w, http.StatusOK, message, suggestion)
}

// Stats returns the dashboard counters
func (h *IncidentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeSuccessResponse(w, http.StatusOK, "Stats retrieved successfully", h.incidents.Stats(r.Context()))
}
