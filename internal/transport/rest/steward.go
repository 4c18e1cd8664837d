package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/batch"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/internal/service/steward"
)

type stewardService interface {
	Assign(ctx context.Context, in steward.AssignInput) (*domain.StewardAssignment, error)
	ListForProfile(ctx context.Context, profileID uuid.UUID, includeInactive bool) ([]domain.StewardAssignment, error)
	Deactivate(ctx context.Context, id uuid.UUID, note *string) (*domain.StewardAssignment, error)
	StartBulkDeactivate(ctx context.Context, in steward.BulkDeactivateInput) (*batch.Started, error)
	ListWorkload(ctx context.Context, window time.Duration) ([]domain.StewardWorkload, error)
}

// StewardHandler serves the steward assignment registry.
type StewardHandler struct {
	stewards stewardService
	window   time.Duration
	log      *slog.Logger
}

// NewStewardHandler creates a StewardHandler. window is the activity window
// counted in the workload view.
func NewStewardHandler(stewards stewardService, window time.Duration, logger *slog.Logger) *StewardHandler {
	return &StewardHandler{
		stewards: stewards,
		window:   window,
		log:      logger.With("handler", "steward"),
	}
}

type assignRequest struct {
	ProfileID    uuid.UUID `json:"profileId"`
	StewardEmail string    `json:"stewardEmail"`
	StewardName  *string   `json:"stewardName"`
}

type deactivateRequest struct {
	Note *string `json:"note"`
}

type bulkDeactivateRequest struct {
	IDs  []uuid.UUID `json:"ids"`
	Note *string     `json:"note"`
}

// Assign makes a steward responsible for a profile.
// POST /api/stewards/assignments
func (h *StewardHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.stewards.Assign(r.Context(), steward.AssignInput{
		ProfileID:    req.ProfileID,
		StewardEmail: req.StewardEmail,
		StewardName:  req.StewardName,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// ListForProfile returns the assignments of one profile.
// GET /api/profiles/{id}/stewards?includeInactive=true
func (h *StewardHandler) ListForProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	includeInactive := r.URL.Query().Get("includeInactive") == "true"

	list, err := h.stewards.ListForProfile(r.Context(), id, includeInactive)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Deactivate ends one assignment.
// POST /api/stewards/assignments/{id}/deactivate
func (h *StewardHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req deactivateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := h.stewards.Deactivate(r.Context(), id, req.Note)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// BulkDeactivate starts a background deactivation run.
// POST /api/bulk/steward-deactivations
func (h *StewardHandler) BulkDeactivate(w http.ResponseWriter, r *http.Request) {
	var req bulkDeactivateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	started, err := h.stewards.StartBulkDeactivate(r.Context(), steward.BulkDeactivateInput{
		IDs:  req.IDs,
		Note: req.Note,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeStarted(w, started)
}

// Workload lists active stewards with their profile and review counts.
// GET /api/stewards/workload?days=30
func (h *StewardHandler) Workload(w http.ResponseWriter, r *http.Request) {
	window := h.window
	days, err := queryInt(r, "days", 0)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if days < 0 {
		handleError(h.log, w, r, domain.NewValidationError("days", "must not be negative"))
		return
	}
	if days > 0 {
		window = time.Duration(days) * 24 * time.Hour
	}

	list, err := h.stewards.ListWorkload(r.Context(), window)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
