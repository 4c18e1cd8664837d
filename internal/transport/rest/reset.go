package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/internal/service/reset"
)

type resetService interface {
	CheckReadiness(ctx context.Context, in reset.Input) (*domain.ResetReadiness, error)
	Execute(ctx context.Context, in reset.Input) (*domain.ResetResult, error)
	History(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ResetHistoryEntry, error)
}

// ResetHandler serves Safe Reset.
type ResetHandler struct {
	resets resetService
	log    *slog.Logger
}

// NewResetHandler creates a ResetHandler.
func NewResetHandler(resets resetService, logger *slog.Logger) *ResetHandler {
	return &ResetHandler{
		resets: resets,
		log:    logger.With("handler", "reset"),
	}
}

type resetRequest struct {
	Mode         domain.ResetMode   `json:"mode"`
	ReasonCode   domain.ResetReason `json:"reasonCode"`
	ReasonNote   *string            `json:"reasonNote"`
	Confirmation string             `json:"confirmation"`
}

func (req resetRequest) input(profileID uuid.UUID) reset.Input {
	return reset.Input{
		ProfileID:    profileID,
		Mode:         req.Mode,
		ReasonCode:   req.ReasonCode,
		ReasonNote:   req.ReasonNote,
		Confirmation: req.Confirmation,
	}
}

// Readiness reports which preconditions are still missing.
// POST /api/profiles/{id}/reset/readiness
func (h *ResetHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req resetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rd, err := h.resets.CheckReadiness(r.Context(), req.input(id))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rd)
}

// Execute runs a soft or hard reset. A reset that stopped part way answers
// 207 with the steps that were applied.
// POST /api/profiles/{id}/reset
func (h *ResetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req resetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.resets.Execute(r.Context(), req.input(id))
	if err != nil && errors.Is(err, domain.ErrPartialFailure) && res != nil {
		h.log.WarnContext(r.Context(), "reset partially applied",
			slog.String("profile_id", id.String()),
			slog.String("failed_step", res.FailedStep),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusMultiStatus, res)
		return
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// History lists the most recent resets of a profile.
// GET /api/profiles/{id}/reset-history?limit=20
func (h *ResetHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.resets.History(r.Context(), id, limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
