package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/batch"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/internal/service/bulk"
)

type bulkReviewer interface {
	Start(ctx context.Context, in bulk.ReviewInput) (*batch.Started, error)
}

type jobRegistry interface {
	Get(id uuid.UUID) (*batch.Job, error)
}

// BulkHandler accepts bulk review requests and serves job progress.
type BulkHandler struct {
	reviews bulkReviewer
	jobs    jobRegistry
	log     *slog.Logger
}

// NewBulkHandler creates a BulkHandler.
func NewBulkHandler(reviews bulkReviewer, jobs jobRegistry, logger *slog.Logger) *BulkHandler {
	return &BulkHandler{
		reviews: reviews,
		jobs:    jobs,
		log:     logger.With("handler", "bulk"),
	}
}

type bulkReviewRequest struct {
	Decision domain.BulkDecision `json:"decision"`
	IDs      []uuid.UUID         `json:"ids"`
	Note     string              `json:"note"`
}

type acceptedResponse struct {
	JobID   *uuid.UUID          `json:"jobId,omitempty"`
	Summary *domain.BulkSummary `json:"summary,omitempty"`
}

// Review starts a bulk approve or request-changes run.
// POST /api/bulk/reviews
func (h *BulkHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req bulkReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	started, err := h.reviews.Start(r.Context(), bulk.ReviewInput{
		Decision: req.Decision,
		IDs:      req.IDs,
		Note:     req.Note,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeStarted(w, started)
}

// Job returns the progress or final summary of a bulk job.
// GET /api/jobs/{id}
func (h *BulkHandler) Job(w http.ResponseWriter, r *http.Request) {
	actor, err := domain.ActorFromCtx(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if !actor.CanModerate() {
		writeError(w, http.StatusForbidden, "steward access required")
		return
	}

	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	job, err := h.jobs.Get(id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// writeStarted answers 202 with the job id, or 200 with the summary when
// there was nothing to run.
func writeStarted(w http.ResponseWriter, started *batch.Started) {
	if started.Job == nil {
		writeJSON(w, http.StatusOK, acceptedResponse{Summary: started.Summary})
		return
	}
	id := started.Job.ID
	w.Header().Set("Location", "/api/jobs/"+id.String())
	writeJSON(w, http.StatusAccepted, acceptedResponse{JobID: &id})
}
