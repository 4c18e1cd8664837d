package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/internal/service/review"
)

type reviewService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error)
	Submit(ctx context.Context, id uuid.UUID) (*review.Outcome, error)
	Approve(ctx context.Context, id uuid.UUID) (*review.Outcome, error)
	RequestChanges(ctx context.Context, id uuid.UUID, note string) (*review.Outcome, error)
	Reject(ctx context.Context, id uuid.UUID, reason *string) (*review.Outcome, error)
	Withdraw(ctx context.Context, id uuid.UUID) (*review.Outcome, error)
}

type notificationDispatcher interface {
	Dispatch(ctx context.Context, n domain.Notification)
}

// ReviewHandler serves single-item review transitions.
type ReviewHandler struct {
	reviews reviewService
	notify  notificationDispatcher
	log     *slog.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(reviews reviewService, notify notificationDispatcher, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
		notify:  notify,
		log:     logger.With("handler", "review"),
	}
}

type requestChangesRequest struct {
	Note string `json:"note"`
}

type rejectRequest struct {
	Reason *string `json:"reason"`
}

// Get returns one reviewable item.
// GET /api/items/{id}
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.reviews.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Submit moves a draft into review.
// POST /api/items/{id}/submit
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.reviews.Submit)
}

// Approve approves a submission.
// POST /api/items/{id}/approve
func (h *ReviewHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.reviews.Approve)
}

// Withdraw pulls a submission back to draft.
// POST /api/items/{id}/withdraw
func (h *ReviewHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.reviews.Withdraw)
}

// RequestChanges sends a submission back with a steward note.
// POST /api/items/{id}/request-changes
func (h *ReviewHandler) RequestChanges(w http.ResponseWriter, r *http.Request) {
	var req requestChangesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, func(ctx context.Context, id uuid.UUID) (*review.Outcome, error) {
		return h.reviews.RequestChanges(ctx, id, req.Note)
	})
}

// Reject rejects a submission with an optional reason.
// POST /api/items/{id}/reject
func (h *ReviewHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, func(ctx context.Context, id uuid.UUID) (*review.Outcome, error) {
		return h.reviews.Reject(ctx, id, req.Reason)
	})
}

func (h *ReviewHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id uuid.UUID) (*review.Outcome, error),
) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	out, err := apply(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	// The transition is committed; delivery must not hold up or fail the response.
	h.notify.Dispatch(context.WithoutCancel(r.Context()), out.Notification)
	writeJSON(w, http.StatusOK, out.Item)
}
