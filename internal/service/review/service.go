// Package review applies review decisions to profiles, commendations and
// contributions. Every transition is a compare-and-set update committed
// together with its audit entry.
package review

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

type itemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error)
	UpdateStatus(ctx context.Context, change domain.StatusChange) (*domain.ReviewableItem, error)
}

type auditWriter interface {
	Write(ctx context.Context, e domain.AuditEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides review state machine operations.
type Service struct {
	items itemRepo
	audit auditWriter
	tx    txManager
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a new review service.
func NewService(log *slog.Logger, items itemRepo, audit auditWriter, tx txManager) *Service {
	return &Service{
		items: items,
		audit: audit,
		tx:    tx,
		log:   log.With("service", "review"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Outcome is the result of a successful transition: the updated item and the
// notification the caller should hand to the side channel.
type Outcome struct {
	Item         *domain.ReviewableItem
	Notification domain.Notification
}

// Get returns one item. Members only see their own items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error) {
	actor, err := domain.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModerate() && item.OwnerID != actor.ID {
		return nil, domain.ErrNotFound
	}
	return item, nil
}
