// Package reset clears a profile's contributed content back to an empty
// draft. Soft resets archive content, hard resets delete it and queue its
// storage for cleanup. Accounts, roles, steward assignments and the audit
// and reset logs are never touched.
package reset

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

type contentRepo interface {
	ArchiveArchiveItems(ctx context.Context, profileID uuid.UUID) (int, error)
	ArchiveCommendations(ctx context.Context, profileID uuid.UUID) (int, error)
	EnqueueStorageCleanup(ctx context.Context, profileID, resetID uuid.UUID) (int, error)
	DeleteArchiveItems(ctx context.Context, profileID uuid.UUID) (int, error)
	DeleteCommendations(ctx context.Context, profileID uuid.UUID) (int, error)
	DeleteMilestones(ctx context.Context, profileID uuid.UUID) (int, error)
	ResetProfile(ctx context.Context, profileID uuid.UUID) error
}

type historyRepo interface {
	Append(ctx context.Context, e domain.ResetHistoryEntry) error
	ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ResetHistoryEntry, error)
}

type profileLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error)
}

type auditWriter interface {
	Write(ctx context.Context, e domain.AuditEntry) error
}

type notifier interface {
	Dispatch(ctx context.Context, n domain.Notification)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// NotificationKind is the notification sent to the owner of a reset profile.
const NotificationKind = "profile.reset"

// Service provides Safe Reset operations.
type Service struct {
	content  contentRepo
	history  historyRepo
	profiles profileLookup
	audit    auditWriter
	notify   notifier
	tx       txManager
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new reset service.
func NewService(
	log *slog.Logger,
	content contentRepo,
	history historyRepo,
	profiles profileLookup,
	audit auditWriter,
	notify notifier,
	tx txManager,
) *Service {
	return &Service{
		content:  content,
		history:  history,
		profiles: profiles,
		audit:    audit,
		notify:   notify,
		tx:       tx,
		log:      log.With("service", "reset"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// History returns the most recent resets of a profile, newest first.
func (s *Service) History(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ResetHistoryEntry, error) {
	if _, err := requireModerator(ctx); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.history.ListByProfile(ctx, profileID, limit)
}

func requireModerator(ctx context.Context) (domain.Actor, error) {
	actor, err := domain.ActorFromCtx(ctx)
	if err != nil {
		return domain.Actor{}, err
	}
	if !actor.CanModerate() {
		return domain.Actor{}, domain.ErrForbidden
	}
	return actor, nil
}
