// Package audit owns the audit log: the single write path used by every
// mutating operation, filtered reads, CSV export and retention cleanup.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

type auditRepo interface {
	Append(ctx context.Context, e domain.AuditEntry) error
	Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error)
	Count(ctx context.Context, f domain.AuditFilter) (int, error)
	CountAll(ctx context.Context) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	ActivityByActor(ctx context.Context, since time.Time, actionTypes []string) (domain.ActorActivity, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultQueryLimit = 50
	MaxQueryLimit     = 500
	DefaultExportRows = 1000
)

// Service provides audit log operations.
type Service struct {
	repo          auditRepo
	tx            txManager
	log           *slog.Logger
	exportMaxRows int
	now           func() time.Time
}

// NewService creates a new audit service. exportMaxRows caps CSV exports.
func NewService(log *slog.Logger, repo auditRepo, tx txManager, exportMaxRows int) *Service {
	if exportMaxRows < 1 {
		exportMaxRows = DefaultExportRows
	}
	return &Service{
		repo:          repo,
		tx:            tx,
		log:           log.With("service", "audit"),
		exportMaxRows: exportMaxRows,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Write appends one entry. When ctx carries a transaction the entry commits
// or rolls back with it.
func (s *Service) Write(ctx context.Context, e domain.AuditEntry) error {
	if err := validateEntry(e); err != nil {
		return err
	}
	return s.repo.Append(ctx, e)
}

// reviewActivityTypes are the action types counted as review activity.
var reviewActivityTypes = []string{
	domain.ReviewActionType(domain.ItemKindProfile, domain.VerbApprove),
	domain.ReviewActionType(domain.ItemKindProfile, domain.VerbRequestChanges),
	domain.ReviewActionType(domain.ItemKindCommendation, domain.VerbApprove),
	domain.ReviewActionType(domain.ItemKindCommendation, domain.VerbReject),
}

// ActivitySince counts profile and commendation review actions per actor
// email since the given time.
func (s *Service) ActivitySince(ctx context.Context, since time.Time) (domain.ActorActivity, error) {
	return s.repo.ActivityByActor(ctx, since, reviewActivityTypes)
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
