package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// CleanupResult reports a retention run.
type CleanupResult struct {
	Cutoff         time.Time `json:"cutoff"`
	Deleted        int       `json:"deleted"`
	RemainingTotal int       `json:"remainingTotal"`
}

// Cleanup deletes entries older than retentionDays and records the run.
// The remaining total includes the entry describing the cleanup itself.
func (s *Service) Cleanup(ctx context.Context, retentionDays int) (*CleanupResult, error) {
	actor, err := domain.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if retentionDays < 1 {
		return nil, domain.NewValidationError("retentionDays", "must be at least 1")
	}

	res := &CleanupResult{Cutoff: s.now().AddDate(0, 0, -retentionDays)}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		before, err := s.repo.CountAll(txCtx)
		if err != nil {
			return fmt.Errorf("count before cleanup: %w", err)
		}

		res.Deleted, err = s.repo.DeleteOlderThan(txCtx, res.Cutoff)
		if err != nil {
			return fmt.Errorf("delete expired entries: %w", err)
		}

		entry := domain.NewAuditEntry(actor, domain.ActionAuditRetentionCleanup, domain.ScopeSystem, nil, "", map[string]any{
			"before":        before,
			"deleted":       res.Deleted,
			"retentionDays": retentionDays,
			"cutoff":        res.Cutoff.Format(time.RFC3339),
		})
		if err := s.Write(txCtx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		res.RemainingTotal, err = s.repo.CountAll(txCtx)
		if err != nil {
			return fmt.Errorf("count after cleanup: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "audit retention cleanup",
		slog.String("actor_id", actor.ID.String()),
		slog.Int("retention_days", retentionDays),
		slog.Int("deleted", res.Deleted),
		slog.Int("remaining", res.RemainingTotal),
	)

	return res, nil
}
