package reset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// stepRecordHistory is reported as the failed step when every content step
// applied but the history and audit records could not be written.
const stepRecordHistory = "record_history"

type step struct {
	name string
	run  func(ctx context.Context, r *domain.ResetResult) error
}

// Execute performs the reset. Any failed precondition returns a
// *domain.ValidationError before anything is touched. Each cascade step
// commits on its own; a failing step stops the cascade, and the result is
// returned together with a *domain.PartialFailureError listing what was
// applied. History and audit are written in both cases.
func (s *Service) Execute(ctx context.Context, in Input) (*domain.ResetResult, error) {
	actor, err := requireModerator(ctx)
	if err != nil {
		return nil, err
	}

	ready, profile, err := s.readiness(ctx, in)
	if err != nil {
		return nil, err
	}
	if !ready.Ready {
		return nil, validationError(in, ready)
	}

	result := &domain.ResetResult{
		ResetID:        uuid.New(),
		ProfileID:      profile.ID,
		Mode:           in.Mode,
		ResetAt:        s.now(),
		Outcome:        domain.ResetCompleted,
		CompletedSteps: []string{},
	}

	var cause error
	for _, st := range s.steps(in.Mode) {
		err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			return st.run(txCtx, result)
		})
		if err != nil {
			result.Outcome = domain.ResetPartial
			result.FailedStep = st.name
			cause = err
			break
		}
		result.CompletedSteps = append(result.CompletedSteps, st.name)
	}

	// The record of what was done must survive a caller that went away.
	if err := s.record(context.WithoutCancel(ctx), actor, in, profile, result); err != nil {
		if cause == nil {
			result.Outcome = domain.ResetPartial
			result.FailedStep = stepRecordHistory
			cause = err
		} else {
			s.log.ErrorContext(ctx, "reset history not recorded",
				slog.String("reset_id", result.ResetID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	if cause != nil {
		s.log.ErrorContext(ctx, "reset partially applied",
			slog.String("reset_id", result.ResetID.String()),
			slog.String("profile_id", profile.ID.String()),
			slog.String("failed_step", result.FailedStep),
			slog.String("error", cause.Error()),
		)
		return result, &domain.PartialFailureError{
			Operation:  "reset " + string(in.Mode),
			FailedStep: result.FailedStep,
			Completed:  result.CompletedSteps,
			Cause:      cause,
		}
	}

	s.notify.Dispatch(ctx, domain.Notification{
		Kind:        NotificationKind,
		RecipientID: profile.OwnerID,
		Recipient:   profile.OwnerEmail,
		Variables: map[string]string{
			"profileLabel": profile.DisplayLabel(),
			"mode":         string(in.Mode),
		},
	})

	s.log.InfoContext(ctx, "profile reset",
		slog.String("reset_id", result.ResetID.String()),
		slog.String("profile_id", profile.ID.String()),
		slog.String("actor_id", actor.ID.String()),
		slog.String("mode", string(in.Mode)),
		slog.String("reason", string(in.ReasonCode)),
	)

	return result, nil
}

func (s *Service) steps(mode domain.ResetMode) []step {
	profile := step{domain.ResetStepProfile, func(ctx context.Context, r *domain.ResetResult) error {
		return s.content.ResetProfile(ctx, r.ProfileID)
	}}

	if mode == domain.ResetSoft {
		return []step{
			{domain.ResetStepArchiveItems, func(ctx context.Context, r *domain.ResetResult) error {
				n, err := s.content.ArchiveArchiveItems(ctx, r.ProfileID)
				r.Counts.ArchiveItems = n
				return err
			}},
			{domain.ResetStepCommendations, func(ctx context.Context, r *domain.ResetResult) error {
				n, err := s.content.ArchiveCommendations(ctx, r.ProfileID)
				r.Counts.Commendations = n
				return err
			}},
			profile,
		}
	}

	return []step{
		{domain.ResetStepArchiveItems, func(ctx context.Context, r *domain.ResetResult) error {
			queued, err := s.content.EnqueueStorageCleanup(ctx, r.ProfileID, r.ResetID)
			if err != nil {
				return err
			}
			deleted, err := s.content.DeleteArchiveItems(ctx, r.ProfileID)
			if err != nil {
				return err
			}
			// Counted only once both commit together.
			r.Counts.CleanupQueued = queued
			r.Counts.ArchiveItems = deleted
			return nil
		}},
		{domain.ResetStepCommendations, func(ctx context.Context, r *domain.ResetResult) error {
			n, err := s.content.DeleteCommendations(ctx, r.ProfileID)
			r.Counts.Commendations = n
			return err
		}},
		{domain.ResetStepMilestones, func(ctx context.Context, r *domain.ResetResult) error {
			n, err := s.content.DeleteMilestones(ctx, r.ProfileID)
			r.Counts.Milestones = n
			return err
		}},
		profile,
	}
}

// record appends the history entry and the audit entry in one transaction.
func (s *Service) record(ctx context.Context, actor domain.Actor, in Input, profile *domain.ReviewableItem, r *domain.ResetResult) error {
	entry := domain.ResetHistoryEntry{
		ID:               r.ResetID,
		ProfileID:        r.ProfileID,
		Mode:             r.Mode,
		RequestedByID:    actor.ID,
		RequestedByEmail: actor.Email,
		ReasonCode:       in.ReasonCode,
		ReasonNote:       in.note(),
		Counts:           r.Counts,
		Outcome:          r.Outcome,
		CreatedAt:        r.ResetAt,
	}

	details := map[string]any{
		"resetId":               r.ResetID.String(),
		"mode":                  string(r.Mode),
		"reasonCode":            string(in.ReasonCode),
		"archiveItemsAffected":  r.Counts.ArchiveItems,
		"commendationsAffected": r.Counts.Commendations,
		"milestonesAffected":    r.Counts.Milestones,
		"completedSteps":        r.CompletedSteps,
	}
	if r.Mode == domain.ResetHard {
		details["cleanupQueueCount"] = r.Counts.CleanupQueued
	}
	if note := in.note(); note != nil {
		details["reasonNote"] = *note
	}
	if r.FailedStep != "" {
		details["failedStep"] = r.FailedStep
	}

	audit := domain.NewAuditEntry(actor, actionType(r), domain.ScopeProfile, &r.ProfileID, profile.DisplayLabel(), details)

	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.history.Append(txCtx, entry); err != nil {
			return fmt.Errorf("reset history: %w", err)
		}
		if err := s.audit.Write(txCtx, audit); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
}

func actionType(r *domain.ResetResult) string {
	switch {
	case r.Outcome == domain.ResetPartial:
		return domain.ActionProfileResetPartial
	case r.Mode == domain.ResetHard:
		return domain.ActionProfileResetHard
	default:
		return domain.ActionProfileResetSoft
	}
}
