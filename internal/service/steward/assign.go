package steward

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Assign creates a new active assignment. An existing active assignment for
// the same profile and email is a domain.ErrConflict; inactive ones are never
// reused.
func (s *Service) Assign(ctx context.Context, in AssignInput) (*domain.StewardAssignment, error) {
	actor, err := requireModerator(ctx)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created *domain.StewardAssignment
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		profile, err := s.profiles.GetByID(txCtx, in.ProfileID)
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		if profile.Kind != domain.ItemKindProfile {
			return fmt.Errorf("item %s is a %s: %w", profile.ID, profile.Kind, domain.ErrNotFound)
		}

		active, err := s.assignments.HasActive(txCtx, in.ProfileID, in.StewardEmail)
		if err != nil {
			return err
		}
		if active {
			return conflict(in)
		}

		a := domain.StewardAssignment{
			ID:           uuid.New(),
			ProfileID:    in.ProfileID,
			StewardEmail: in.StewardEmail,
			StewardName:  in.StewardName,
			Status:       domain.AssignmentActive,
			AssignedAt:   s.now(),
			AssignedBy:   actor.ID,
		}

		user, err := s.users.GetByEmail(txCtx, in.StewardEmail)
		switch {
		case err == nil:
			a.StewardUserID = &user.ID
			if a.StewardName == nil {
				a.StewardName = user.Name
			}
		case errors.Is(err, domain.ErrNotFound):
			a.InviteEmailPending = true
		default:
			return fmt.Errorf("lookup steward account: %w", err)
		}

		created, err = s.assignments.Create(txCtx, a)
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost a race with a concurrent assign.
			return conflict(in)
		}
		if err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}

		details := map[string]any{
			"stewardEmail":       created.StewardEmail,
			"inviteEmailPending": created.InviteEmailPending,
		}
		if created.StewardName != nil {
			details["stewardName"] = *created.StewardName
		}
		entry := domain.NewAuditEntry(actor, domain.ActionStewardAssigned, domain.ScopeSteward,
			&created.ProfileID, profile.DisplayLabel(), details)
		if err := s.audit.Write(txCtx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "steward assigned",
		slog.String("assignment_id", created.ID.String()),
		slog.String("profile_id", created.ProfileID.String()),
		slog.String("actor_id", actor.ID.String()),
		slog.Bool("invite_pending", created.InviteEmailPending),
	)

	return created, nil
}

func conflict(in AssignInput) error {
	return fmt.Errorf("%s already stewards profile %s: %w", in.StewardEmail, in.ProfileID, domain.ErrConflict)
}

// ListForProfile returns the assignments of a profile, newest first.
func (s *Service) ListForProfile(ctx context.Context, profileID uuid.UUID, includeInactive bool) ([]domain.StewardAssignment, error) {
	if _, err := requireModerator(ctx); err != nil {
		return nil, err
	}
	return s.assignments.ListByProfile(ctx, profileID, includeInactive)
}
