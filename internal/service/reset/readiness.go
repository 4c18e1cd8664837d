package reset

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// CheckReadiness evaluates every precondition independently, without
// mutating anything.
func (s *Service) CheckReadiness(ctx context.Context, in Input) (*domain.ResetReadiness, error) {
	if _, err := requireModerator(ctx); err != nil {
		return nil, err
	}
	r, _, err := s.readiness(ctx, in)
	return r, err
}

// readiness also returns the profile when it was found. Only infrastructure
// failures are returned as errors.
func (s *Service) readiness(ctx context.Context, in Input) (*domain.ResetReadiness, *domain.ReviewableItem, error) {
	r := &domain.ResetReadiness{Missing: []string{}}

	var profile *domain.ReviewableItem
	if in.ProfileID != uuid.Nil {
		p, err := s.profiles.GetByID(ctx, in.ProfileID)
		switch {
		case err == nil:
			if p.Kind == domain.ItemKindProfile {
				profile = p
			}
		case errors.Is(err, domain.ErrNotFound):
		default:
			return nil, nil, fmt.Errorf("get profile: %w", err)
		}
	}

	r.ProfileSelected = profile != nil
	r.ReasonValid = in.reasonError() == ""
	r.ConfirmationMatched = in.confirmed()

	if !r.ProfileSelected {
		r.Missing = append(r.Missing, MissingProfile)
	}
	if !in.Mode.IsValid() {
		r.Missing = append(r.Missing, MissingMode)
	}
	if !r.ReasonValid {
		r.Missing = append(r.Missing, MissingReason)
	}
	if !r.ConfirmationMatched {
		r.Missing = append(r.Missing, MissingConfirmation)
	}
	r.Ready = len(r.Missing) == 0
	return r, profile, nil
}

// validationError names each failed precondition.
func validationError(in Input, r *domain.ResetReadiness) error {
	errs := make([]domain.FieldError, 0, len(r.Missing))
	for _, m := range r.Missing {
		switch m {
		case MissingProfile:
			errs = append(errs, domain.FieldError{Field: "profile_id", Message: "profile not found"})
		case MissingMode:
			errs = append(errs, domain.FieldError{Field: "mode", Message: "must be soft or hard"})
		case MissingReason:
			errs = append(errs, domain.FieldError{Field: "reason", Message: in.reasonError()})
		case MissingConfirmation:
			errs = append(errs, domain.FieldError{Field: "confirmation", Message: "must be exactly " + domain.ResetConfirmationPhrase})
		}
	}
	return &domain.ValidationError{Errors: errs}
}
