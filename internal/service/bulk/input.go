package bulk

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/internal/service/review"
)

// MaxSelection bounds the number of ids accepted in one request.
const MaxSelection = 500

// ReviewInput is a bulk review request.
type ReviewInput struct {
	Decision domain.BulkDecision
	IDs      []uuid.UUID
	Note     string
}

// Validate checks all fields and collects all errors. request_changes needs a
// note up front, the same as the single-item path.
func (i ReviewInput) Validate() error {
	var errs []domain.FieldError

	switch i.Decision {
	case domain.BulkApprove:
	case domain.BulkRequestChanges:
		if i.trimmedNote() == "" {
			errs = append(errs, domain.FieldError{Field: "note", Message: "required for request_changes"})
		}
	default:
		errs = append(errs, domain.FieldError{Field: "decision", Message: "must be approve or request_changes"})
	}

	if utf8.RuneCountInString(i.trimmedNote()) > review.MaxNoteLength {
		errs = append(errs, domain.FieldError{Field: "note", Message: "max 2000 characters"})
	}
	if len(i.IDs) > MaxSelection {
		errs = append(errs, domain.FieldError{Field: "ids", Message: "max 500 items"})
	}
	for _, id := range i.IDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "ids", Message: "must not contain empty ids"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i ReviewInput) trimmedNote() string {
	return strings.TrimSpace(i.Note)
}
