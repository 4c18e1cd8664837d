package steward

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

const (
	MaxNameLength = 200
	MaxNoteLength = 500
	MaxSelection  = 500
)

// AssignInput is a request to make a steward responsible for a profile.
type AssignInput struct {
	ProfileID    uuid.UUID
	StewardEmail string
	StewardName  *string
}

// Validate checks all fields and collects all errors. On success the email is
// lower-cased and the name trimmed.
func (i *AssignInput) Validate() error {
	var errs []domain.FieldError

	if i.ProfileID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "profile_id", Message: "required"})
	}

	email := strings.ToLower(strings.TrimSpace(i.StewardEmail))
	switch {
	case email == "":
		errs = append(errs, domain.FieldError{Field: "steward_email", Message: "required"})
	case !validEmail(email):
		errs = append(errs, domain.FieldError{Field: "steward_email", Message: "invalid email"})
	}

	var name *string
	if i.StewardName != nil {
		n := strings.TrimSpace(*i.StewardName)
		if utf8.RuneCountInString(n) > MaxNameLength {
			errs = append(errs, domain.FieldError{Field: "steward_name", Message: "max 200 characters"})
		}
		if n != "" {
			name = &n
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	i.StewardEmail = email
	i.StewardName = name
	return nil
}

// validEmail accepts a bare address, no display name.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// normalizeNote trims the note and turns blank into nil.
func normalizeNote(note *string) (*string, error) {
	if note == nil {
		return nil, nil
	}
	n := strings.TrimSpace(*note)
	if n == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(n) > MaxNoteLength {
		return nil, domain.NewValidationError("note", "max 500 characters")
	}
	return &n, nil
}

// BulkDeactivateInput is a request to deactivate many assignments.
type BulkDeactivateInput struct {
	IDs  []uuid.UUID
	Note *string
}

func (i BulkDeactivateInput) Validate() error {
	var errs []domain.FieldError

	if len(i.IDs) > MaxSelection {
		errs = append(errs, domain.FieldError{Field: "ids", Message: "max 500 items"})
	}
	for _, id := range i.IDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "ids", Message: "must not contain empty ids"})
			break
		}
	}
	if _, err := normalizeNote(i.Note); err != nil {
		errs = append(errs, domain.FieldError{Field: "note", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
