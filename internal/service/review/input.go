package review

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// MaxNoteLength bounds steward notes and reject reasons, in characters.
const MaxNoteLength = 2000

// validateNote trims a required steward note.
func validateNote(note string) (string, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return "", domain.NewValidationError("note", "required")
	}
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return "", domain.NewValidationError("note", "max 2000 characters")
	}
	return note, nil
}

// validateReason trims an optional reject reason. Blank becomes nil.
func validateReason(reason *string) (*string, error) {
	if reason == nil {
		return nil, nil
	}
	r := strings.TrimSpace(*reason)
	if r == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(r) > MaxNoteLength {
		return nil, domain.NewValidationError("reason", "max 2000 characters")
	}
	return &r, nil
}
