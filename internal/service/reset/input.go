package reset

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Precondition names reported in ResetReadiness.Missing.
const (
	MissingProfile      = "profile"
	MissingMode         = "mode"
	MissingReason       = "reason"
	MissingConfirmation = "confirmation"
)

// Input is a reset request. Confirmation must equal
// domain.ResetConfirmationPhrase exactly.
type Input struct {
	ProfileID    uuid.UUID
	Mode         domain.ResetMode
	ReasonCode   domain.ResetReason
	ReasonNote   *string
	Confirmation string
}

// note returns the trimmed reason note, nil when blank.
func (i Input) note() *string {
	if i.ReasonNote == nil {
		return nil
	}
	n := strings.TrimSpace(*i.ReasonNote)
	if n == "" {
		return nil
	}
	return &n
}

// reasonError describes what is wrong with the reason, or "" when valid.
func (i Input) reasonError() string {
	if !i.ReasonCode.IsValid() {
		return "must be one of test_cleanup, re_onboarding, owner_request, content_policy, duplicate_profile, other"
	}
	note := i.note()
	if note != nil && utf8.RuneCountInString(*note) > domain.MaxResetReasonNote {
		return "note max 240 characters"
	}
	if i.ReasonCode == domain.ResetReasonOther && note == nil {
		return "note required when reason is other"
	}
	return ""
}

func (i Input) confirmed() bool {
	return i.Confirmation == domain.ResetConfirmationPhrase
}
