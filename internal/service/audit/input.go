package audit

import (
	"strings"
	"time"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

func validateEntry(e domain.AuditEntry) error {
	var errs []domain.FieldError

	if strings.TrimSpace(e.ActionType) == "" {
		errs = append(errs, domain.FieldError{Field: "action_type", Message: "required"})
	}
	if strings.TrimSpace(e.ActorEmail) == "" {
		errs = append(errs, domain.FieldError{Field: "actor_email", Message: "required"})
	}
	if !e.ScopeType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "scope_type", Message: "invalid value"})
	}
	if e.CreatedAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "created_at", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// normalizeFilter validates f and applies defaults. The limit is clamped to
// maxLimit rather than rejected.
func normalizeFilter(f domain.AuditFilter, maxLimit int) (domain.AuditFilter, error) {
	var errs []domain.FieldError

	f.ActionType = strings.TrimSpace(f.ActionType)
	if f.ActionType == "all" {
		f.ActionType = ""
	}
	f.ActorEmail = strings.ToLower(strings.TrimSpace(f.ActorEmail))
	f.Search = strings.TrimSpace(f.Search)

	if f.ScopeType != "" && !f.ScopeType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "scopeType", Message: "invalid value"})
	}

	if f.SortBy == "" {
		f.SortBy = domain.AuditSortCreatedAt
	} else if !f.SortBy.IsValid() {
		errs = append(errs, domain.FieldError{Field: "sortBy", Message: "must be one of created_at, action_type, actor_email, scope_type"})
	}

	if f.SortDir == "" {
		f.SortDir = domain.SortDesc
	} else if !f.SortDir.IsValid() {
		errs = append(errs, domain.FieldError{Field: "sortDir", Message: "must be asc or desc"})
	}

	if f.DateFrom != nil && f.DateTo != nil && dayOf(*f.DateFrom) > dayOf(*f.DateTo) {
		errs = append(errs, domain.FieldError{Field: "dateFrom", Message: "must not be after dateTo"})
	}

	if f.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if f.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return f, &domain.ValidationError{Errors: errs}
	}

	if f.Limit == 0 {
		f.Limit = DefaultQueryLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	return f, nil
}

// dayOf returns the UTC calendar day of t as yyyymmdd for ordering.
func dayOf(t time.Time) int {
	y, m, d := t.UTC().Date()
	return y*10000 + int(m)*100 + d
}
