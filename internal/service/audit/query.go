package audit

import (
	"context"
	"fmt"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Query returns one page of entries and the total matching the filter.
func (s *Service) Query(ctx context.Context, f domain.AuditFilter) (*domain.AuditPage, error) {
	if _, err := requireModerator(ctx); err != nil {
		return nil, err
	}

	f, err := normalizeFilter(f, MaxQueryLimit)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Query(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("query audit: %w", err)
	}

	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count audit: %w", err)
	}

	return &domain.AuditPage{Entries: entries, Total: total}, nil
}
