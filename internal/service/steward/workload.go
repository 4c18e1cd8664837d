package steward

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// ListWorkload returns active assignment counts per steward, largest first,
// with the number of review actions each steward took within window. A
// window of zero uses DefaultWorkloadWindow. An unavailable activity source
// leaves RecentReviews at zero.
func (s *Service) ListWorkload(ctx context.Context, window time.Duration) ([]domain.StewardWorkload, error) {
	if _, err := requireModerator(ctx); err != nil {
		return nil, err
	}
	if window <= 0 {
		window = DefaultWorkloadWindow
	}

	rows, err := s.assignments.ActiveCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("active counts: %w", err)
	}

	activity, err := s.activity.ActivitySince(ctx, s.now().Add(-window))
	if err != nil {
		s.log.WarnContext(ctx, "workload activity unavailable",
			slog.String("error", err.Error()),
		)
		return rows, nil
	}

	for i := range rows {
		rows[i].RecentReviews = activity[strings.ToLower(rows[i].StewardEmail)]
	}
	return rows, nil
}
