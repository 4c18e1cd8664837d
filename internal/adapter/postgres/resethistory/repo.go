// Package resethistory implements the append-only reset history repository.
package resethistory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Repo provides reset history persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new reset history repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const appendSQL = `
INSERT INTO reset_history (id, profile_id, mode, requested_by_id, requested_by_email,
    reason_code, reason_note, counts, outcome, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const listByProfileSQL = `
SELECT id, profile_id, mode, requested_by_id, requested_by_email, reason_code, reason_note,
    counts, outcome, created_at
FROM reset_history
WHERE profile_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

// Append records one reset.
func (r *Repo) Append(ctx context.Context, e domain.ResetHistoryEntry) error {
	counts, err := json.Marshal(e.Counts)
	if err != nil {
		return fmt.Errorf("reset_history marshal counts: %w", err)
	}

	_, err = postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, appendSQL,
		e.ID, e.ProfileID, string(e.Mode), e.RequestedByID, e.RequestedByEmail,
		string(e.ReasonCode), e.ReasonNote, counts, string(e.Outcome), e.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "reset_history", e.ID)
	}
	return nil
}

// ListByProfile returns the most recent resets of a profile, newest first.
func (r *Repo) ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ResetHistoryEntry, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listByProfileSQL, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reset history: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ResetHistoryEntry, 0)
	for rows.Next() {
		var (
			e                     domain.ResetHistoryEntry
			mode, reason, outcome string
			counts                []byte
		)
		err := rows.Scan(&e.ID, &e.ProfileID, &mode, &e.RequestedByID, &e.RequestedByEmail,
			&reason, &e.ReasonNote, &counts, &outcome, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list reset history scan: %w", err)
		}
		e.Mode = domain.ResetMode(mode)
		e.ReasonCode = domain.ResetReason(reason)
		e.Outcome = domain.ResetOutcome(outcome)
		if len(counts) > 0 {
			if err := json.Unmarshal(counts, &e.Counts); err != nil {
				return nil, fmt.Errorf("reset_history %s unmarshal counts: %w", e.ID, err)
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reset history: %w", err)
	}
	return out, nil
}
