// Package notifylog stores diagnostic records of failed notification sends.
package notifylog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Repo provides notification failure persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new notification failure repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const recordSQL = `
INSERT INTO notification_failures (id, kind, recipient_id, recipient, payload, error, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listRecentSQL = `
SELECT id, kind, recipient_id, recipient, payload, error, created_at
FROM notification_failures
ORDER BY created_at DESC
LIMIT $1`

// Record stores one failure.
func (r *Repo) Record(ctx context.Context, f domain.NotificationFailure) error {
	payload, err := json.Marshal(f.Notification.Variables)
	if err != nil {
		return fmt.Errorf("notification_failure marshal payload: %w", err)
	}

	var recipientID *uuid.UUID
	if f.Notification.RecipientID != uuid.Nil {
		recipientID = &f.Notification.RecipientID
	}

	_, err = postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, recordSQL,
		f.ID, f.Notification.Kind, recipientID, f.Notification.Recipient, payload, f.Error, f.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "notification_failure", f.ID)
	}
	return nil
}

// ListRecent returns the newest failures first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.NotificationFailure, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listRecentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list notification failures: %w", err)
	}
	defer rows.Close()

	out := make([]domain.NotificationFailure, 0)
	for rows.Next() {
		var (
			f           domain.NotificationFailure
			recipientID *uuid.UUID
			payload     []byte
		)
		err := rows.Scan(&f.ID, &f.Notification.Kind, &recipientID, &f.Notification.Recipient,
			&payload, &f.Error, &f.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list notification failures scan: %w", err)
		}
		if recipientID != nil {
			f.Notification.RecipientID = *recipientID
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &f.Notification.Variables); err != nil {
				return nil, fmt.Errorf("notification_failure %s unmarshal payload: %w", f.ID, err)
			}
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notification failures: %w", err)
	}
	return out, nil
}
