// Package review implements the reviewable item repository using PostgreSQL.
// Status writes are compare-and-set so concurrent reviewers cannot both apply.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Repo provides reviewable item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new review repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const itemColumns = `id, kind, profile_id, owner_id, owner_email, label, status, content,
    created_at, submitted_at, reviewed_at, reviewed_by, steward_note, reject_reason`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const getByIDSQL = `SELECT ` + itemColumns + ` FROM reviewable_items WHERE id = $1`

const getForUpdateSQL = getByIDSQL + ` FOR UPDATE`

const labelsByIDsSQL = `SELECT id, label FROM reviewable_items WHERE id = ANY($1::uuid[])`

const createSQL = `
INSERT INTO reviewable_items (id, kind, profile_id, owner_id, owner_email, label, status, content, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + itemColumns

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an item by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getByIDSQL, id)

	item, err := scanItem(row)
	if err != nil {
		return nil, postgres.MapError(err, "reviewable_item", id)
	}
	return item, nil
}

// GetForUpdate reads an item and locks its row until the surrounding
// transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getForUpdateSQL, id)

	item, err := scanItem(row)
	if err != nil {
		return nil, postgres.MapError(err, "reviewable_item", id)
	}
	return item, nil
}

// LabelsByIDs returns the labels of the given items keyed by id. Unknown ids
// are absent from the map.
func (r *Repo) LabelsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	labels := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return labels, nil
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, labelsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("labels by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    uuid.UUID
			label string
		)
		if err := rows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("labels by ids scan: %w", err)
		}
		labels[id] = label
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("labels by ids: %w", err)
	}
	return labels, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new item. Used by seeding and the surrounding app.
func (r *Repo) Create(ctx context.Context, item domain.ReviewableItem) (*domain.ReviewableItem, error) {
	content, err := marshalContent(item.Content)
	if err != nil {
		return nil, err
	}
	if item.ProfileID == uuid.Nil && item.Kind == domain.ItemKindProfile {
		item.ProfileID = item.ID
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, createSQL,
		item.ID, string(item.Kind), item.ProfileID, item.OwnerID, item.OwnerEmail,
		item.Label, string(item.Status), content, item.CreatedAt,
	)

	created, err := scanItem(row)
	if err != nil {
		return nil, postgres.MapError(err, "reviewable_item", item.ID)
	}
	return created, nil
}

// UpdateStatus applies change only while the stored status still equals
// change.From. A lost race returns domain.ErrNotFound.
func (r *Repo) UpdateStatus(ctx context.Context, change domain.StatusChange) (*domain.ReviewableItem, error) {
	b := postgres.Builder().
		Update("reviewable_items").
		Set("status", string(change.To)).
		Where(sq.Eq{"id": change.ID, "status": string(change.From)}).
		Suffix("RETURNING " + itemColumns)

	switch {
	case change.Submitted:
		b = b.Set("submitted_at", change.At)
	case change.To == domain.StatusDraft:
		b = b.Set("submitted_at", nil)
	}
	if change.ReviewedBy != nil {
		b = b.Set("reviewed_at", change.At).Set("reviewed_by", *change.ReviewedBy)
	}
	if change.StewardNote != nil {
		b = b.Set("steward_note", *change.StewardNote)
	}
	if change.RejectReason != nil {
		b = b.Set("reject_reason", *change.RejectReason)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update status: %w", err)
	}

	item, err := scanItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "reviewable_item", change.ID)
	}
	return item, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanItem(row pgx.Row) (*domain.ReviewableItem, error) {
	var (
		item    domain.ReviewableItem
		kind    string
		status  string
		content []byte
	)

	err := row.Scan(
		&item.ID, &kind, &item.ProfileID, &item.OwnerID, &item.OwnerEmail, &item.Label,
		&status, &content, &item.CreatedAt, &item.SubmittedAt, &item.ReviewedAt,
		&item.ReviewedBy, &item.StewardNote, &item.RejectReason,
	)
	if err != nil {
		return nil, err
	}

	item.Kind = domain.ItemKind(kind)
	item.Status = domain.ReviewStatus(status)
	item.Content = map[string]any{}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &item.Content); err != nil {
			return nil, fmt.Errorf("reviewable_item %s unmarshal content: %w", item.ID, err)
		}
	}
	return &item, nil
}

func marshalContent(content map[string]any) ([]byte, error) {
	if content == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}
	return b, nil
}
