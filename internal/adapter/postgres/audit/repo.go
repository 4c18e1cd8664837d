// Package audit implements the audit log repository using PostgreSQL.
// The table is append-only; the only delete path is retention cleanup.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var entryColumns = []string{
	"id", "action_type", "actor_id", "actor_email", "scope_type",
	"target_id", "target_label", "details", "created_at",
}

// defaultLimit applies when the caller leaves Limit unset. Upper bounds are
// the service's concern since exports read more rows than a page.
const defaultLimit = 50

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const appendSQL = `
INSERT INTO audit_log (id, action_type, actor_id, actor_email, scope_type, target_id, target_label, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const deleteOlderThanSQL = `DELETE FROM audit_log WHERE created_at < $1`

const countAllSQL = `SELECT count(*) FROM audit_log`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append inserts one entry.
func (r *Repo) Append(ctx context.Context, e domain.AuditEntry) error {
	details, err := marshalDetails(e.Details)
	if err != nil {
		return err
	}

	_, err = postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, appendSQL,
		e.ID, e.ActionType, e.ActorID, e.ActorEmail, string(e.ScopeType),
		e.TargetID, e.TargetLabel, details, e.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "audit_entry", e.ID)
	}
	return nil
}

// DeleteOlderThan removes every entry created strictly before cutoff and
// returns how many were removed.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteOlderThanSQL, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete audit entries before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Query returns one page of entries matching f.
func (r *Repo) Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error) {
	query, args, err := selectEntries(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of entries matching f, ignoring paging and sort.
func (r *Repo) Count(ctx context.Context, f domain.AuditFilter) (int, error) {
	query, args, err := applyFilter(postgres.Builder().Select("count(*)").From("audit_log"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build audit count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count audit entries: %w", err)
	}
	return n, nil
}

// CountAll returns the size of the whole log.
func (r *Repo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, countAllSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count audit log: %w", err)
	}
	return n, nil
}

// ActivityByActor counts entries with one of actionTypes created at or after
// since, keyed by lower-cased actor email.
func (r *Repo) ActivityByActor(ctx context.Context, since time.Time, actionTypes []string) (domain.ActorActivity, error) {
	query, args, err := postgres.Builder().
		Select("lower(actor_email)", "count(*)").
		From("audit_log").
		Where(sq.GtOrEq{"created_at": since}).
		Where(sq.Eq{"action_type": actionTypes}).
		GroupBy("lower(actor_email)").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activity query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("activity by actor: %w", err)
	}
	defer rows.Close()

	activity := domain.ActorActivity{}
	for rows.Next() {
		var (
			email string
			n     int
		)
		if err := rows.Scan(&email, &n); err != nil {
			return nil, fmt.Errorf("activity by actor scan: %w", err)
		}
		activity[email] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity by actor: %w", err)
	}
	return activity, nil
}

// ---------------------------------------------------------------------------
// Query building
// ---------------------------------------------------------------------------

func selectEntries(f domain.AuditFilter) sq.SelectBuilder {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	dir := "DESC"
	if f.SortDir == domain.SortAsc {
		dir = "ASC"
	}

	b := applyFilter(postgres.Builder().Select(entryColumns...).From("audit_log"), f).
		OrderBy(sortColumn(f.SortBy)+" "+dir, "id "+dir).
		Limit(uint64(limit))
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	return b
}

func applyFilter(b sq.SelectBuilder, f domain.AuditFilter) sq.SelectBuilder {
	if f.ActionType != "" && f.ActionType != "all" {
		b = b.Where(sq.Eq{"action_type": f.ActionType})
	}
	if f.ScopeType != "" {
		b = b.Where(sq.Eq{"scope_type": string(f.ScopeType)})
	}
	if email := strings.TrimSpace(f.ActorEmail); email != "" {
		b = b.Where(sq.Expr("lower(actor_email) = ?", strings.ToLower(email)))
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		p := postgres.ContainsPattern(search)
		b = b.Where(sq.Or{
			sq.ILike{"actor_email": p},
			sq.ILike{"target_label": p},
		})
	}
	if f.DateFrom != nil {
		b = b.Where(sq.GtOrEq{"created_at": startOfDay(*f.DateFrom)})
	}
	if f.DateTo != nil {
		b = b.Where(sq.Lt{"created_at": startOfDay(*f.DateTo).AddDate(0, 0, 1)})
	}
	return b
}

func sortColumn(k domain.AuditSortKey) string {
	switch k {
	case domain.AuditSortActionType:
		return "action_type"
	case domain.AuditSortActorEmail:
		return "actor_email"
	case domain.AuditSortScopeType:
		return "scope_type"
	default:
		return "created_at"
	}
}

// startOfDay truncates t to midnight UTC of its calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (domain.AuditEntry, error) {
	var (
		e       domain.AuditEntry
		scope   string
		details []byte
	)

	err := row.Scan(&e.ID, &e.ActionType, &e.ActorID, &e.ActorEmail, &scope,
		&e.TargetID, &e.TargetLabel, &details, &e.CreatedAt)
	if err != nil {
		return domain.AuditEntry{}, fmt.Errorf("scan audit entry: %w", err)
	}

	e.ScopeType = domain.ScopeType(scope)
	e.Details = map[string]any{}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &e.Details); err != nil {
			return domain.AuditEntry{}, fmt.Errorf("audit_entry %s unmarshal details: %w", e.ID, err)
		}
	}
	return e, nil
}

func marshalDetails(details map[string]any) ([]byte, error) {
	if details == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("audit_entry marshal details: %w", err)
	}
	return b, nil
}
