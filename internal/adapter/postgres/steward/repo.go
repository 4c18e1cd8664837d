// Package steward implements the steward assignment repository using PostgreSQL.
package steward

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// ActiveUniqueConstraint is the partial unique index guarding one active
// assignment per (profile, steward email).
const ActiveUniqueConstraint = "steward_assignments_active_uniq"

// Repo provides steward assignment persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new steward repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const assignmentColumns = `sa.id, sa.profile_id, coalesce(ri.label, ''), sa.steward_email, sa.steward_user_id,
    sa.steward_name, sa.status, sa.assigned_at, sa.assigned_by, sa.deactivated_at,
    sa.deactivation_note, sa.invite_email_pending`

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const insertSQL = `
WITH sa AS (
    INSERT INTO steward_assignments (id, profile_id, steward_email, steward_user_id, steward_name,
        status, assigned_at, assigned_by, invite_email_pending)
    VALUES ($1, $2, $3, $4, $5, 'active', $6, $7, $8)
    RETURNING *
)
SELECT ` + assignmentColumns + `
FROM sa LEFT JOIN reviewable_items ri ON ri.id = sa.profile_id`

const deactivateSQL = `
WITH sa AS (
    UPDATE steward_assignments
    SET status = 'inactive', deactivated_at = $2, deactivation_note = $3
    WHERE id = $1 AND status = 'active'
    RETURNING *
)
SELECT ` + assignmentColumns + `
FROM sa LEFT JOIN reviewable_items ri ON ri.id = sa.profile_id`

const hasActiveSQL = `
SELECT EXISTS (
    SELECT 1 FROM steward_assignments
    WHERE profile_id = $1 AND lower(steward_email) = lower($2) AND status = 'active'
)`

const getByIDSQL = `
SELECT ` + assignmentColumns + `
FROM steward_assignments sa LEFT JOIN reviewable_items ri ON ri.id = sa.profile_id
WHERE sa.id = $1`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts an active assignment. A second active row for the same
// (profile, email) fails with domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, a domain.StewardAssignment) (*domain.StewardAssignment, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, insertSQL,
		a.ID, a.ProfileID, strings.ToLower(a.StewardEmail), a.StewardUserID, a.StewardName,
		a.AssignedAt, a.AssignedBy, a.InviteEmailPending,
	)

	created, err := scanAssignment(row)
	if err != nil {
		return nil, postgres.MapError(err, "steward_assignment", a.ID)
	}
	return created, nil
}

// Deactivate flips an active assignment to inactive. Missing or already
// inactive assignments return domain.ErrNotFound.
func (r *Repo) Deactivate(ctx context.Context, id uuid.UUID, at time.Time, note *string) (*domain.StewardAssignment, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, deactivateSQL, id, at, note)

	a, err := scanAssignment(row)
	if err != nil {
		return nil, postgres.MapError(err, "steward_assignment", id)
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an assignment by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.StewardAssignment, error) {
	a, err := scanAssignment(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "steward_assignment", id)
	}
	return a, nil
}

// HasActive reports whether email already actively stewards profileID.
func (r *Repo) HasActive(ctx context.Context, profileID uuid.UUID, email string) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, hasActiveSQL, profileID, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has active steward: %w", err)
	}
	return exists, nil
}

// ListByProfile returns the assignments of a profile, newest first.
func (r *Repo) ListByProfile(ctx context.Context, profileID uuid.UUID, includeInactive bool) ([]domain.StewardAssignment, error) {
	b := postgres.Builder().
		Select(assignmentColumns).
		From("steward_assignments sa").
		LeftJoin("reviewable_items ri ON ri.id = sa.profile_id").
		Where(sq.Eq{"sa.profile_id": profileID}).
		OrderBy("sa.assigned_at DESC", "sa.id")
	if !includeInactive {
		b = b.Where(sq.Eq{"sa.status": string(domain.AssignmentActive)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list assignments: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StewardAssignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("list assignments scan: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return out, nil
}

// ActiveCounts returns the number of active assignments per steward email,
// largest first. RecentReviews is left zero for the caller to fill.
func (r *Repo) ActiveCounts(ctx context.Context) ([]domain.StewardWorkload, error) {
	query, args, err := postgres.Builder().
		Select("lower(steward_email) AS email", "max(steward_name)", "count(*) AS active").
		From("steward_assignments").
		Where(sq.Eq{"status": string(domain.AssignmentActive)}).
		GroupBy("lower(steward_email)").
		OrderBy("active DESC", "email").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active counts: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("active counts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.StewardWorkload, 0)
	for rows.Next() {
		var w domain.StewardWorkload
		if err := rows.Scan(&w.StewardEmail, &w.StewardName, &w.ActiveAssignments); err != nil {
			return nil, fmt.Errorf("active counts scan: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("active counts: %w", err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanAssignment(row pgx.Row) (*domain.StewardAssignment, error) {
	var (
		a      domain.StewardAssignment
		status string
	)
	err := row.Scan(&a.ID, &a.ProfileID, &a.ProfileLabel, &a.StewardEmail, &a.StewardUserID,
		&a.StewardName, &status, &a.AssignedAt, &a.AssignedBy, &a.DeactivatedAt,
		&a.DeactivationNote, &a.InviteEmailPending)
	if err != nil {
		return nil, err
	}
	a.Status = domain.AssignmentStatus(status)
	return &a, nil
}
