// Package content implements the profile content operations used by Safe
// Reset. Every method is scoped to a single profile and reports the number
// of rows it touched.
package content

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Repo provides profile content persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new content repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

const archiveArchiveItemsSQL = `
UPDATE archive_items SET status = 'archived'
WHERE profile_id = $1 AND status <> 'archived'`

const archiveCommendationsSQL = `
UPDATE reviewable_items SET status = 'archived'
WHERE profile_id = $1 AND kind = 'commendation' AND status <> 'archived'`

const enqueueStorageCleanupSQL = `
INSERT INTO storage_cleanup_queue (profile_id, reset_id, storage_path)
SELECT profile_id, $2, storage_path
FROM archive_items
WHERE profile_id = $1 AND coalesce(storage_path, '') <> ''`

const deleteArchiveItemsSQL = `DELETE FROM archive_items WHERE profile_id = $1`

const deleteCommendationsSQL = `DELETE FROM reviewable_items WHERE profile_id = $1 AND kind = 'commendation'`

const deleteMilestonesSQL = `DELETE FROM milestones WHERE profile_id = $1`

const resetProfileSQL = `
UPDATE reviewable_items
SET status = 'draft', content = '{}'::jsonb, steward_note = NULL, reject_reason = NULL,
    submitted_at = NULL, reviewed_at = NULL, reviewed_by = NULL
WHERE id = $1 AND kind = 'profile'`

// ---------------------------------------------------------------------------
// Soft reset
// ---------------------------------------------------------------------------

// ArchiveArchiveItems hides every visible archive item of the profile.
func (r *Repo) ArchiveArchiveItems(ctx context.Context, profileID uuid.UUID) (int, error) {
	return r.exec(ctx, "archive archive items", archiveArchiveItemsSQL, profileID)
}

// ArchiveCommendations moves every commendation of the profile to archived.
func (r *Repo) ArchiveCommendations(ctx context.Context, profileID uuid.UUID) (int, error) {
	return r.exec(ctx, "archive commendations", archiveCommendationsSQL, profileID)
}

// ---------------------------------------------------------------------------
// Hard reset
// ---------------------------------------------------------------------------

// EnqueueStorageCleanup queues the storage path of every archive item of the
// profile for out-of-band deletion.
func (r *Repo) EnqueueStorageCleanup(ctx context.Context, profileID, resetID uuid.UUID) (int, error) {
	return r.exec(ctx, "enqueue storage cleanup", enqueueStorageCleanupSQL, profileID, resetID)
}

// DeleteArchiveItems removes every archive item of the profile.
func (r *Repo) DeleteArchiveItems(ctx context.Context, profileID uuid.UUID) (int, error) {
	return r.exec(ctx, "delete archive items", deleteArchiveItemsSQL, profileID)
}

// DeleteCommendations removes every commendation of the profile.
func (r *Repo) DeleteCommendations(ctx context.Context, profileID uuid.UUID) (int, error) {
	return r.exec(ctx, "delete commendations", deleteCommendationsSQL, profileID)
}

// DeleteMilestones removes every milestone of the profile.
func (r *Repo) DeleteMilestones(ctx context.Context, profileID uuid.UUID) (int, error) {
	return r.exec(ctx, "delete milestones", deleteMilestonesSQL, profileID)
}

// ---------------------------------------------------------------------------
// Both modes
// ---------------------------------------------------------------------------

// ResetProfile returns the profile to an empty draft.
func (r *Repo) ResetProfile(ctx context.Context, profileID uuid.UUID) error {
	n, err := r.exec(ctx, "reset profile", resetProfileSQL, profileID)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("profile %s: %w", profileID, domain.ErrNotFound)
	}
	return nil
}

func (r *Repo) exec(ctx context.Context, op, sql string, args ...any) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(tag.RowsAffected()), nil
}
