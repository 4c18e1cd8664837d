package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an account in the users directory.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.UserAccount {
	t.Helper()

	suffix := uniqueSuffix()
	name := "Test User " + suffix
	u := domain.UserAccount{
		ID:    uuid.New(),
		Email: "testuser-" + suffix + "@example.com",
		Name:  &name,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, name) VALUES ($1, $2, $3)`,
		u.ID, u.Email, u.Name,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return u
}

// SeedProfile creates a profile owned by a fresh account.
func SeedProfile(t *testing.T, pool *pgxpool.Pool, status domain.ReviewStatus) domain.ReviewableItem {
	t.Helper()

	owner := SeedUser(t, pool)
	id := uuid.New()
	return seedItem(t, pool, domain.ReviewableItem{
		ID:         id,
		Kind:       domain.ItemKindProfile,
		ProfileID:  id,
		OwnerID:    owner.ID,
		OwnerEmail: owner.Email,
		Label:      "Profile " + uniqueSuffix(),
		Status:     status,
		Content:    map[string]any{"bio": "Born in a small town."},
	})
}

// SeedChild creates a commendation or contribution attached to profile.
func SeedChild(t *testing.T, pool *pgxpool.Pool, profile domain.ReviewableItem, kind domain.ItemKind, status domain.ReviewStatus) domain.ReviewableItem {
	t.Helper()

	owner := SeedUser(t, pool)
	return seedItem(t, pool, domain.ReviewableItem{
		ID:         uuid.New(),
		Kind:       kind,
		ProfileID:  profile.ID,
		OwnerID:    owner.ID,
		OwnerEmail: owner.Email,
		Label:      string(kind) + " " + uniqueSuffix(),
		Status:     status,
		Content:    map[string]any{"text": "Great coach."},
	})
}

func seedItem(t *testing.T, pool *pgxpool.Pool, item domain.ReviewableItem) domain.ReviewableItem {
	t.Helper()

	content, err := json.Marshal(item.Content)
	if err != nil {
		t.Fatalf("testhelper: marshal content: %v", err)
	}
	item.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)

	_, err = pool.Exec(context.Background(),
		`INSERT INTO reviewable_items (id, kind, profile_id, owner_id, owner_email, label, status, content, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, string(item.Kind), item.ProfileID, item.OwnerID, item.OwnerEmail,
		item.Label, string(item.Status), content, item.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed %s: %v", item.Kind, err)
	}
	return item
}

// SeedArchiveItem adds an archive item to profileID. storagePath may be empty.
func SeedArchiveItem(t *testing.T, pool *pgxpool.Pool, profileID uuid.UUID, storagePath string) domain.ArchiveItem {
	t.Helper()

	a := domain.ArchiveItem{
		ID:        uuid.New(),
		ProfileID: profileID,
		Title:     "Scan " + uniqueSuffix(),
		Status:    domain.ArchiveVisible,
	}
	if storagePath != "" {
		a.StoragePath = &storagePath
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO archive_items (id, profile_id, title, storage_path, status) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.ProfileID, a.Title, a.StoragePath, string(a.Status),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedArchiveItem: %v", err)
	}
	return a
}

// SeedMilestone adds a milestone to profileID.
func SeedMilestone(t *testing.T, pool *pgxpool.Pool, profileID uuid.UUID) domain.Milestone {
	t.Helper()

	m := domain.Milestone{
		ID:         uuid.New(),
		ProfileID:  profileID,
		Title:      "First race " + uniqueSuffix(),
		OccurredOn: time.Date(1998, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO milestones (id, profile_id, title, occurred_on) VALUES ($1, $2, $3, $4)`,
		m.ID, m.ProfileID, m.Title, m.OccurredOn,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMilestone: %v", err)
	}
	return m
}

// SeedAuditEntry inserts an entry with an explicit created_at.
func SeedAuditEntry(t *testing.T, pool *pgxpool.Pool, actionType, actorEmail string, createdAt time.Time) domain.AuditEntry {
	t.Helper()

	label := "target " + uniqueSuffix()
	e := domain.AuditEntry{
		ID:          uuid.New(),
		ActionType:  actionType,
		ActorID:     uuid.New(),
		ActorEmail:  actorEmail,
		ScopeType:   domain.ScopeProfile,
		TargetLabel: &label,
		Details:     map[string]any{},
		CreatedAt:   createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO audit_log (id, action_type, actor_id, actor_email, scope_type, target_label, details, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, '{}'::jsonb, $7)`,
		e.ID, e.ActionType, e.ActorID, e.ActorEmail, string(e.ScopeType), e.TargetLabel, e.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAuditEntry: %v", err)
	}
	return e
}
