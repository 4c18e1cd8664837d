// Package user implements read access to the account directory owned by the
// surrounding application.
package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Repo provides account lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getByEmailSQL = `SELECT id, email, name FROM users WHERE lower(email) = lower($1)`

const getByIDSQL = `SELECT id, email, name FROM users WHERE id = $1`

// GetByEmail returns the account with the given email, compared
// case-insensitively. Returns domain.ErrNotFound when none exists.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	var u domain.UserAccount
	err := postgres.QuerierFromCtx(ctx, r.db).
		QueryRow(ctx, getByEmailSQL, strings.TrimSpace(email)).
		Scan(&u.ID, &u.Email, &u.Name)
	if err != nil {
		return nil, postgres.MapError(err, "user", email)
	}
	return &u, nil
}

// GetByID returns an account by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserAccount, error) {
	var u domain.UserAccount
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getByIDSQL, id).Scan(&u.ID, &u.Email, &u.Name)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return &u, nil
}
