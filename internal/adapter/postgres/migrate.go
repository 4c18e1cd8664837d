package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/journeys-backend/migrations"
)

// OpenMigrator opens a goose provider over the embedded migrations. The
// returned close func releases the underlying *sql.DB.
func OpenMigrator(dsn string) (*goose.Provider, func() error, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}

	// goose.NewProvider handles $$-delimited PL/pgSQL bodies, which the
	// append-only triggers rely on.
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("goose new provider: %w", err)
	}

	return provider, db.Close, nil
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, dsn string) ([]*goose.MigrationResult, error) {
	provider, closeDB, err := OpenMigrator(dsn)
	if err != nil {
		return nil, err
	}
	defer closeDB() //nolint:errcheck

	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("goose up: %w", err)
	}
	return results, nil
}
