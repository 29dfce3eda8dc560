// Package migrator applies the goose SQL migrations for a service schema.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/ghuser/vetclinic/pkg/logger"
)

// RunMigrations opens dbURL with the pgx driver and applies every pending
// migration in files.
func RunMigrations(ctx context.Context, dbURL string, files fs.FS, log logger.Logger) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	return Up(ctx, db, files, log)
}

// Up applies pending migrations over an open connection and logs each one.
func Up(ctx context.Context, db *sql.DB, files fs.FS, log logger.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, files)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	for _, res := range results {
		log.InfoContext(ctx, "migration applied",
			"version", res.Source.Version,
			"file", res.Source.Path,
			"duration_ms", res.Duration.Milliseconds(),
		)
	}
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	log.InfoContext(ctx, "schema up to date", "version", version, "applied", len(results))
	return nil
}
