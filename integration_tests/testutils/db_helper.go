//go:build integration

package testutils

import (
	"context"
	"database/sql"
	"fmt"

	competitionmigrations "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/repositories/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// OpenDB opens a bun connection to dsn.
func OpenDB(dsn string) *bun.DB {
	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(pgdb, pgdialect.New())
}

// RunMigrations applies the competition migrations and the River schema.
func RunMigrations(ctx context.Context, db *bun.DB, dsn string) error {
	migrator := migrate.NewMigrator(db, competitionmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run competition migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	riverMigrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := riverMigrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}

// TruncateSnapshots clears stored snapshots between tests.
func TruncateSnapshots(ctx context.Context, db bun.IDB) error {
	_, err := db.NewTruncateTable().Table("competition_snapshots").Exec(ctx)
	return err
}
