package competitionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating competition_snapshots table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS competition_snapshots (
					id UUID PRIMARY KEY,
					fetched_at TIMESTAMPTZ NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					participants JSONB NOT NULL DEFAULT '[]',
					blocks JSONB NOT NULL DEFAULT '[]',
					ascensions JSONB NOT NULL DEFAULT '[]',
					score_options JSONB NOT NULL DEFAULT '[]',
					participant_count INTEGER NOT NULL DEFAULT 0,
					block_count INTEGER NOT NULL DEFAULT 0,
					ascension_count INTEGER NOT NULL DEFAULT 0,
					issue_count INTEGER NOT NULL DEFAULT 0
				);
				CREATE INDEX IF NOT EXISTS idx_competition_snapshots_fetched_at
					ON competition_snapshots(fetched_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create competition_snapshots table: %w", err)
			}

			fmt.Println("competition_snapshots table created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping competition_snapshots table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS competition_snapshots;`); err != nil {
				return fmt.Errorf("failed to drop competition_snapshots table: %w", err)
			}
			return nil
		})
	})
}
