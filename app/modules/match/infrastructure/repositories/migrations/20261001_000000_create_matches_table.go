package matchmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating matches table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matches (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					fifa_id VARCHAR(32) UNIQUE,
					stage VARCHAR(8) NOT NULL CHECK (stage IN ('GROUP','R32','R16','QF','SF','TPP','FINAL')),
					group_letter VARCHAR(2),
					matchday SMALLINT,
					kickoff_at TIMESTAMPTZ NOT NULL,
					home_team VARCHAR(100) NOT NULL,
					away_team VARCHAR(100) NOT NULL,
					home_goals SMALLINT,
					away_goals SMALLINT,
					decided_by_penalties BOOLEAN NOT NULL DEFAULT FALSE,
					pen_winner VARCHAR(100),
					city VARCHAR(100),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_matches_kickoff_at ON matches(kickoff_at);
				CREATE INDEX IF NOT EXISTS idx_matches_stage_kickoff ON matches(stage, kickoff_at);
			`); err != nil {
				return fmt.Errorf("failed to create matches table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping matches table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS matches CASCADE;`); err != nil {
			return fmt.Errorf("failed to drop matches table: %w", err)
		}
		return nil
	})
}
