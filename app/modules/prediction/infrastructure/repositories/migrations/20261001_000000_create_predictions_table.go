package predictionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating predictions table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			// Removing a membership removes that member's predictions in the room.
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS predictions (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					room_id UUID NOT NULL,
					user_id VARCHAR(64) NOT NULL,
					match_id UUID NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
					pred_home_goals SMALLINT NOT NULL CHECK (pred_home_goals >= 0),
					pred_away_goals SMALLINT NOT NULL CHECK (pred_away_goals >= 0),
					pred_pen_winner VARCHAR(100),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE (room_id, user_id, match_id),
					FOREIGN KEY (room_id, user_id) REFERENCES room_members(room_id, user_id) ON DELETE CASCADE
				);
				CREATE INDEX IF NOT EXISTS idx_predictions_match_id ON predictions(match_id);
			`); err != nil {
				return fmt.Errorf("failed to create predictions table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping predictions table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS predictions CASCADE;`); err != nil {
			return fmt.Errorf("failed to drop predictions table: %w", err)
		}
		return nil
	})
}
