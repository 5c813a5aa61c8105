package roommigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating rooms and room_members tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS rooms (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					code VARCHAR(12) NOT NULL UNIQUE,
					name VARCHAR(40) NOT NULL,
					edit_policy VARCHAR(32) NOT NULL DEFAULT 'STRICT_PER_MATCH'
						CHECK (edit_policy IN ('STRICT_PER_MATCH','ALLOW_UNTIL_ROUND_CLOSE')),
					access_type VARCHAR(8) NOT NULL DEFAULT 'OPEN'
						CHECK (access_type IN ('OPEN','CLOSED')),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`); err != nil {
				return fmt.Errorf("failed to create rooms table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS room_members (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					room_id UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
					user_id VARCHAR(64) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					role VARCHAR(8) NOT NULL DEFAULT 'MEMBER' CHECK (role IN ('OWNER','ADMIN','MEMBER')),
					status VARCHAR(8) NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING','ACTIVE','REJECTED')),
					contribution_text VARCHAR(80) NOT NULL DEFAULT '',
					joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE (room_id, user_id)
				);
				CREATE INDEX IF NOT EXISTS idx_room_members_user_id ON room_members(user_id);
				CREATE INDEX IF NOT EXISTS idx_room_members_room_status ON room_members(room_id, status);
			`); err != nil {
				return fmt.Errorf("failed to create room_members table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping room_members and rooms tables...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS room_members CASCADE; DROP TABLE IF EXISTS rooms CASCADE;`); err != nil {
			return fmt.Errorf("failed to drop rooms tables: %w", err)
		}
		return nil
	})
}
