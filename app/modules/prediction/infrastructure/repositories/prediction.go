package predictiondb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new prediction repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Upsert(ctx context.Context, db bun.IDB, rows []*Prediction) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	db = r.resolveDB(db)
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}

	res, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (room_id, user_id, match_id) DO UPDATE").
		Set("pred_home_goals = EXCLUDED.pred_home_goals").
		Set("pred_away_goals = EXCLUDED.pred_away_goals").
		Set("pred_pen_winner = EXCLUDED.pred_pen_winner").
		Set("updated_at = NOW()").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert predictions: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *Impl) ListByRoom(ctx context.Context, db bun.IDB, roomID uuid.UUID) ([]Prediction, error) {
	db = r.resolveDB(db)
	var rows []Prediction
	if err := db.NewSelect().Model(&rows).Where("p.room_id = ?", roomID).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list room predictions: %w", err)
	}
	return rows, nil
}

func (r *Impl) ListForStage(ctx context.Context, db bun.IDB, roomID uuid.UUID, stage string) ([]StageRow, error) {
	db = r.resolveDB(db)
	var rows []StageRow
	err := db.NewSelect().
		TableExpr("predictions AS p").
		ColumnExpr("p.*").
		ColumnExpr("u.display_name").
		Join("JOIN matches AS m ON m.id = p.match_id").
		Join("LEFT JOIN users AS u ON u.id = p.user_id").
		Where("p.room_id = ?", roomID).
		Where("m.stage = ?", stage).
		Order("m.kickoff_at ASC", "p.user_id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list stage predictions: %w", err)
	}
	return rows, nil
}

func (r *Impl) ListDetailed(ctx context.Context, db bun.IDB, roomID uuid.UUID) ([]DetailedRow, error) {
	db = r.resolveDB(db)
	var rows []DetailedRow
	err := db.NewSelect().
		TableExpr("predictions AS p").
		ColumnExpr("p.*").
		ColumnExpr("u.display_name").
		ColumnExpr("m.stage, m.group_letter, m.matchday, m.home_team, m.away_team, m.kickoff_at").
		Join("JOIN matches AS m ON m.id = p.match_id").
		Join("LEFT JOIN users AS u ON u.id = p.user_id").
		Where("p.room_id = ?", roomID).
		Order("m.kickoff_at ASC", "p.user_id ASC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list room predictions: %w", err)
	}
	return rows, nil
}

func (r *Impl) ListRoomIDsForMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) ([]uuid.UUID, error) {
	db = r.resolveDB(db)
	var ids []uuid.UUID
	err := db.NewSelect().
		TableExpr("predictions AS p").
		ColumnExpr("DISTINCT p.room_id").
		Where("p.match_id = ?", matchID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms for match: %w", err)
	}
	return ids, nil
}
