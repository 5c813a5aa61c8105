package predictiondb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for prediction persistence.
type Repository interface {
	// Upsert writes every row, overwriting the existing prediction of the
	// same (room, user, match).
	Upsert(ctx context.Context, db bun.IDB, rows []*Prediction) (int, error)

	// ListByRoom returns every prediction of the room.
	ListByRoom(ctx context.Context, db bun.IDB, roomID uuid.UUID) ([]Prediction, error)

	// ListForStage returns the room's predictions for matches of stage.
	ListForStage(ctx context.Context, db bun.IDB, roomID uuid.UUID, stage string) ([]StageRow, error)

	// ListDetailed returns the room's predictions with author and fixture,
	// ordered by kickoff.
	ListDetailed(ctx context.Context, db bun.IDB, roomID uuid.UUID) ([]DetailedRow, error)

	// ListRoomIDsForMatch returns the rooms holding at least one prediction
	// for the match.
	ListRoomIDsForMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) ([]uuid.UUID, error)
}
