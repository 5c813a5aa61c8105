package predictionservice

import (
	"context"
	"encoding/json"

	predictiondomain "github.com/Black-And-White-Club/prode/app/modules/prediction/domain"
	"github.com/google/uuid"
)

// Service is the prediction submission and listing surface.
type Service interface {
	// SubmitBatch saves every entry that is valid and still open. Rejected
	// entries are counted, never fatal.
	SubmitBatch(ctx context.Context, roomID uuid.UUID, userID string, entries []json.RawMessage) (*predictiondomain.BatchResult, error)
	// ListForStage lists every member's predictions for one stage; an empty
	// stage means GROUP.
	ListForStage(ctx context.Context, roomID uuid.UUID, userID, stage string) ([]predictiondomain.StagePrediction, error)
	// ListAll lists every prediction in the room ordered by kickoff.
	ListAll(ctx context.Context, roomID uuid.UUID, userID string) ([]predictiondomain.DetailedPrediction, error)
}
