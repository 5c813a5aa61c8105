package predictionhandlers

import (
	"context"
	"encoding/json"

	predictionservice "github.com/Black-And-White-Club/prode/app/modules/prediction/application"
	predictiondomain "github.com/Black-And-White-Club/prode/app/modules/prediction/domain"
	"github.com/google/uuid"
)

type FakePredictionService struct {
	SubmitBatchFunc  func(ctx context.Context, roomID uuid.UUID, userID string, entries []json.RawMessage) (*predictiondomain.BatchResult, error)
	ListForStageFunc func(ctx context.Context, roomID uuid.UUID, userID, stage string) ([]predictiondomain.StagePrediction, error)
	ListAllFunc      func(ctx context.Context, roomID uuid.UUID, userID string) ([]predictiondomain.DetailedPrediction, error)
}

func (f *FakePredictionService) SubmitBatch(ctx context.Context, roomID uuid.UUID, userID string, entries []json.RawMessage) (*predictiondomain.BatchResult, error) {
	if f.SubmitBatchFunc != nil {
		return f.SubmitBatchFunc(ctx, roomID, userID, entries)
	}
	return &predictiondomain.BatchResult{Rejected: map[predictiondomain.Outcome]int{}}, nil
}

func (f *FakePredictionService) ListForStage(ctx context.Context, roomID uuid.UUID, userID, stage string) ([]predictiondomain.StagePrediction, error) {
	if f.ListForStageFunc != nil {
		return f.ListForStageFunc(ctx, roomID, userID, stage)
	}
	return nil, nil
}

func (f *FakePredictionService) ListAll(ctx context.Context, roomID uuid.UUID, userID string) ([]predictiondomain.DetailedPrediction, error) {
	if f.ListAllFunc != nil {
		return f.ListAllFunc(ctx, roomID, userID)
	}
	return nil, nil
}

var _ predictionservice.Service = (*FakePredictionService)(nil)
