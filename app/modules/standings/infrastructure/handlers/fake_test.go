package standingshandlers

import (
	"context"

	standingsservice "github.com/Black-And-White-Club/prode/app/modules/standings/application"
	standingsdomain "github.com/Black-And-White-Club/prode/app/modules/standings/domain"
	"github.com/google/uuid"
)

type FakeStandingsService struct {
	ComputeStandingsFunc func(ctx context.Context, roomID uuid.UUID) ([]standingsdomain.Row, error)
	ViewStandingsFunc    func(ctx context.Context, roomID uuid.UUID, userID string) ([]standingsdomain.Row, error)
	StandingsChartFunc   func(ctx context.Context, roomID uuid.UUID, userID string) ([]byte, error)
	RefreshForMatchFunc  func(ctx context.Context, matchID uuid.UUID) (int, error)
}

func (f *FakeStandingsService) ComputeStandings(ctx context.Context, roomID uuid.UUID) ([]standingsdomain.Row, error) {
	if f.ComputeStandingsFunc != nil {
		return f.ComputeStandingsFunc(ctx, roomID)
	}
	return nil, nil
}

func (f *FakeStandingsService) ViewStandings(ctx context.Context, roomID uuid.UUID, userID string) ([]standingsdomain.Row, error) {
	if f.ViewStandingsFunc != nil {
		return f.ViewStandingsFunc(ctx, roomID, userID)
	}
	return nil, nil
}

func (f *FakeStandingsService) StandingsChart(ctx context.Context, roomID uuid.UUID, userID string) ([]byte, error) {
	if f.StandingsChartFunc != nil {
		return f.StandingsChartFunc(ctx, roomID, userID)
	}
	return nil, nil
}

func (f *FakeStandingsService) RefreshForMatch(ctx context.Context, matchID uuid.UUID) (int, error) {
	if f.RefreshForMatchFunc != nil {
		return f.RefreshForMatchFunc(ctx, matchID)
	}
	return 0, nil
}

var _ standingsservice.Service = (*FakeStandingsService)(nil)
