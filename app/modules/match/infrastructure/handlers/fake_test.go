package matchhandlers

import (
	"context"

	matchservice "github.com/Black-And-White-Club/prode/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/google/uuid"
)

type FakeMatchService struct {
	ListMatchesFunc    func(ctx context.Context) ([]matchdomain.Match, error)
	GetMatchFunc       func(ctx context.Context, id uuid.UUID) (*matchdomain.Match, error)
	RecordResultFunc   func(ctx context.Context, id uuid.UUID, patch matchdomain.ResultPatch) (*matchdomain.Match, error)
	ImportFixturesFunc func(ctx context.Context, fixtures []matchdomain.Match) (int, error)
}

func (f *FakeMatchService) ListMatches(ctx context.Context) ([]matchdomain.Match, error) {
	if f.ListMatchesFunc != nil {
		return f.ListMatchesFunc(ctx)
	}
	return nil, nil
}

func (f *FakeMatchService) GetMatch(ctx context.Context, id uuid.UUID) (*matchdomain.Match, error) {
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, id)
	}
	return nil, matchdomain.ErrMatchNotFound
}

func (f *FakeMatchService) RecordResult(ctx context.Context, id uuid.UUID, patch matchdomain.ResultPatch) (*matchdomain.Match, error) {
	if f.RecordResultFunc != nil {
		return f.RecordResultFunc(ctx, id, patch)
	}
	return nil, matchdomain.ErrMatchNotFound
}

func (f *FakeMatchService) ImportFixtures(ctx context.Context, fixtures []matchdomain.Match) (int, error) {
	if f.ImportFixturesFunc != nil {
		return f.ImportFixturesFunc(ctx, fixtures)
	}
	return len(fixtures), nil
}

var _ matchservice.Service = (*FakeMatchService)(nil)
