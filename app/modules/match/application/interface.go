package matchservice

import (
	"context"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/google/uuid"
)

// Service is the match schedule and result entry surface.
type Service interface {
	ListMatches(ctx context.Context) ([]matchdomain.Match, error)
	GetMatch(ctx context.Context, id uuid.UUID) (*matchdomain.Match, error)
	RecordResult(ctx context.Context, id uuid.UUID, patch matchdomain.ResultPatch) (*matchdomain.Match, error)
	ImportFixtures(ctx context.Context, fixtures []matchdomain.Match) (int, error)
}
