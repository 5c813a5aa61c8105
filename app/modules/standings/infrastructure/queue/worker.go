package standingsqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// Refresher recomputes and publishes the standings touched by a match.
type Refresher interface {
	RefreshForMatch(ctx context.Context, matchID uuid.UUID) (int, error)
}

// RefreshWorker runs StandingsRefreshArgs jobs.
type RefreshWorker struct {
	river.WorkerDefaults[StandingsRefreshArgs]
	refresher Refresher
	logger    *slog.Logger
}

func NewRefreshWorker(refresher Refresher, logger *slog.Logger) *RefreshWorker {
	return &RefreshWorker{refresher: refresher, logger: logger}
}

// Work returns the refresh error so that River retries the job.
func (w *RefreshWorker) Work(ctx context.Context, job *river.Job[StandingsRefreshArgs]) error {
	matchID := job.Args.MatchID
	rooms, err := w.refresher.RefreshForMatch(ctx, matchID)
	if err != nil {
		w.logger.ErrorContext(ctx, "Standings refresh failed", attr.MatchID(matchID), attr.Error(err))
		return fmt.Errorf("refresh standings for match %s: %w", matchID, err)
	}
	w.logger.InfoContext(ctx, "Standings refreshed", attr.MatchID(matchID), attr.Int("rooms", rooms))
	return nil
}
