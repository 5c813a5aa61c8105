package standingsservice

import (
	"context"

	standingsdomain "github.com/Black-And-White-Club/prode/app/modules/standings/domain"
	"github.com/google/uuid"
)

// Service defines the contract for standings operations.
type Service interface {
	// ComputeStandings rebuilds the table of a room from scratch. A missing
	// room yields an empty table.
	ComputeStandings(ctx context.Context, roomID uuid.UUID) ([]standingsdomain.Row, error)
	// ViewStandings is ComputeStandings for an active member of the room.
	ViewStandings(ctx context.Context, roomID uuid.UUID, userID string) ([]standingsdomain.Row, error)
	// StandingsChart renders the table of a room as a PNG bar chart.
	StandingsChart(ctx context.Context, roomID uuid.UUID, userID string) ([]byte, error)
	// RefreshForMatch recomputes every room holding predictions on the match
	// and publishes each new table. It returns the number of rooms refreshed.
	RefreshForMatch(ctx context.Context, matchID uuid.UUID) (int, error)
}
