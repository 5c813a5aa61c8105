package standingsdomain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshedPayload is published on standings.refreshed.v1.{roomID} after a
// result changes a room's table.
type RefreshedPayload struct {
	RoomID      uuid.UUID `json:"roomId"`
	MatchID     uuid.UUID `json:"matchId"`
	Standings   []Row     `json:"standings"`
	RefreshedAt time.Time `json:"refreshedAt"`
}
