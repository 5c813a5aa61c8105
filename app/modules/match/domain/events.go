package matchdomain

import (
	"time"

	"github.com/google/uuid"
)

// ResultRecordedPayload is published once a result entry leaves a match resolved.
type ResultRecordedPayload struct {
	MatchID            uuid.UUID `json:"match_id"`
	Stage              Stage     `json:"stage"`
	HomeTeam           string    `json:"home_team"`
	AwayTeam           string    `json:"away_team"`
	HomeGoals          int       `json:"home_goals"`
	AwayGoals          int       `json:"away_goals"`
	DecidedByPenalties bool      `json:"decided_by_penalties"`
	PenWinner          *string   `json:"pen_winner,omitempty"`
	RecordedAt         time.Time `json:"recorded_at"`
}
