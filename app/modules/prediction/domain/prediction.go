package predictiondomain

import (
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/google/uuid"
)

// Prediction is one user's guess for one match in one room.
type Prediction struct {
	RoomID    uuid.UUID `json:"roomId"`
	UserID    string    `json:"userId"`
	MatchID   uuid.UUID `json:"matchId"`
	HomeGoals int       `json:"predHomeGoals"`
	AwayGoals int       `json:"predAwayGoals"`
	PenWinner *string   `json:"predPenWinner"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StagePrediction is a room member's prediction as listed per stage.
type StagePrediction struct {
	MatchID     uuid.UUID `json:"matchId"`
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	HomeGoals   int       `json:"h"`
	AwayGoals   int       `json:"a"`
	PenWinner   *string   `json:"penWinner"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MatchSummary is the fixture part of a detailed prediction.
type MatchSummary struct {
	ID        uuid.UUID         `json:"id"`
	Stage     matchdomain.Stage `json:"stage"`
	Group     *string           `json:"group"`
	Matchday  *int              `json:"matchday"`
	HomeTeam  string            `json:"homeTeam"`
	AwayTeam  string            `json:"awayTeam"`
	KickoffAt time.Time         `json:"kickoffAt"`
}

// UserSummary is the author of a detailed prediction.
type UserSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// DetailedPrediction is a prediction with its author and fixture.
type DetailedPrediction struct {
	Prediction
	User  UserSummary  `json:"user"`
	Match MatchSummary `json:"match"`
}

// Outcome classifies each submitted entry.
type Outcome string

const (
	OutcomeAccepted     Outcome = "accepted"
	OutcomeInvalid      Outcome = "invalid"
	OutcomeLocked       Outcome = "locked"
	OutcomeUnknownMatch Outcome = "unknown_match"
	// OutcomeSuperseded marks a valid entry overwritten by a later entry for
	// the same match in the same batch.
	OutcomeSuperseded Outcome = "superseded"
)

// BatchResult reports how many entries of a submission were persisted.
// Submitted always equals Saved plus the sum of Rejected.
type BatchResult struct {
	Saved     int             `json:"saved"`
	Submitted int             `json:"submitted"`
	Rejected  map[Outcome]int `json:"rejected"`
	ServerNow time.Time       `json:"serverNow"`
}

// BatchSavedPayload is published on prediction.batch.saved.v1.
type BatchSavedPayload struct {
	RoomID    uuid.UUID   `json:"roomId"`
	UserID    string      `json:"userId"`
	MatchIDs  []uuid.UUID `json:"matchIds"`
	Saved     int         `json:"saved"`
	Submitted int         `json:"submitted"`
	SavedAt   time.Time   `json:"savedAt"`
}
