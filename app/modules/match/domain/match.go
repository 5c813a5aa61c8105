package matchdomain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stage is a tournament phase. The declaration order is the bracket order.
type Stage string

const (
	StageGroup Stage = "GROUP"
	StageR32   Stage = "R32"
	StageR16   Stage = "R16"
	StageQF    Stage = "QF"
	StageSF    Stage = "SF"
	StageTPP   Stage = "TPP"
	StageFinal Stage = "FINAL"
)

var stageOrder = []Stage{StageGroup, StageR32, StageR16, StageQF, StageSF, StageTPP, StageFinal}

// Stages returns every stage in bracket order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// ParseStage accepts a stage code in any case.
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, s)
	}
	return st, nil
}

func (s Stage) Valid() bool {
	return s.Order() >= 0
}

// Order is the position of the stage in the bracket, or -1 if unknown.
func (s Stage) Order() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// IsKnockout reports whether penalties can decide a match of this stage.
func (s Stage) IsKnockout() bool {
	return s.Valid() && s != StageGroup
}

func (s Stage) String() string { return string(s) }

// Match is a single fixture of the global schedule shared by all rooms.
type Match struct {
	ID                 uuid.UUID `json:"id"`
	FifaID             *string   `json:"fifaId"`
	Stage              Stage     `json:"stage"`
	Group              *string   `json:"group"`
	Matchday           *int      `json:"matchday"`
	KickoffAt          time.Time `json:"kickoffAt"`
	HomeTeam           string    `json:"homeTeam"`
	AwayTeam           string    `json:"awayTeam"`
	HomeGoals          *int      `json:"homeGoals"`
	AwayGoals          *int      `json:"awayGoals"`
	DecidedByPenalties bool      `json:"decidedByPenalties"`
	PenWinner          *string   `json:"penWinner"`
	City               *string   `json:"city"`
}

// IsResolved reports whether both goal fields are recorded.
func (m Match) IsResolved() bool {
	return m.HomeGoals != nil && m.AwayGoals != nil
}

// HasStarted reports whether now is at or after kickoff.
func (m Match) HasStarted(now time.Time) bool {
	return !now.Before(m.KickoffAt)
}
