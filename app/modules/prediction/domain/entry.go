package predictiondomain

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/google/uuid"
)

var (
	ErrMalformedEntry    = errors.New("MALFORMED_ENTRY")
	ErrInvalidGoals      = errors.New("INVALID_GOALS")
	ErrInvalidPenWinner  = errors.New("INVALID_PEN_WINNER")
	ErrPenWinnerInGroups = errors.New("PEN_WINNER_NOT_ALLOWED_IN_GROUP_STAGE")
)

// Limits caps submitted values.
type Limits struct {
	MaxGoals        int
	MaxPenWinnerLen int
}

// DefaultLimits matches the configured defaults.
var DefaultLimits = Limits{MaxGoals: 20, MaxPenWinnerLen: 80}

// Entry is one item of a batch submission.
type Entry struct {
	MatchID   uuid.UUID
	HomeGoals int
	AwayGoals int
	PenWinner *string
}

type rawEntry struct {
	MatchID       string   `json:"matchId"`
	PredHomeGoals *float64 `json:"predHomeGoals"`
	PredAwayGoals *float64 `json:"predAwayGoals"`
	PredPenWinner *string  `json:"predPenWinner"`
}

// ParseEntry decodes one submitted entry. Goals must be JSON integers; an
// empty or blank pen winner is treated as absent.
func ParseEntry(raw json.RawMessage) (Entry, error) {
	var r rawEntry
	if err := json.Unmarshal(raw, &r); err != nil {
		return Entry{}, ErrMalformedEntry
	}
	id, err := uuid.Parse(r.MatchID)
	if err != nil {
		return Entry{}, ErrMalformedEntry
	}
	home, ok := wholeNumber(r.PredHomeGoals)
	if !ok {
		return Entry{}, ErrInvalidGoals
	}
	away, ok := wholeNumber(r.PredAwayGoals)
	if !ok {
		return Entry{}, ErrInvalidGoals
	}

	e := Entry{MatchID: id, HomeGoals: home, AwayGoals: away}
	if r.PredPenWinner != nil {
		if w := strings.TrimSpace(*r.PredPenWinner); w != "" {
			e.PenWinner = &w
		}
	}
	return e, nil
}

func wholeNumber(v *float64) (int, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v != math.Trunc(*v) {
		return 0, false
	}
	if *v > math.MaxInt32 || *v < math.MinInt32 {
		return 0, false
	}
	return int(*v), true
}

// Validate checks the entry against the limits and the stage of its match.
func (e Entry) Validate(stage matchdomain.Stage, limits Limits) error {
	if e.HomeGoals < 0 || e.AwayGoals < 0 || e.HomeGoals > limits.MaxGoals || e.AwayGoals > limits.MaxGoals {
		return ErrInvalidGoals
	}
	if e.PenWinner == nil {
		return nil
	}
	if !stage.IsKnockout() {
		return ErrPenWinnerInGroups
	}
	if utf8.RuneCountInString(*e.PenWinner) > limits.MaxPenWinnerLen {
		return ErrInvalidPenWinner
	}
	return nil
}
