package standingsdomain

import (
	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/google/uuid"
)

const (
	PointsExact        = 3
	PointsOutcome      = 1
	PointsPenaltyBonus = 1
)

// Prediction is one member's scoreline guess for a match.
type Prediction struct {
	UserID    string
	MatchID   uuid.UUID
	HomeGoals int
	AwayGoals int
	PenWinner *string
}

// ScoreBreakdown is the result of scoring one prediction.
type ScoreBreakdown struct {
	Points       int  `json:"points"`
	ExactHit     bool `json:"exactHit"`
	OutcomeHit   bool `json:"outcomeHit"`
	PenaltyBonus bool `json:"penaltyBonus"`
}

type outcome int

const (
	outcomeDraw outcome = iota
	outcomeHome
	outcomeAway
)

func outcomeOf(home, away int) outcome {
	switch {
	case home > away:
		return outcomeHome
	case away > home:
		return outcomeAway
	}
	return outcomeDraw
}

// Score rates a prediction against a match. Unresolved matches and missing
// predictions score zero. The penalty bonus only depends on the predicted
// shoot-out winner, not on the scoreline.
func Score(m matchdomain.Match, p *Prediction) ScoreBreakdown {
	if !m.IsResolved() || p == nil {
		return ScoreBreakdown{}
	}

	home, away := *m.HomeGoals, *m.AwayGoals
	var b ScoreBreakdown
	b.ExactHit = p.HomeGoals == home && p.AwayGoals == away
	b.OutcomeHit = outcomeOf(p.HomeGoals, p.AwayGoals) == outcomeOf(home, away)

	switch {
	case b.ExactHit:
		b.Points = PointsExact
	case b.OutcomeHit:
		b.Points = PointsOutcome
	}

	if shootoutDecided(m, home, away) &&
		p.PenWinner != nil && *p.PenWinner == *m.PenWinner {
		b.PenaltyBonus = true
		b.Points += PointsPenaltyBonus
	}

	return b
}

// shootoutDecided reports whether m carries a consistent shoot-out result: a
// knockout draw whose recorded winner is one of the two teams. Anything else
// makes the bonus unattainable.
func shootoutDecided(m matchdomain.Match, home, away int) bool {
	if m.Stage == matchdomain.StageGroup || !m.DecidedByPenalties || home != away {
		return false
	}
	if m.PenWinner == nil || *m.PenWinner == "" {
		return false
	}
	return *m.PenWinner == m.HomeTeam || *m.PenWinner == m.AwayTeam
}
