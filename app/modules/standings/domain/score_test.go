package standingsdomain

import (
	"testing"
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func groupMatch(home, away *int) matchdomain.Match {
	return matchdomain.Match{
		ID:        uuid.New(),
		Stage:     matchdomain.StageGroup,
		KickoffAt: time.Date(2026, 6, 11, 19, 0, 0, 0, time.UTC),
		HomeTeam:  "Mexico",
		AwayTeam:  "South Africa",
		HomeGoals: home,
		AwayGoals: away,
	}
}

func shootout(stage matchdomain.Stage, goals int, winner string) matchdomain.Match {
	m := groupMatch(intPtr(goals), intPtr(goals))
	m.Stage = stage
	m.HomeTeam, m.AwayTeam = "Brazil", "Croatia"
	m.DecidedByPenalties = true
	m.PenWinner = strPtr(winner)
	return m
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		match matchdomain.Match
		pred  *Prediction
		want  ScoreBreakdown
	}{
		{
			name:  "unresolved match scores zero",
			match: groupMatch(nil, nil),
			pred:  &Prediction{HomeGoals: 2, AwayGoals: 1},
			want:  ScoreBreakdown{},
		},
		{
			name:  "half recorded result is unresolved",
			match: groupMatch(intPtr(2), nil),
			pred:  &Prediction{HomeGoals: 2, AwayGoals: 1},
			want:  ScoreBreakdown{},
		},
		{
			name:  "exact scoreline",
			match: groupMatch(intPtr(2), intPtr(1)),
			pred:  &Prediction{HomeGoals: 2, AwayGoals: 1},
			want:  ScoreBreakdown{Points: 3, ExactHit: true, OutcomeHit: true},
		},
		{
			name:  "outcome only",
			match: groupMatch(intPtr(2), intPtr(1)),
			pred:  &Prediction{HomeGoals: 3, AwayGoals: 0},
			want:  ScoreBreakdown{Points: 1, OutcomeHit: true},
		},
		{
			name:  "draw outcome",
			match: groupMatch(intPtr(0), intPtr(0)),
			pred:  &Prediction{HomeGoals: 2, AwayGoals: 2},
			want:  ScoreBreakdown{Points: 1, OutcomeHit: true},
		},
		{
			name:  "miss",
			match: groupMatch(intPtr(0), intPtr(1)),
			pred:  &Prediction{HomeGoals: 1, AwayGoals: 0},
			want:  ScoreBreakdown{},
		},
		{
			name:  "no prediction",
			match: groupMatch(intPtr(0), intPtr(1)),
			want:  ScoreBreakdown{},
		},
		{
			name:  "exact plus penalty bonus",
			match: shootout(matchdomain.StageQF, 1, "Brazil"),
			pred:  &Prediction{HomeGoals: 1, AwayGoals: 1, PenWinner: strPtr("Brazil")},
			want:  ScoreBreakdown{Points: 4, ExactHit: true, OutcomeHit: true, PenaltyBonus: true},
		},
		{
			name:  "penalty bonus is independent of the scoreline",
			match: shootout(matchdomain.StageFinal, 1, "Brazil"),
			pred:  &Prediction{HomeGoals: 2, AwayGoals: 0, PenWinner: strPtr("Brazil")},
			want:  ScoreBreakdown{Points: 1, PenaltyBonus: true},
		},
		{
			name:  "draw outcome plus penalty bonus",
			match: shootout(matchdomain.StageR16, 1, "Brazil"),
			pred:  &Prediction{HomeGoals: 0, AwayGoals: 0, PenWinner: strPtr("Brazil")},
			want:  ScoreBreakdown{Points: 2, OutcomeHit: true, PenaltyBonus: true},
		},
		{
			name:  "pen winner compared exactly",
			match: shootout(matchdomain.StageQF, 1, "Brazil"),
			pred:  &Prediction{HomeGoals: 1, AwayGoals: 1, PenWinner: strPtr("brazil")},
			want:  ScoreBreakdown{Points: 3, ExactHit: true, OutcomeHit: true},
		},
		{
			name: "no bonus in group stage",
			match: func() matchdomain.Match {
				m := shootout(matchdomain.StageQF, 1, "Brazil")
				m.Stage = matchdomain.StageGroup
				return m
			}(),
			pred: &Prediction{HomeGoals: 1, AwayGoals: 1, PenWinner: strPtr("Brazil")},
			want: ScoreBreakdown{Points: 3, ExactHit: true, OutcomeHit: true},
		},
		{
			name: "no bonus without recorded winner",
			match: func() matchdomain.Match {
				m := shootout(matchdomain.StageQF, 1, "")
				m.PenWinner = nil
				return m
			}(),
			pred: &Prediction{HomeGoals: 1, AwayGoals: 1, PenWinner: strPtr("Brazil")},
			want: ScoreBreakdown{Points: 3, ExactHit: true, OutcomeHit: true},
		},
		{
			name: "no bonus when a shoot-out result is not a draw",
			match: func() matchdomain.Match {
				m := shootout(matchdomain.StageQF, 1, "Brazil")
				m.HomeGoals = intPtr(2)
				return m
			}(),
			pred: &Prediction{HomeGoals: 2, AwayGoals: 1, PenWinner: strPtr("Brazil")},
			want: ScoreBreakdown{Points: 3, ExactHit: true, OutcomeHit: true},
		},
		{
			name:  "no bonus when the recorded winner is not playing",
			match: shootout(matchdomain.StageSF, 1, "Argentina"),
			pred:  &Prediction{HomeGoals: 1, AwayGoals: 1, PenWinner: strPtr("Argentina")},
			want:  ScoreBreakdown{Points: 3, ExactHit: true, OutcomeHit: true},
		},
		{
			name: "inconsistent shoot-out row",
			match: func() matchdomain.Match {
				m := shootout(matchdomain.StageQF, 0, "Nope")
				m.HomeGoals, m.AwayGoals = intPtr(2), intPtr(1)
				return m
			}(),
			pred: &Prediction{HomeGoals: 2, AwayGoals: 1, PenWinner: strPtr("Nope")},
			want: ScoreBreakdown{Points: 3, ExactHit: true, OutcomeHit: true},
		},
		{
			name:  "empty pen winner never matches",
			match: shootout(matchdomain.StageQF, 1, ""),
			pred:  &Prediction{HomeGoals: 1, AwayGoals: 1, PenWinner: strPtr("")},
			want:  ScoreBreakdown{Points: 3, ExactHit: true, OutcomeHit: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.match, tt.pred))
		})
	}
}

// randomMatch builds an arbitrary match, including malformed penalty data.
func randomMatch(f *gofakeit.Faker) matchdomain.Match {
	stages := matchdomain.Stages()
	m := matchdomain.Match{
		ID:       uuid.New(),
		Stage:    stages[f.IntN(len(stages))],
		HomeTeam: f.Country(),
		AwayTeam: f.Country(),
	}
	if f.Bool() {
		m.HomeGoals = intPtr(f.IntN(6))
		m.AwayGoals = intPtr(f.IntN(6))
	}
	if f.Bool() {
		m.DecidedByPenalties = true
		switch f.IntN(3) {
		case 0:
			m.PenWinner = strPtr(m.HomeTeam)
		case 1:
			m.PenWinner = strPtr(f.Country())
		}
	}
	return m
}

func randomPrediction(f *gofakeit.Faker, m matchdomain.Match) *Prediction {
	if f.IntN(5) == 0 {
		return nil
	}
	p := &Prediction{MatchID: m.ID, HomeGoals: f.IntN(6), AwayGoals: f.IntN(6)}
	switch {
	case m.PenWinner != nil && f.Bool():
		p.PenWinner = strPtr(*m.PenWinner)
	case f.Bool():
		p.PenWinner = strPtr(m.HomeTeam)
	}
	return p
}

func TestScore_Properties(t *testing.T) {
	f := gofakeit.New(2026)

	for i := 0; i < 5000; i++ {
		m := randomMatch(f)
		p := randomPrediction(f, m)
		got := Score(m, p)

		base := got.Points
		if got.PenaltyBonus {
			base -= PointsPenaltyBonus
		}
		assert.Contains(t, []int{0, 1, 3}, base, "base points for %+v / %+v", m, p)

		if got.ExactHit {
			assert.True(t, got.OutcomeHit, "exact implies outcome")
			assert.Equal(t, PointsExact, base)
		}
		if !m.DecidedByPenalties {
			assert.NotEqual(t, 2, got.Points, "two points need a shoot-out bonus")
		}
		if got.PenaltyBonus {
			assert.Equal(t, *m.HomeGoals, *m.AwayGoals, "bonus needs a drawn result")
			assert.Contains(t, []string{m.HomeTeam, m.AwayTeam}, *m.PenWinner)
		}
		if !m.IsResolved() || p == nil {
			assert.Equal(t, ScoreBreakdown{}, got)
		}
	}
}
