package standingsdomain

import (
	"sort"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Member is an active room member entering the table.
type Member struct {
	UserID           string
	DisplayName      string
	ContributionText string
}

// Row is one line of a room's standings table.
type Row struct {
	UserID           string `json:"userId"`
	DisplayName      string `json:"displayName"`
	ContributionText string `json:"contributionText"`
	Points           int    `json:"points"`
	ExactHits        int    `json:"exactHits"`
	OutcomeHits      int    `json:"outcomeHits"`
	PredictedCount   int    `json:"predictedCount"`
	ScoredCount      int    `json:"scoredCount"`
}

// ZeroRow is the row of a member without any scored prediction.
func ZeroRow(m Member) Row {
	return Row{
		UserID:           m.UserID,
		DisplayName:      m.DisplayName,
		ContributionText: m.ContributionText,
	}
}

type predictionKey struct {
	userID  string
	matchID uuid.UUID
}

// Compute folds every match and prediction into one row per member and sorts
// the table. Predictions of users outside members are ignored. OutcomeHits
// only counts outcome hits that were not also exact.
func Compute(members []Member, matches []matchdomain.Match, predictions []Prediction) []Row {
	byKey := make(map[predictionKey]*Prediction, len(predictions))
	for i := range predictions {
		p := &predictions[i]
		byKey[predictionKey{p.UserID, p.MatchID}] = p
	}

	rows := make([]Row, 0, len(members))
	for _, member := range members {
		row := ZeroRow(member)
		for _, m := range matches {
			p, ok := byKey[predictionKey{member.UserID, m.ID}]
			if !ok {
				continue
			}
			row.PredictedCount++
			if !m.IsResolved() {
				continue
			}
			row.ScoredCount++

			s := Score(m, p)
			row.Points += s.Points
			if s.ExactHit {
				row.ExactHits++
			} else if s.OutcomeHit {
				row.OutcomeHits++
			}
		}
		rows = append(rows, row)
	}

	SortRows(rows)
	return rows
}

// SortRows orders by points, exact hits and outcome hits descending, then by
// display name using Spanish collation.
func SortRows(rows []Row) {
	col := collate.New(language.Spanish)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.ExactHits != b.ExactHits {
			return a.ExactHits > b.ExactHits
		}
		if a.OutcomeHits != b.OutcomeHits {
			return a.OutcomeHits > b.OutcomeHits
		}
		return col.CompareString(a.DisplayName, b.DisplayName) < 0
	})
}
