package matchdb

import (
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Match is the persisted fixture.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID                 uuid.UUID `bun:"id,pk,type:uuid"`
	FifaID             *string   `bun:"fifa_id,unique"`
	Stage              string    `bun:"stage,notnull"`
	GroupLetter        *string   `bun:"group_letter"`
	Matchday           *int      `bun:"matchday"`
	KickoffAt          time.Time `bun:"kickoff_at,notnull"`
	HomeTeam           string    `bun:"home_team,notnull"`
	AwayTeam           string    `bun:"away_team,notnull"`
	HomeGoals          *int      `bun:"home_goals"`
	AwayGoals          *int      `bun:"away_goals"`
	DecidedByPenalties bool      `bun:"decided_by_penalties,notnull,default:false"`
	PenWinner          *string   `bun:"pen_winner"`
	City               *string   `bun:"city"`
	CreatedAt          time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt          time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// ToDomain converts the row into the domain value.
func (m *Match) ToDomain() matchdomain.Match {
	return matchdomain.Match{
		ID:                 m.ID,
		FifaID:             m.FifaID,
		Stage:              matchdomain.Stage(m.Stage),
		Group:              m.GroupLetter,
		Matchday:           m.Matchday,
		KickoffAt:          m.KickoffAt,
		HomeTeam:           m.HomeTeam,
		AwayTeam:           m.AwayTeam,
		HomeGoals:          m.HomeGoals,
		AwayGoals:          m.AwayGoals,
		DecidedByPenalties: m.DecidedByPenalties,
		PenWinner:          m.PenWinner,
		City:               m.City,
	}
}

// FromDomain builds a row from the domain value.
func FromDomain(m matchdomain.Match) *Match {
	return &Match{
		ID:                 m.ID,
		FifaID:             m.FifaID,
		Stage:              string(m.Stage),
		GroupLetter:        m.Group,
		Matchday:           m.Matchday,
		KickoffAt:          m.KickoffAt,
		HomeTeam:           m.HomeTeam,
		AwayTeam:           m.AwayTeam,
		HomeGoals:          m.HomeGoals,
		AwayGoals:          m.AwayGoals,
		DecidedByPenalties: m.DecidedByPenalties,
		PenWinner:          m.PenWinner,
		City:               m.City,
	}
}

// ToDomainSlice converts rows preserving order.
func ToDomainSlice(rows []Match) []matchdomain.Match {
	out := make([]matchdomain.Match, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out
}
