package predictiondb

import (
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	predictiondomain "github.com/Black-And-White-Club/prode/app/modules/prediction/domain"
	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Prediction is the persisted prediction row.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:p"`

	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	RoomID        uuid.UUID `bun:"room_id,notnull,type:uuid"`
	UserID        string    `bun:"user_id,notnull"`
	MatchID       uuid.UUID `bun:"match_id,notnull,type:uuid"`
	PredHomeGoals int       `bun:"pred_home_goals,notnull"`
	PredAwayGoals int       `bun:"pred_away_goals,notnull"`
	PredPenWinner *string   `bun:"pred_pen_winner"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func (p *Prediction) ToDomain() predictiondomain.Prediction {
	return predictiondomain.Prediction{
		RoomID:    p.RoomID,
		UserID:    p.UserID,
		MatchID:   p.MatchID,
		HomeGoals: p.PredHomeGoals,
		AwayGoals: p.PredAwayGoals,
		PenWinner: p.PredPenWinner,
		UpdatedAt: p.UpdatedAt,
	}
}

// StageRow is a prediction joined with its author's display name.
type StageRow struct {
	Prediction  `bun:",extend"`
	DisplayName *string `bun:"display_name"`
}

func (r *StageRow) ToDomain() predictiondomain.StagePrediction {
	return predictiondomain.StagePrediction{
		MatchID:     r.MatchID,
		UserID:      r.UserID,
		DisplayName: displayName(r.DisplayName),
		HomeGoals:   r.PredHomeGoals,
		AwayGoals:   r.PredAwayGoals,
		PenWinner:   r.PredPenWinner,
		UpdatedAt:   r.UpdatedAt,
	}
}

// DetailedRow is a prediction joined with its author and fixture.
type DetailedRow struct {
	Prediction  `bun:",extend"`
	DisplayName *string   `bun:"display_name"`
	Stage       string    `bun:"stage"`
	GroupLetter *string   `bun:"group_letter"`
	Matchday    *int      `bun:"matchday"`
	HomeTeam    string    `bun:"home_team"`
	AwayTeam    string    `bun:"away_team"`
	KickoffAt   time.Time `bun:"kickoff_at"`
}

func (r *DetailedRow) ToDomain() predictiondomain.DetailedPrediction {
	return predictiondomain.DetailedPrediction{
		Prediction: r.Prediction.ToDomain(),
		User: predictiondomain.UserSummary{
			ID:          r.UserID,
			DisplayName: displayName(r.DisplayName),
		},
		Match: predictiondomain.MatchSummary{
			ID:        r.MatchID,
			Stage:     matchdomain.Stage(r.Stage),
			Group:     r.GroupLetter,
			Matchday:  r.Matchday,
			HomeTeam:  r.HomeTeam,
			AwayTeam:  r.AwayTeam,
			KickoffAt: r.KickoffAt,
		},
	}
}

func displayName(name *string) string {
	if name == nil || *name == "" {
		return roomdomain.GuestFallbackName
	}
	return *name
}
