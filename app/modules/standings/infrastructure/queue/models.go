package standingsqueue

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// QueueName is the dedicated River queue for standings jobs.
const QueueName = "standings"

// StandingsRefreshArgs asks for every room predicting the match to be
// recomputed and published.
type StandingsRefreshArgs struct {
	MatchID uuid.UUID `json:"match_id"`
}

// Kind returns the job type identifier for River
func (StandingsRefreshArgs) Kind() string { return "standings_refresh" }

// InsertOpts routes the job to the standings queue. Repeated results for the
// same match within a few seconds collapse into one job.
func (StandingsRefreshArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		Queue:       QueueName,
		MaxAttempts: 5,
		UniqueOpts: river.UniqueOpts{
			ByArgs:   true,
			ByPeriod: uniquePeriod,
		},
	}
}
