package matchdomain

import "errors"

// Error values double as the API error codes.
var (
	ErrMatchNotFound           = errors.New("MATCH_NOT_FOUND")
	ErrInvalidStage            = errors.New("INVALID_STAGE")
	ErrInvalidHomeGoals        = errors.New("INVALID_HOME_GOALS")
	ErrInvalidAwayGoals        = errors.New("INVALID_AWAY_GOALS")
	ErrInvalidTeamName         = errors.New("INVALID_TEAM_NAME")
	ErrPenaltyMatchMustBeDraw  = errors.New("PENALTY_MATCH_MUST_BE_DRAW")
	ErrPenaltyWinnerRequired   = errors.New("PENALTY_WINNER_REQUIRED")
	ErrPenaltyWinnerNotInMatch = errors.New("PENALTY_WINNER_NOT_IN_MATCH")
	ErrPenaltiesInGroupStage   = errors.New("PENALTIES_NOT_ALLOWED_IN_GROUP_STAGE")
	ErrEmptyPatch              = errors.New("EMPTY_PATCH")
)

// IsValidationError reports whether err is a patch validation failure.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidStage, ErrInvalidHomeGoals, ErrInvalidAwayGoals, ErrInvalidTeamName,
		ErrPenaltyMatchMustBeDraw, ErrPenaltyWinnerRequired, ErrPenaltyWinnerNotInMatch,
		ErrPenaltiesInGroupStage, ErrEmptyPatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
