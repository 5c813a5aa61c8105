package predictiondomain

import (
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
)

// EarliestKickoffByStage returns the first kickoff of every stage present in
// matches.
func EarliestKickoffByStage(matches []matchdomain.Match) map[matchdomain.Stage]time.Time {
	out := make(map[matchdomain.Stage]time.Time)
	for _, m := range matches {
		if cur, ok := out[m.Stage]; !ok || m.KickoffAt.Before(cur) {
			out[m.Stage] = m.KickoffAt
		}
	}
	return out
}

// LockTime is the instant from which m no longer accepts predictions under
// policy. Under ALLOW_UNTIL_ROUND_CLOSE the whole stage locks at its first
// kickoff; a stage missing from earliest falls back to m's own kickoff.
func LockTime(policy roomdomain.EditPolicy, m matchdomain.Match, earliest map[matchdomain.Stage]time.Time) time.Time {
	if policy == roomdomain.EditPolicyAllowUntilRoundClose {
		if first, ok := earliest[m.Stage]; ok && first.Before(m.KickoffAt) {
			return first
		}
	}
	return m.KickoffAt
}

// IsSubmissionAccepted reports whether a submission at now is still in time.
// Kickoff itself is already locked.
func IsSubmissionAccepted(policy roomdomain.EditPolicy, m matchdomain.Match, earliest map[matchdomain.Stage]time.Time, now time.Time) bool {
	return now.Before(LockTime(policy, m, earliest))
}
