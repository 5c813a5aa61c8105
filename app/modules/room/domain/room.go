package roomdomain

import (
	"time"

	"github.com/google/uuid"
)

// EditPolicy decides when predictions lock.
type EditPolicy string

const (
	// EditPolicyStrictPerMatch locks each match at its own kickoff.
	EditPolicyStrictPerMatch EditPolicy = "STRICT_PER_MATCH"
	// EditPolicyAllowUntilRoundClose locks every match of a stage at the
	// stage's first kickoff.
	EditPolicyAllowUntilRoundClose EditPolicy = "ALLOW_UNTIL_ROUND_CLOSE"
)

// ParseEditPolicy defaults an empty value to STRICT_PER_MATCH.
func ParseEditPolicy(s string) (EditPolicy, error) {
	switch EditPolicy(s) {
	case "":
		return EditPolicyStrictPerMatch, nil
	case EditPolicyStrictPerMatch, EditPolicyAllowUntilRoundClose:
		return EditPolicy(s), nil
	}
	return "", ErrInvalidEditPolicy
}

// AccessType decides whether joining needs approval.
type AccessType string

const (
	AccessOpen   AccessType = "OPEN"
	AccessClosed AccessType = "CLOSED"
)

// ParseAccessType defaults an empty value to OPEN.
func ParseAccessType(s string) (AccessType, error) {
	switch AccessType(s) {
	case "":
		return AccessOpen, nil
	case AccessOpen, AccessClosed:
		return AccessType(s), nil
	}
	return "", ErrInvalidAccessType
}

// Room is a prediction pool.
type Room struct {
	ID         uuid.UUID  `json:"id"`
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	EditPolicy EditPolicy `json:"editPolicy"`
	AccessType AccessType `json:"accessType"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// RoomMembership is a room seen from one of its members.
type RoomMembership struct {
	Room
	Role        Role         `json:"role"`
	Status      MemberStatus `json:"status"`
	MemberCount int          `json:"memberCount"`
}
