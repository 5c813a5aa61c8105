package roomdomain

import (
	"time"

	"github.com/google/uuid"
)

// GuestFallbackName is shown for members without a display name.
const GuestFallbackName = "Invitado"

// Role is a member's authority inside a room.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Rank orders roles; higher outranks lower.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	}
	return 0
}

// CanModerate reports whether the role may approve, reject and kick.
func (r Role) CanModerate() bool {
	return r == RoleOwner || r == RoleAdmin
}

// ParseAssignableRole accepts only the roles an owner can hand out.
func ParseAssignableRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleMember:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// MemberStatus is the membership lifecycle state.
type MemberStatus string

const (
	StatusPending  MemberStatus = "PENDING"
	StatusActive   MemberStatus = "ACTIVE"
	StatusRejected MemberStatus = "REJECTED"
)

// Member links a user to a room.
type Member struct {
	ID               uuid.UUID    `json:"id"`
	RoomID           uuid.UUID    `json:"roomId"`
	UserID           string       `json:"userId"`
	DisplayName      string       `json:"displayName"`
	Role             Role         `json:"role"`
	Status           MemberStatus `json:"status"`
	ContributionText string       `json:"contributionText"`
	JoinedAt         time.Time    `json:"joinedAt"`
}

// IsActive reports whether the member counts for standings and may predict.
func (m Member) IsActive() bool {
	return m.Status == StatusActive
}

// CheckModerate verifies actor may approve or reject pending members.
func CheckModerate(actor Member) error {
	if !actor.IsActive() || !actor.Role.CanModerate() {
		return ErrNoPermission
	}
	return nil
}

// CheckKick verifies actor may remove target. Nobody removes the owner and
// admins cannot remove each other.
func CheckKick(actor, target Member) error {
	if err := CheckModerate(actor); err != nil {
		return err
	}
	if target.Role == RoleOwner {
		return ErrCantKickOwner
	}
	if actor.Role == RoleAdmin && target.Role == RoleAdmin {
		return ErrAdminCantKickAdmin
	}
	return nil
}

// CheckChangeRole verifies actor may set target's role.
func CheckChangeRole(actor, target Member) error {
	if actor.Role != RoleOwner {
		return ErrNotOwner
	}
	if target.Role == RoleOwner {
		return ErrCantChangeOwner
	}
	if !target.IsActive() {
		return ErrCantChangePendingMember
	}
	return nil
}
