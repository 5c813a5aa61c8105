package roomdomain

import (
	"time"

	"github.com/google/uuid"
)

// RoomCreatedPayload is published on room.created.v1.
type RoomCreatedPayload struct {
	RoomID     uuid.UUID  `json:"roomId"`
	Code       string     `json:"code"`
	Name       string     `json:"name"`
	OwnerID    string     `json:"ownerId"`
	EditPolicy EditPolicy `json:"editPolicy"`
	AccessType AccessType `json:"accessType"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// MemberApprovedPayload is published on room.member.approved.v1.{roomID}.
type MemberApprovedPayload struct {
	RoomID     uuid.UUID `json:"roomId"`
	MemberID   uuid.UUID `json:"memberId"`
	UserID     string    `json:"userId"`
	ApprovedBy string    `json:"approvedBy"`
	ApprovedAt time.Time `json:"approvedAt"`
}
