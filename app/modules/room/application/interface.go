package roomservice

import (
	"context"

	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
	standingsdomain "github.com/Black-And-White-Club/prode/app/modules/standings/domain"
	"github.com/google/uuid"
)

// CreateRoomRequest carries the raw user input for a new room.
type CreateRoomRequest struct {
	Name             string `json:"name"`
	EditPolicy       string `json:"editPolicy"`
	AccessType       string `json:"accessType"`
	ContributionText string `json:"contributionText"`
}

// JoinResult is the caller's membership after a join attempt.
type JoinResult struct {
	Room          roomdomain.Room   `json:"room"`
	Member        roomdomain.Member `json:"member"`
	AlreadyMember bool              `json:"alreadyMember"`
}

// ApproveResult carries the approved member and the row to append to the
// room's standings table.
type ApproveResult struct {
	Member   roomdomain.Member   `json:"member"`
	Standing standingsdomain.Row `json:"standing"`
}

// Service is the room and membership surface.
type Service interface {
	CreateRoom(ctx context.Context, userID string, req CreateRoomRequest) (*roomdomain.RoomMembership, error)
	JoinRoom(ctx context.Context, userID, code, contributionText string) (*JoinResult, error)
	GetRoom(ctx context.Context, roomID uuid.UUID) (*roomdomain.Room, error)
	ListMyRooms(ctx context.Context, userID string) ([]roomdomain.RoomMembership, error)
	DeleteRoom(ctx context.Context, actorID string, roomID uuid.UUID) error

	// MyStatus returns the caller's membership in any status.
	MyStatus(ctx context.Context, userID string, roomID uuid.UUID) (*roomdomain.Member, error)
	// RequireActiveMember fails with ErrNotMember or ErrNotActive unless the
	// user may read and predict in the room.
	RequireActiveMember(ctx context.Context, userID string, roomID uuid.UUID) (*roomdomain.Member, error)
	ListActiveMembers(ctx context.Context, roomID uuid.UUID) ([]roomdomain.Member, error)

	ListPending(ctx context.Context, actorID string, roomID uuid.UUID) ([]roomdomain.Member, error)
	ApproveMember(ctx context.Context, actorID string, roomID, memberID uuid.UUID) (*ApproveResult, error)
	RejectMember(ctx context.Context, actorID string, roomID, memberID uuid.UUID) (*roomdomain.Member, error)
	KickMember(ctx context.Context, actorID string, roomID, memberID uuid.UUID) error
	ChangeRole(ctx context.Context, actorID string, roomID, memberID uuid.UUID, role string) (*roomdomain.Member, error)
}
