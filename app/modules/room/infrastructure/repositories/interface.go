package roomdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for room and membership persistence.
type Repository interface {
	CreateRoom(ctx context.Context, db bun.IDB, room *Room) error
	GetRoomByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Room, error)
	GetRoomByCode(ctx context.Context, db bun.IDB, code string) (*Room, error)
	// DeleteRoom removes the room; members and predictions cascade.
	DeleteRoom(ctx context.Context, db bun.IDB, id uuid.UUID) error
	// ListRoomsForUser returns every room the user has a non-rejected membership in.
	ListRoomsForUser(ctx context.Context, db bun.IDB, userID string) ([]Membership, error)

	CreateMember(ctx context.Context, db bun.IDB, member *Member) error
	GetMember(ctx context.Context, db bun.IDB, roomID, memberID uuid.UUID) (*Member, error)
	GetMemberByUser(ctx context.Context, db bun.IDB, roomID uuid.UUID, userID string) (*Member, error)
	// ListMembers returns the room's members with the given status, oldest first.
	ListMembers(ctx context.Context, db bun.IDB, roomID uuid.UUID, status string) ([]Member, error)
	UpdateMemberStatus(ctx context.Context, db bun.IDB, memberID uuid.UUID, status string) error
	UpdateMemberRole(ctx context.Context, db bun.IDB, memberID uuid.UUID, role string) error
	// DeleteMember removes the membership; the member's predictions cascade.
	DeleteMember(ctx context.Context, db bun.IDB, memberID uuid.UUID) error
}
