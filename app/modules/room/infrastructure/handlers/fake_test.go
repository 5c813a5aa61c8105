package roomhandlers

import (
	"context"

	roomservice "github.com/Black-And-White-Club/prode/app/modules/room/application"
	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
	"github.com/google/uuid"
)

// FakeRoomService answers every call from its Func fields, or with zero values.
type FakeRoomService struct {
	CreateRoomFunc          func(ctx context.Context, userID string, req roomservice.CreateRoomRequest) (*roomdomain.RoomMembership, error)
	JoinRoomFunc            func(ctx context.Context, userID, code, contributionText string) (*roomservice.JoinResult, error)
	GetRoomFunc             func(ctx context.Context, roomID uuid.UUID) (*roomdomain.Room, error)
	ListMyRoomsFunc         func(ctx context.Context, userID string) ([]roomdomain.RoomMembership, error)
	DeleteRoomFunc          func(ctx context.Context, actorID string, roomID uuid.UUID) error
	MyStatusFunc            func(ctx context.Context, userID string, roomID uuid.UUID) (*roomdomain.Member, error)
	RequireActiveMemberFunc func(ctx context.Context, userID string, roomID uuid.UUID) (*roomdomain.Member, error)
	ListActiveMembersFunc   func(ctx context.Context, roomID uuid.UUID) ([]roomdomain.Member, error)
	ListPendingFunc         func(ctx context.Context, actorID string, roomID uuid.UUID) ([]roomdomain.Member, error)
	ApproveMemberFunc       func(ctx context.Context, actorID string, roomID, memberID uuid.UUID) (*roomservice.ApproveResult, error)
	RejectMemberFunc        func(ctx context.Context, actorID string, roomID, memberID uuid.UUID) (*roomdomain.Member, error)
	KickMemberFunc          func(ctx context.Context, actorID string, roomID, memberID uuid.UUID) error
	ChangeRoleFunc          func(ctx context.Context, actorID string, roomID, memberID uuid.UUID, role string) (*roomdomain.Member, error)
}

var _ roomservice.Service = (*FakeRoomService)(nil)

func (f *FakeRoomService) CreateRoom(ctx context.Context, userID string, req roomservice.CreateRoomRequest) (*roomdomain.RoomMembership, error) {
	if f.CreateRoomFunc != nil {
		return f.CreateRoomFunc(ctx, userID, req)
	}
	return &roomdomain.RoomMembership{}, nil
}

func (f *FakeRoomService) JoinRoom(ctx context.Context, userID, code, contributionText string) (*roomservice.JoinResult, error) {
	if f.JoinRoomFunc != nil {
		return f.JoinRoomFunc(ctx, userID, code, contributionText)
	}
	return &roomservice.JoinResult{}, nil
}

func (f *FakeRoomService) GetRoom(ctx context.Context, roomID uuid.UUID) (*roomdomain.Room, error) {
	if f.GetRoomFunc != nil {
		return f.GetRoomFunc(ctx, roomID)
	}
	return &roomdomain.Room{ID: roomID}, nil
}

func (f *FakeRoomService) ListMyRooms(ctx context.Context, userID string) ([]roomdomain.RoomMembership, error) {
	if f.ListMyRoomsFunc != nil {
		return f.ListMyRoomsFunc(ctx, userID)
	}
	return nil, nil
}

func (f *FakeRoomService) DeleteRoom(ctx context.Context, actorID string, roomID uuid.UUID) error {
	if f.DeleteRoomFunc != nil {
		return f.DeleteRoomFunc(ctx, actorID, roomID)
	}
	return nil
}

func (f *FakeRoomService) MyStatus(ctx context.Context, userID string, roomID uuid.UUID) (*roomdomain.Member, error) {
	if f.MyStatusFunc != nil {
		return f.MyStatusFunc(ctx, userID, roomID)
	}
	return nil, roomdomain.ErrNotMember
}

func (f *FakeRoomService) RequireActiveMember(ctx context.Context, userID string, roomID uuid.UUID) (*roomdomain.Member, error) {
	if f.RequireActiveMemberFunc != nil {
		return f.RequireActiveMemberFunc(ctx, userID, roomID)
	}
	return nil, roomdomain.ErrNotMember
}

func (f *FakeRoomService) ListActiveMembers(ctx context.Context, roomID uuid.UUID) ([]roomdomain.Member, error) {
	if f.ListActiveMembersFunc != nil {
		return f.ListActiveMembersFunc(ctx, roomID)
	}
	return nil, nil
}

func (f *FakeRoomService) ListPending(ctx context.Context, actorID string, roomID uuid.UUID) ([]roomdomain.Member, error) {
	if f.ListPendingFunc != nil {
		return f.ListPendingFunc(ctx, actorID, roomID)
	}
	return nil, nil
}

func (f *FakeRoomService) ApproveMember(ctx context.Context, actorID string, roomID, memberID uuid.UUID) (*roomservice.ApproveResult, error) {
	if f.ApproveMemberFunc != nil {
		return f.ApproveMemberFunc(ctx, actorID, roomID, memberID)
	}
	return &roomservice.ApproveResult{}, nil
}

func (f *FakeRoomService) RejectMember(ctx context.Context, actorID string, roomID, memberID uuid.UUID) (*roomdomain.Member, error) {
	if f.RejectMemberFunc != nil {
		return f.RejectMemberFunc(ctx, actorID, roomID, memberID)
	}
	return &roomdomain.Member{}, nil
}

func (f *FakeRoomService) KickMember(ctx context.Context, actorID string, roomID, memberID uuid.UUID) error {
	if f.KickMemberFunc != nil {
		return f.KickMemberFunc(ctx, actorID, roomID, memberID)
	}
	return nil
}

func (f *FakeRoomService) ChangeRole(ctx context.Context, actorID string, roomID, memberID uuid.UUID, role string) (*roomdomain.Member, error) {
	if f.ChangeRoleFunc != nil {
		return f.ChangeRoleFunc(ctx, actorID, roomID, memberID, role)
	}
	return &roomdomain.Member{}, nil
}
