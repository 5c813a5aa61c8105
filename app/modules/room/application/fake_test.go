package roomservice

import (
	"context"
	"sync"

	roomdb "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Room Repo
// ------------------------

type FakeRoomRepo struct {
	trace []string

	CreateRoomFunc         func(ctx context.Context, db bun.IDB, room *roomdb.Room) error
	GetRoomByIDFunc        func(ctx context.Context, db bun.IDB, id uuid.UUID) (*roomdb.Room, error)
	GetRoomByCodeFunc      func(ctx context.Context, db bun.IDB, code string) (*roomdb.Room, error)
	DeleteRoomFunc         func(ctx context.Context, db bun.IDB, id uuid.UUID) error
	ListRoomsForUserFunc   func(ctx context.Context, db bun.IDB, userID string) ([]roomdb.Membership, error)
	CreateMemberFunc       func(ctx context.Context, db bun.IDB, member *roomdb.Member) error
	GetMemberFunc          func(ctx context.Context, db bun.IDB, roomID, memberID uuid.UUID) (*roomdb.Member, error)
	GetMemberByUserFunc    func(ctx context.Context, db bun.IDB, roomID uuid.UUID, userID string) (*roomdb.Member, error)
	ListMembersFunc        func(ctx context.Context, db bun.IDB, roomID uuid.UUID, status string) ([]roomdb.Member, error)
	UpdateMemberStatusFunc func(ctx context.Context, db bun.IDB, memberID uuid.UUID, status string) error
	UpdateMemberRoleFunc   func(ctx context.Context, db bun.IDB, memberID uuid.UUID, role string) error
	DeleteMemberFunc       func(ctx context.Context, db bun.IDB, memberID uuid.UUID) error
}

func NewFakeRoomRepo() *FakeRoomRepo {
	return &FakeRoomRepo{trace: []string{}}
}

func (f *FakeRoomRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRoomRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRoomRepo) CreateRoom(ctx context.Context, db bun.IDB, room *roomdb.Room) error {
	f.record("CreateRoom")
	if f.CreateRoomFunc != nil {
		return f.CreateRoomFunc(ctx, db, room)
	}
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	return nil
}

func (f *FakeRoomRepo) GetRoomByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*roomdb.Room, error) {
	f.record("GetRoomByID")
	if f.GetRoomByIDFunc != nil {
		return f.GetRoomByIDFunc(ctx, db, id)
	}
	return nil, roomdb.ErrNotFound
}

func (f *FakeRoomRepo) GetRoomByCode(ctx context.Context, db bun.IDB, code string) (*roomdb.Room, error) {
	f.record("GetRoomByCode")
	if f.GetRoomByCodeFunc != nil {
		return f.GetRoomByCodeFunc(ctx, db, code)
	}
	return nil, roomdb.ErrNotFound
}

func (f *FakeRoomRepo) DeleteRoom(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("DeleteRoom")
	if f.DeleteRoomFunc != nil {
		return f.DeleteRoomFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeRoomRepo) ListRoomsForUser(ctx context.Context, db bun.IDB, userID string) ([]roomdb.Membership, error) {
	f.record("ListRoomsForUser")
	if f.ListRoomsForUserFunc != nil {
		return f.ListRoomsForUserFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeRoomRepo) CreateMember(ctx context.Context, db bun.IDB, member *roomdb.Member) error {
	f.record("CreateMember")
	if f.CreateMemberFunc != nil {
		return f.CreateMemberFunc(ctx, db, member)
	}
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	return nil
}

func (f *FakeRoomRepo) GetMember(ctx context.Context, db bun.IDB, roomID, memberID uuid.UUID) (*roomdb.Member, error) {
	f.record("GetMember")
	if f.GetMemberFunc != nil {
		return f.GetMemberFunc(ctx, db, roomID, memberID)
	}
	return nil, roomdb.ErrMemberNotFound
}

func (f *FakeRoomRepo) GetMemberByUser(ctx context.Context, db bun.IDB, roomID uuid.UUID, userID string) (*roomdb.Member, error) {
	f.record("GetMemberByUser")
	if f.GetMemberByUserFunc != nil {
		return f.GetMemberByUserFunc(ctx, db, roomID, userID)
	}
	return nil, roomdb.ErrMemberNotFound
}

func (f *FakeRoomRepo) ListMembers(ctx context.Context, db bun.IDB, roomID uuid.UUID, status string) ([]roomdb.Member, error) {
	f.record("ListMembers")
	if f.ListMembersFunc != nil {
		return f.ListMembersFunc(ctx, db, roomID, status)
	}
	return nil, nil
}

func (f *FakeRoomRepo) UpdateMemberStatus(ctx context.Context, db bun.IDB, memberID uuid.UUID, status string) error {
	f.record("UpdateMemberStatus")
	if f.UpdateMemberStatusFunc != nil {
		return f.UpdateMemberStatusFunc(ctx, db, memberID, status)
	}
	return nil
}

func (f *FakeRoomRepo) UpdateMemberRole(ctx context.Context, db bun.IDB, memberID uuid.UUID, role string) error {
	f.record("UpdateMemberRole")
	if f.UpdateMemberRoleFunc != nil {
		return f.UpdateMemberRoleFunc(ctx, db, memberID, role)
	}
	return nil
}

func (f *FakeRoomRepo) DeleteMember(ctx context.Context, db bun.IDB, memberID uuid.UUID) error {
	f.record("DeleteMember")
	if f.DeleteMemberFunc != nil {
		return f.DeleteMemberFunc(ctx, db, memberID)
	}
	return nil
}

var _ roomdb.Repository = (*FakeRoomRepo)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type published struct {
	Topic   string
	Message *message.Message
}

type FakePublisher struct {
	mu   sync.Mutex
	sent []published
	Err  error
}

func (p *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	for _, m := range messages {
		p.sent = append(p.sent, published{Topic: topic, Message: m})
	}
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Sent() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]published, len(p.sent))
	copy(out, p.sent)
	return out
}

var _ message.Publisher = (*FakePublisher)(nil)
