package predictionservice

import (
	"context"
	"sync"

	matchdb "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/repositories"
	predictiondb "github.com/Black-And-White-Club/prode/app/modules/prediction/infrastructure/repositories"
	roomdb "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/repositories"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Prediction Repo
// ------------------------

type FakePredictionRepo struct {
	trace []string

	UpsertFunc              func(ctx context.Context, db bun.IDB, rows []*predictiondb.Prediction) (int, error)
	ListByRoomFunc          func(ctx context.Context, db bun.IDB, roomID uuid.UUID) ([]predictiondb.Prediction, error)
	ListForStageFunc        func(ctx context.Context, db bun.IDB, roomID uuid.UUID, stage string) ([]predictiondb.StageRow, error)
	ListDetailedFunc        func(ctx context.Context, db bun.IDB, roomID uuid.UUID) ([]predictiondb.DetailedRow, error)
	ListRoomIDsForMatchFunc func(ctx context.Context, db bun.IDB, matchID uuid.UUID) ([]uuid.UUID, error)
}

func NewFakePredictionRepo() *FakePredictionRepo {
	return &FakePredictionRepo{trace: []string{}}
}

func (f *FakePredictionRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakePredictionRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakePredictionRepo) Upsert(ctx context.Context, db bun.IDB, rows []*predictiondb.Prediction) (int, error) {
	f.record("Upsert")
	if f.UpsertFunc != nil {
		return f.UpsertFunc(ctx, db, rows)
	}
	return len(rows), nil
}

func (f *FakePredictionRepo) ListByRoom(ctx context.Context, db bun.IDB, roomID uuid.UUID) ([]predictiondb.Prediction, error) {
	f.record("ListByRoom")
	if f.ListByRoomFunc != nil {
		return f.ListByRoomFunc(ctx, db, roomID)
	}
	return nil, nil
}

func (f *FakePredictionRepo) ListForStage(ctx context.Context, db bun.IDB, roomID uuid.UUID, stage string) ([]predictiondb.StageRow, error) {
	f.record("ListForStage")
	if f.ListForStageFunc != nil {
		return f.ListForStageFunc(ctx, db, roomID, stage)
	}
	return nil, nil
}

func (f *FakePredictionRepo) ListDetailed(ctx context.Context, db bun.IDB, roomID uuid.UUID) ([]predictiondb.DetailedRow, error) {
	f.record("ListDetailed")
	if f.ListDetailedFunc != nil {
		return f.ListDetailedFunc(ctx, db, roomID)
	}
	return nil, nil
}

func (f *FakePredictionRepo) ListRoomIDsForMatch(ctx context.Context, db bun.IDB, matchID uuid.UUID) ([]uuid.UUID, error) {
	f.record("ListRoomIDsForMatch")
	if f.ListRoomIDsForMatchFunc != nil {
		return f.ListRoomIDsForMatchFunc(ctx, db, matchID)
	}
	return nil, nil
}

var _ predictiondb.Repository = (*FakePredictionRepo)(nil)

// ------------------------
// Fake Match Repo
// ------------------------

// FakeMatchRepo serves a fixed schedule.
type FakeMatchRepo struct {
	Matches []matchdb.Match
	Calls   []string
}

func (f *FakeMatchRepo) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*matchdb.Match, error) {
	f.Calls = append(f.Calls, "GetByID")
	for i := range f.Matches {
		if f.Matches[i].ID == id {
			return &f.Matches[i], nil
		}
	}
	return nil, matchdb.ErrNotFound
}

func (f *FakeMatchRepo) ListAll(ctx context.Context, db bun.IDB) ([]matchdb.Match, error) {
	f.Calls = append(f.Calls, "ListAll")
	return f.Matches, nil
}

func (f *FakeMatchRepo) ListByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]matchdb.Match, error) {
	f.Calls = append(f.Calls, "ListByIDs")
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []matchdb.Match
	for _, m := range f.Matches {
		if want[m.ID] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *FakeMatchRepo) ListByStages(ctx context.Context, db bun.IDB, stages []string) ([]matchdb.Match, error) {
	f.Calls = append(f.Calls, "ListByStages")
	want := make(map[string]bool, len(stages))
	for _, s := range stages {
		want[s] = true
	}
	var out []matchdb.Match
	for _, m := range f.Matches {
		if want[m.Stage] {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *FakeMatchRepo) UpdateResult(ctx context.Context, db bun.IDB, match *matchdb.Match) error {
	return nil
}

func (f *FakeMatchRepo) UpsertByFifaID(ctx context.Context, db bun.IDB, matches []*matchdb.Match) (int, error) {
	return len(matches), nil
}

func (f *FakeMatchRepo) Insert(ctx context.Context, db bun.IDB, matches []*matchdb.Match) error {
	return nil
}

var _ matchdb.Repository = (*FakeMatchRepo)(nil)

// ------------------------
// Fake Room Repo
// ------------------------

// FakeRoomRepo serves one room and its members; writes are ignored.
type FakeRoomRepo struct {
	Room    *roomdb.Room
	Members []roomdb.Member
}

func (f *FakeRoomRepo) CreateRoom(ctx context.Context, db bun.IDB, room *roomdb.Room) error {
	return nil
}

func (f *FakeRoomRepo) GetRoomByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*roomdb.Room, error) {
	if f.Room == nil || f.Room.ID != id {
		return nil, roomdb.ErrNotFound
	}
	return f.Room, nil
}

func (f *FakeRoomRepo) GetRoomByCode(ctx context.Context, db bun.IDB, code string) (*roomdb.Room, error) {
	return nil, roomdb.ErrNotFound
}

func (f *FakeRoomRepo) DeleteRoom(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	return nil
}

func (f *FakeRoomRepo) ListRoomsForUser(ctx context.Context, db bun.IDB, userID string) ([]roomdb.Membership, error) {
	return nil, nil
}

func (f *FakeRoomRepo) CreateMember(ctx context.Context, db bun.IDB, member *roomdb.Member) error {
	return nil
}

func (f *FakeRoomRepo) GetMember(ctx context.Context, db bun.IDB, roomID, memberID uuid.UUID) (*roomdb.Member, error) {
	for i := range f.Members {
		if f.Members[i].RoomID == roomID && f.Members[i].ID == memberID {
			return &f.Members[i], nil
		}
	}
	return nil, roomdb.ErrMemberNotFound
}

func (f *FakeRoomRepo) GetMemberByUser(ctx context.Context, db bun.IDB, roomID uuid.UUID, userID string) (*roomdb.Member, error) {
	for i := range f.Members {
		if f.Members[i].RoomID == roomID && f.Members[i].UserID == userID {
			return &f.Members[i], nil
		}
	}
	return nil, roomdb.ErrMemberNotFound
}

func (f *FakeRoomRepo) ListMembers(ctx context.Context, db bun.IDB, roomID uuid.UUID, status string) ([]roomdb.Member, error) {
	var out []roomdb.Member
	for _, m := range f.Members {
		if m.RoomID == roomID && m.Status == status {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *FakeRoomRepo) UpdateMemberStatus(ctx context.Context, db bun.IDB, memberID uuid.UUID, status string) error {
	return nil
}

func (f *FakeRoomRepo) UpdateMemberRole(ctx context.Context, db bun.IDB, memberID uuid.UUID, role string) error {
	return nil
}

func (f *FakeRoomRepo) DeleteMember(ctx context.Context, db bun.IDB, memberID uuid.UUID) error {
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
}

func (p *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
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

// ------------------------
// Recording metrics
// ------------------------

type recordingMetrics struct {
	observability.NoopMetrics
	entries map[string]int
}

func (m *recordingMetrics) RecordPredictionEntry(_ context.Context, outcome string) {
	m.entries[outcome]++
}
