package matchservice

import (
	"context"
	"sync"

	matchdb "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/repositories"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Match Repo
// ------------------------

type FakeMatchRepo struct {
	trace []string

	GetByIDFunc        func(ctx context.Context, db bun.IDB, id uuid.UUID) (*matchdb.Match, error)
	ListAllFunc        func(ctx context.Context, db bun.IDB) ([]matchdb.Match, error)
	ListByIDsFunc      func(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]matchdb.Match, error)
	ListByStagesFunc   func(ctx context.Context, db bun.IDB, stages []string) ([]matchdb.Match, error)
	UpdateResultFunc   func(ctx context.Context, db bun.IDB, match *matchdb.Match) error
	UpsertByFifaIDFunc func(ctx context.Context, db bun.IDB, matches []*matchdb.Match) (int, error)
	InsertFunc         func(ctx context.Context, db bun.IDB, matches []*matchdb.Match) error
}

func NewFakeMatchRepo() *FakeMatchRepo {
	return &FakeMatchRepo{trace: []string{}}
}

func (f *FakeMatchRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeMatchRepo) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*matchdb.Match, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, matchdb.ErrNotFound
}

func (f *FakeMatchRepo) ListAll(ctx context.Context, db bun.IDB) ([]matchdb.Match, error) {
	f.record("ListAll")
	if f.ListAllFunc != nil {
		return f.ListAllFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeMatchRepo) ListByIDs(ctx context.Context, db bun.IDB, ids []uuid.UUID) ([]matchdb.Match, error) {
	f.record("ListByIDs")
	if f.ListByIDsFunc != nil {
		return f.ListByIDsFunc(ctx, db, ids)
	}
	return nil, nil
}

func (f *FakeMatchRepo) ListByStages(ctx context.Context, db bun.IDB, stages []string) ([]matchdb.Match, error) {
	f.record("ListByStages")
	if f.ListByStagesFunc != nil {
		return f.ListByStagesFunc(ctx, db, stages)
	}
	return nil, nil
}

func (f *FakeMatchRepo) UpdateResult(ctx context.Context, db bun.IDB, match *matchdb.Match) error {
	f.record("UpdateResult")
	if f.UpdateResultFunc != nil {
		return f.UpdateResultFunc(ctx, db, match)
	}
	return nil
}

func (f *FakeMatchRepo) UpsertByFifaID(ctx context.Context, db bun.IDB, matches []*matchdb.Match) (int, error) {
	f.record("UpsertByFifaID")
	if f.UpsertByFifaIDFunc != nil {
		return f.UpsertByFifaIDFunc(ctx, db, matches)
	}
	return len(matches), nil
}

func (f *FakeMatchRepo) Insert(ctx context.Context, db bun.IDB, matches []*matchdb.Match) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, matches)
	}
	return nil
}

func (f *FakeMatchRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

var _ matchdb.Repository = (*FakeMatchRepo)(nil)

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
