package userservice

import (
	"context"

	userdb "github.com/Black-And-White-Club/prode/app/modules/user/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepo struct {
	trace []string

	GetByIDFunc           func(ctx context.Context, db bun.IDB, id string) (*userdb.User, error)
	GetByGoogleSubFunc    func(ctx context.Context, db bun.IDB, sub string) (*userdb.User, error)
	GetByEmailFunc        func(ctx context.Context, db bun.IDB, email string) (*userdb.User, error)
	CreateFunc            func(ctx context.Context, db bun.IDB, user *userdb.User) error
	UpdateProfileFunc     func(ctx context.Context, db bun.IDB, user *userdb.User) error
	UpdateDisplayNameFunc func(ctx context.Context, db bun.IDB, id, displayName string) error
	GuestDataFunc         func(ctx context.Context, db bun.IDB, id string) (userdb.GuestData, error)
	MergeGuestFunc        func(ctx context.Context, db bun.IDB, guestID, accountID string) error
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{trace: []string{}}
}

func (f *FakeUserRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeUserRepo) GetByID(ctx context.Context, db bun.IDB, id string) (*userdb.User, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) GetByGoogleSub(ctx context.Context, db bun.IDB, sub string) (*userdb.User, error) {
	f.record("GetByGoogleSub")
	if f.GetByGoogleSubFunc != nil {
		return f.GetByGoogleSubFunc(ctx, db, sub)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) GetByEmail(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
	f.record("GetByEmail")
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, db, email)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) Create(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, user)
	}
	return nil
}

func (f *FakeUserRepo) UpdateProfile(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("UpdateProfile")
	if f.UpdateProfileFunc != nil {
		return f.UpdateProfileFunc(ctx, db, user)
	}
	return nil
}

func (f *FakeUserRepo) UpdateDisplayName(ctx context.Context, db bun.IDB, id, displayName string) error {
	f.record("UpdateDisplayName")
	if f.UpdateDisplayNameFunc != nil {
		return f.UpdateDisplayNameFunc(ctx, db, id, displayName)
	}
	return nil
}

func (f *FakeUserRepo) GuestData(ctx context.Context, db bun.IDB, id string) (userdb.GuestData, error) {
	f.record("GuestData")
	if f.GuestDataFunc != nil {
		return f.GuestDataFunc(ctx, db, id)
	}
	return userdb.GuestData{}, nil
}

func (f *FakeUserRepo) MergeGuest(ctx context.Context, db bun.IDB, guestID, accountID string) error {
	f.record("MergeGuest")
	if f.MergeGuestFunc != nil {
		return f.MergeGuestFunc(ctx, db, guestID, accountID)
	}
	return nil
}

var _ userdb.Repository = (*FakeUserRepo)(nil)
