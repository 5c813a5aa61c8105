package userhandlers

import (
	"context"

	userservice "github.com/Black-And-White-Club/prode/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/prode/app/modules/user/domain"
)

type FakeUserService struct {
	EnsureGuestFunc       func(ctx context.Context) (*userdomain.User, error)
	GetUserFunc           func(ctx context.Context, id string) (*userdomain.User, error)
	GuestStatusFunc       func(ctx context.Context, guestID string) (userservice.GuestStatus, error)
	UpdateDisplayNameFunc func(ctx context.Context, id, raw string) (*userdomain.User, error)
	UpsertGoogleUserFunc  func(ctx context.Context, profile userdomain.GoogleProfile) (*userdomain.User, error)
	MergeGuestFunc        func(ctx context.Context, guestID, accountID string) error
}

func (f *FakeUserService) EnsureGuest(ctx context.Context) (*userdomain.User, error) {
	if f.EnsureGuestFunc != nil {
		return f.EnsureGuestFunc(ctx)
	}
	return &userdomain.User{ID: "guest0000000", DisplayName: "Usuario_guest0", IsGuest: true}, nil
}

func (f *FakeUserService) GetUser(ctx context.Context, id string) (*userdomain.User, error) {
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, id)
	}
	return nil, userdomain.ErrUserNotFound
}

func (f *FakeUserService) GuestStatus(ctx context.Context, guestID string) (userservice.GuestStatus, error) {
	if f.GuestStatusFunc != nil {
		return f.GuestStatusFunc(ctx, guestID)
	}
	return userservice.GuestStatus{}, nil
}

func (f *FakeUserService) UpdateDisplayName(ctx context.Context, id, raw string) (*userdomain.User, error) {
	if f.UpdateDisplayNameFunc != nil {
		return f.UpdateDisplayNameFunc(ctx, id, raw)
	}
	return &userdomain.User{ID: id, DisplayName: raw}, nil
}

func (f *FakeUserService) UpsertGoogleUser(ctx context.Context, profile userdomain.GoogleProfile) (*userdomain.User, error) {
	if f.UpsertGoogleUserFunc != nil {
		return f.UpsertGoogleUserFunc(ctx, profile)
	}
	return nil, nil
}

func (f *FakeUserService) MergeGuest(ctx context.Context, guestID, accountID string) error {
	if f.MergeGuestFunc != nil {
		return f.MergeGuestFunc(ctx, guestID, accountID)
	}
	return nil
}

var _ userservice.Service = (*FakeUserService)(nil)
