package authservice

import (
	"context"

	userservice "github.com/Black-And-White-Club/prode/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/prode/app/modules/user/domain"
)

type FakeIdentityProvider struct {
	FetchProfileFunc func(ctx context.Context, code string) (userdomain.GoogleProfile, error)
}

func (f *FakeIdentityProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + state
}

func (f *FakeIdentityProvider) FetchProfile(ctx context.Context, code string) (userdomain.GoogleProfile, error) {
	if f.FetchProfileFunc != nil {
		return f.FetchProfileFunc(ctx, code)
	}
	return userdomain.GoogleProfile{Sub: "sub-1", Email: "fan@example.com"}, nil
}

type FakeUserService struct {
	trace []string

	UpsertGoogleUserFunc func(ctx context.Context, profile userdomain.GoogleProfile) (*userdomain.User, error)
	MergeGuestFunc       func(ctx context.Context, guestID, accountID string) error
}

func (f *FakeUserService) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeUserService) EnsureGuest(ctx context.Context) (*userdomain.User, error) {
	f.record("EnsureGuest")
	return nil, nil
}

func (f *FakeUserService) GetUser(ctx context.Context, id string) (*userdomain.User, error) {
	f.record("GetUser")
	return nil, userdomain.ErrUserNotFound
}

func (f *FakeUserService) GuestStatus(ctx context.Context, guestID string) (userservice.GuestStatus, error) {
	f.record("GuestStatus")
	return userservice.GuestStatus{}, nil
}

func (f *FakeUserService) UpdateDisplayName(ctx context.Context, id, raw string) (*userdomain.User, error) {
	f.record("UpdateDisplayName")
	return nil, nil
}

func (f *FakeUserService) UpsertGoogleUser(ctx context.Context, profile userdomain.GoogleProfile) (*userdomain.User, error) {
	f.record("UpsertGoogleUser")
	if f.UpsertGoogleUserFunc != nil {
		return f.UpsertGoogleUserFunc(ctx, profile)
	}
	email := profile.Email
	return &userdomain.User{ID: "acc123456789", Email: &email}, nil
}

func (f *FakeUserService) MergeGuest(ctx context.Context, guestID, accountID string) error {
	f.record("MergeGuest")
	if f.MergeGuestFunc != nil {
		return f.MergeGuestFunc(ctx, guestID, accountID)
	}
	return nil
}

var _ userservice.Service = (*FakeUserService)(nil)
