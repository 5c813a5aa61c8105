package authhandlers

import (
	"context"

	authservice "github.com/Black-And-White-Club/prode/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/prode/app/modules/auth/domain"
	userdomain "github.com/Black-And-White-Club/prode/app/modules/user/domain"
)

// FakeService is a programmable fake for authservice.Service.
type FakeService struct {
	LoginURLFunc      func(state string) (string, error)
	CompleteLoginFunc func(ctx context.Context, code, guestID string) (*authservice.Session, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

func (f *FakeService) LoginURL(state string) (string, error) {
	if f.LoginURLFunc != nil {
		return f.LoginURLFunc(state)
	}
	return "https://accounts.example.com/auth?state=" + state, nil
}

func (f *FakeService) CompleteLogin(ctx context.Context, code, guestID string) (*authservice.Session, error) {
	if f.CompleteLoginFunc != nil {
		return f.CompleteLoginFunc(ctx, code, guestID)
	}
	return nil, authservice.ErrLoginDisabled
}

func (f *FakeService) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, tokenString)
	}
	return nil, authservice.ErrInvalidToken
}

var _ authservice.Service = (*FakeService)(nil)

// FakeUserLookup resolves guest ids from a map.
type FakeUserLookup struct {
	Users map[string]*userdomain.User
}

func (f *FakeUserLookup) GetUser(ctx context.Context, id string) (*userdomain.User, error) {
	if u, ok := f.Users[id]; ok {
		return u, nil
	}
	return nil, userdomain.ErrUserNotFound
}
