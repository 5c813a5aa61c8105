package userservice

import (
	"context"

	userdomain "github.com/Black-And-White-Club/prode/app/modules/user/domain"
)

// GuestStatus describes a guest identity before login.
type GuestStatus struct {
	Exists  bool `json:"exists"`
	HasData bool `json:"hasData"`
}

// Service manages users, guests and display names.
type Service interface {
	EnsureGuest(ctx context.Context) (*userdomain.User, error)
	GetUser(ctx context.Context, id string) (*userdomain.User, error)
	GuestStatus(ctx context.Context, guestID string) (GuestStatus, error)
	UpdateDisplayName(ctx context.Context, id, raw string) (*userdomain.User, error)
	UpsertGoogleUser(ctx context.Context, profile userdomain.GoogleProfile) (*userdomain.User, error)
	MergeGuest(ctx context.Context, guestID, accountID string) error
}
