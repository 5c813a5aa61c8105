package userdb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the contract for user persistence.
type Repository interface {
	GetByID(ctx context.Context, db bun.IDB, id string) (*User, error)
	GetByGoogleSub(ctx context.Context, db bun.IDB, sub string) (*User, error)
	GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error)

	// Create inserts a user. ErrDisplayNameTaken is returned on a name collision.
	Create(ctx context.Context, db bun.IDB, user *User) error

	// UpdateProfile refreshes the Google-sourced columns.
	UpdateProfile(ctx context.Context, db bun.IDB, user *User) error

	// UpdateDisplayName renames a user. ErrDisplayNameTaken on collision.
	UpdateDisplayName(ctx context.Context, db bun.IDB, id, displayName string) error

	// GuestData counts memberships and predictions owned by id.
	GuestData(ctx context.Context, db bun.IDB, id string) (GuestData, error)

	// MergeGuest moves memberships and predictions from guestID onto accountID
	// and deletes the guest. Must run inside a transaction.
	MergeGuest(ctx context.Context, db bun.IDB, guestID, accountID string) error
}
