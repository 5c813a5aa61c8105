package userdb

import (
	"time"

	userdomain "github.com/Black-And-White-Club/prode/app/modules/user/domain"
	"github.com/uptrace/bun"
)

// User is the persisted user row.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          string    `bun:"id,pk"`
	DisplayName string    `bun:"display_name,notnull,unique"`
	Email       *string   `bun:"email,unique"`
	Name        *string   `bun:"name"`
	Image       *string   `bun:"image"`
	GoogleSub   *string   `bun:"google_sub,unique"`
	IsGuest     bool      `bun:"is_guest,notnull,default:true"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// ToDomain converts the row into the domain value.
func (u *User) ToDomain() userdomain.User {
	return userdomain.User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Name:        u.Name,
		Image:       u.Image,
		IsGuest:     u.IsGuest,
		CreatedAt:   u.CreatedAt,
	}
}

// GuestData reports what a guest has accumulated before logging in.
type GuestData struct {
	Memberships int `bun:"memberships"`
	Predictions int `bun:"predictions"`
}

// HasData reports whether anything would be lost by dropping the guest.
func (g GuestData) HasData() bool {
	return g.Memberships > 0 || g.Predictions > 0
}
