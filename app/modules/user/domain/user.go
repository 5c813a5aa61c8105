package userdomain

import (
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// GuestIDLength is the length of generated user ids.
const GuestIDLength = 12

// User is a person playing in rooms, either a cookie guest or a Google account.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       *string   `json:"email,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Image       *string   `json:"image,omitempty"`
	IsGuest     bool      `json:"isGuest"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GoogleProfile is the userinfo returned after a Google login.
type GoogleProfile struct {
	Sub   string
	Email string
	Name  string
	Image string
}

// NewUserID returns a 12-char URL-safe random id.
func NewUserID() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:])[:GuestIDLength]
}

// DefaultDisplayName is the placeholder name given to new users.
func DefaultDisplayName(id string) string {
	prefix := id
	if len(prefix) > 6 {
		prefix = prefix[:6]
	}
	return "Usuario_" + prefix
}
