package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/prode/app/modules/auth/domain"
	userdomain "github.com/Black-And-White-Club/prode/app/modules/user/domain"
)

// Service defines the authentication service interface.
type Service interface {
	// LoginURL returns the Google consent URL carrying state.
	LoginURL(state string) (string, error)

	// CompleteLogin exchanges the authorization code, upserts the account,
	// folds the guest identity into it and issues a session token.
	CompleteLogin(ctx context.Context, code, guestID string) (*Session, error)

	// ValidateToken validates a session token and returns its claims.
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

// IdentityProvider is the OAuth2 client of the external login provider.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (userdomain.GoogleProfile, error)
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *userdomain.User
}
