package authdomain

import "time"

const (
	// SessionCookieName holds the signed session JWT of a Google account.
	SessionCookieName = "prode_session"
	// GuestCookieName holds the id of a guest user.
	GuestCookieName = "prode_uid"
	// StateCookieName holds the OAuth2 state during the login round trip.
	StateCookieName = "prode_oauth_state"

	GuestCookieMaxAge = 365 * 24 * time.Hour
)
