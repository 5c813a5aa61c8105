package userhandlers

import "net/http"

// Handlers exposes the user HTTP endpoints.
type Handlers interface {
	HandleEnsureGuest(w http.ResponseWriter, r *http.Request)
	HandleGuestStatus(w http.ResponseWriter, r *http.Request)
	HandleMe(w http.ResponseWriter, r *http.Request)
	HandleUpdateDisplayName(w http.ResponseWriter, r *http.Request)
}
