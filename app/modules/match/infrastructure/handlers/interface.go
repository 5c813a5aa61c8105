package matchhandlers

import "net/http"

// Handlers exposes the match HTTP endpoints.
type Handlers interface {
	HandleListMatches(w http.ResponseWriter, r *http.Request)
	HandleAdminListMatches(w http.ResponseWriter, r *http.Request)
	HandleAdminGetMatch(w http.ResponseWriter, r *http.Request)
	HandleAdminRecordResult(w http.ResponseWriter, r *http.Request)
}
