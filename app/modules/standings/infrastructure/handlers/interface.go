package standingshandlers

import "net/http"

// Handlers serves the standings routes of a room.
type Handlers interface {
	HandleGetStandings(w http.ResponseWriter, r *http.Request)
	HandleStandingsChart(w http.ResponseWriter, r *http.Request)
}
