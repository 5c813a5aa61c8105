package predictionhandlers

import "net/http"

// Handlers serves the prediction routes of a room.
type Handlers interface {
	HandleSubmitPredictions(w http.ResponseWriter, r *http.Request)
	HandleListPredictions(w http.ResponseWriter, r *http.Request)
	HandleListAllPredictions(w http.ResponseWriter, r *http.Request)
}
