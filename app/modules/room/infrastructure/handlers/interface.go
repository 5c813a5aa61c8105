package roomhandlers

import "net/http"

// Handlers exposes the room and membership HTTP endpoints.
type Handlers interface {
	HandleCreateRoom(w http.ResponseWriter, r *http.Request)
	HandleJoinRoom(w http.ResponseWriter, r *http.Request)
	HandleListMyRooms(w http.ResponseWriter, r *http.Request)
	HandleGetRoom(w http.ResponseWriter, r *http.Request)
	HandleDeleteRoom(w http.ResponseWriter, r *http.Request)
	HandleMyStatus(w http.ResponseWriter, r *http.Request)
	HandleListPending(w http.ResponseWriter, r *http.Request)
	HandleApproveMember(w http.ResponseWriter, r *http.Request)
	HandleRejectMember(w http.ResponseWriter, r *http.Request)
	HandleKickMember(w http.ResponseWriter, r *http.Request)
	HandleChangeRole(w http.ResponseWriter, r *http.Request)
}
