package roomhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/prode/app/modules/auth/domain"
	roomservice "github.com/Black-And-White-Club/prode/app/modules/room/application"
	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
	standingsdomain "github.com/Black-And-White-Club/prode/app/modules/standings/domain"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/respond"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RoomHandlers implements Handlers.
type RoomHandlers struct {
	service roomservice.Service
	logger  *slog.Logger
}

// NewRoomHandlers creates the room HTTP handlers.
func NewRoomHandlers(service roomservice.Service, logger *slog.Logger) Handlers {
	return &RoomHandlers{service: service, logger: logger}
}

type okResponse struct {
	OK bool `json:"ok"`
}

type roomResponse struct {
	Room any `json:"room"`
}

type roomsResponse struct {
	Rooms []roomdomain.RoomMembership `json:"rooms"`
}

type joinRequest struct {
	Code             string `json:"code"`
	ContributionText string `json:"contributionText"`
}

type joinResponse struct {
	OK            bool                    `json:"ok"`
	RoomID        uuid.UUID               `json:"roomId"`
	Status        roomdomain.MemberStatus `json:"status"`
	AlreadyMember bool                    `json:"alreadyMember"`
	Room          roomdomain.Room         `json:"room"`
}

type statusResponse struct {
	Status roomdomain.MemberStatus `json:"status"`
	Role   roomdomain.Role         `json:"role,omitempty"`
}

type pendingResponse struct {
	Pending []roomdomain.Member `json:"pending"`
}

type memberResponse struct {
	OK       bool                 `json:"ok"`
	Member   roomdomain.Member    `json:"member"`
	Standing *standingsdomain.Row `json:"standing,omitempty"`
}

type roleRequest struct {
	Role string `json:"role"`
}

// identity returns the caller, answering 401 when there is none.
func identity(w http.ResponseWriter, r *http.Request) (authdomain.Identity, bool) {
	id, ok := authdomain.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "UNAUTHENTICATED")
	}
	return id, ok
}

// pathID parses a uuid route parameter, answering 404 with notFound when it
// is malformed.
func pathID(w http.ResponseWriter, r *http.Request, param string, notFound error) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respond.Error(w, http.StatusNotFound, notFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (h *RoomHandlers) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req roomservice.CreateRoomRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "INVALID_BODY")
		return
	}

	room, err := h.service.CreateRoom(r.Context(), id.UserID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, roomResponse{Room: room})
}

func (h *RoomHandlers) HandleJoinRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req joinRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "INVALID_BODY")
		return
	}
	if req.Code == "" {
		respond.Error(w, http.StatusBadRequest, "CODE_REQUIRED")
		return
	}

	res, err := h.service.JoinRoom(r.Context(), id.UserID, req.Code, req.ContributionText)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, joinResponse{
		OK:            true,
		RoomID:        res.Room.ID,
		Status:        res.Member.Status,
		AlreadyMember: res.AlreadyMember,
		Room:          res.Room,
	})
}

func (h *RoomHandlers) HandleListMyRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	rooms, err := h.service.ListMyRooms(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if rooms == nil {
		rooms = []roomdomain.RoomMembership{}
	}
	respond.JSON(w, http.StatusOK, roomsResponse{Rooms: rooms})
}

// HandleGetRoom is restricted to members in any non-rejected status.
func (h *RoomHandlers) HandleGetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "roomID", roomdomain.ErrRoomNotFound)
	if !ok {
		return
	}

	member, err := h.service.MyStatus(r.Context(), id.UserID, roomID)
	if err == nil && member.Status == roomdomain.StatusRejected {
		err = roomdomain.ErrRequestRejected
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	room, err := h.service.GetRoom(r.Context(), roomID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, roomResponse{Room: roomdomain.RoomMembership{
		Room:   *room,
		Role:   member.Role,
		Status: member.Status,
	}})
}

func (h *RoomHandlers) HandleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "roomID", roomdomain.ErrRoomNotFound)
	if !ok {
		return
	}
	if err := h.service.DeleteRoom(r.Context(), id.UserID, roomID); err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, okResponse{OK: true})
}

// HandleMyStatus answers 404 {"status":"NOT_MEMBER"} for non-members so the
// client can offer to join.
func (h *RoomHandlers) HandleMyStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "roomID", roomdomain.ErrRoomNotFound)
	if !ok {
		return
	}
	member, err := h.service.MyStatus(r.Context(), id.UserID, roomID)
	if errors.Is(err, roomdomain.ErrNotMember) {
		respond.JSON(w, http.StatusNotFound, statusResponse{Status: roomdomain.MemberStatus(roomdomain.ErrNotMember.Error())})
		return
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, statusResponse{Status: member.Status, Role: member.Role})
}

func (h *RoomHandlers) HandleListPending(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	roomID, ok := pathID(w, r, "roomID", roomdomain.ErrRoomNotFound)
	if !ok {
		return
	}
	pending, err := h.service.ListPending(r.Context(), id.UserID, roomID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if pending == nil {
		pending = []roomdomain.Member{}
	}
	respond.JSON(w, http.StatusOK, pendingResponse{Pending: pending})
}

// memberRoute resolves the caller and both route ids of a member action.
func memberRoute(w http.ResponseWriter, r *http.Request) (authdomain.Identity, uuid.UUID, uuid.UUID, bool) {
	id, ok := identity(w, r)
	if !ok {
		return id, uuid.Nil, uuid.Nil, false
	}
	roomID, ok := pathID(w, r, "roomID", roomdomain.ErrRoomNotFound)
	if !ok {
		return id, uuid.Nil, uuid.Nil, false
	}
	memberID, ok := pathID(w, r, "memberID", roomdomain.ErrMemberNotFound)
	if !ok {
		return id, uuid.Nil, uuid.Nil, false
	}
	return id, roomID, memberID, true
}

func (h *RoomHandlers) HandleApproveMember(w http.ResponseWriter, r *http.Request) {
	id, roomID, memberID, ok := memberRoute(w, r)
	if !ok {
		return
	}
	res, err := h.service.ApproveMember(r.Context(), id.UserID, roomID, memberID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, memberResponse{OK: true, Member: res.Member, Standing: &res.Standing})
}

func (h *RoomHandlers) HandleRejectMember(w http.ResponseWriter, r *http.Request) {
	id, roomID, memberID, ok := memberRoute(w, r)
	if !ok {
		return
	}
	member, err := h.service.RejectMember(r.Context(), id.UserID, roomID, memberID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, memberResponse{OK: true, Member: *member})
}

func (h *RoomHandlers) HandleKickMember(w http.ResponseWriter, r *http.Request) {
	id, roomID, memberID, ok := memberRoute(w, r)
	if !ok {
		return
	}
	if err := h.service.KickMember(r.Context(), id.UserID, roomID, memberID); err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, okResponse{OK: true})
}

func (h *RoomHandlers) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	id, roomID, memberID, ok := memberRoute(w, r)
	if !ok {
		return
	}
	var req roleRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, roomdomain.ErrInvalidRole.Error())
		return
	}
	member, err := h.service.ChangeRole(r.Context(), id.UserID, roomID, memberID, req.Role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, memberResponse{OK: true, Member: *member})
}

func (h *RoomHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roomdomain.ErrRoomNotFound),
		errors.Is(err, roomdomain.ErrMemberNotFound),
		errors.Is(err, roomdomain.ErrNotMember):
		respond.Error(w, http.StatusNotFound, rootCode(err))
	case roomdomain.IsPermissionError(err):
		respond.Error(w, http.StatusForbidden, rootCode(err))
	case roomdomain.IsValidationError(err):
		respond.Error(w, http.StatusBadRequest, rootCode(err))
	case errors.Is(err, roomdomain.ErrCodeGenerationFailed):
		respond.Error(w, http.StatusConflict, roomdomain.ErrCodeGenerationFailed.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Room request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		respond.Error(w, http.StatusInternalServerError, "INTERNAL")
	}
}

func rootCode(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
