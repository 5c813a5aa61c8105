package standingshandlers

import (
	"errors"
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/prode/app/modules/auth/domain"
	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
	standingsservice "github.com/Black-And-White-Club/prode/app/modules/standings/application"
	standingsdomain "github.com/Black-And-White-Club/prode/app/modules/standings/domain"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/respond"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// StandingsHandlers implements Handlers.
type StandingsHandlers struct {
	service standingsservice.Service
	logger  *slog.Logger
}

func NewStandingsHandlers(service standingsservice.Service, logger *slog.Logger) Handlers {
	return &StandingsHandlers{service: service, logger: logger}
}

type standingsResponse struct {
	Standings []standingsdomain.Row `json:"standings"`
}

func route(w http.ResponseWriter, r *http.Request) (authdomain.Identity, uuid.UUID, bool) {
	id, ok := authdomain.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "UNAUTHENTICATED")
		return id, uuid.Nil, false
	}
	roomID, err := uuid.Parse(chi.URLParam(r, "roomID"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, roomdomain.ErrRoomNotFound.Error())
		return id, uuid.Nil, false
	}
	return id, roomID, true
}

func (h *StandingsHandlers) HandleGetStandings(w http.ResponseWriter, r *http.Request) {
	id, roomID, ok := route(w, r)
	if !ok {
		return
	}
	rows, err := h.service.ViewStandings(r.Context(), roomID, id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []standingsdomain.Row{}
	}
	respond.JSON(w, http.StatusOK, standingsResponse{Standings: rows})
}

func (h *StandingsHandlers) HandleStandingsChart(w http.ResponseWriter, r *http.Request) {
	id, roomID, ok := route(w, r)
	if !ok {
		return
	}
	png, err := h.service.StandingsChart(r.Context(), roomID, id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write standings chart", attr.Error(err))
	}
}

func (h *StandingsHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roomdomain.ErrNotMember):
		respond.Error(w, http.StatusForbidden, roomdomain.ErrNotMember.Error())
	case errors.Is(err, roomdomain.ErrNotActive):
		respond.Error(w, http.StatusForbidden, roomdomain.ErrNotActive.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Standings request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		respond.Error(w, http.StatusInternalServerError, "INTERNAL")
	}
}
