package matchhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	matchservice "github.com/Black-And-White-Club/prode/app/modules/match/application"
	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/respond"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MatchHandlers implements Handlers.
type MatchHandlers struct {
	service matchservice.Service
	logger  *slog.Logger
}

// NewMatchHandlers creates the match HTTP handlers.
func NewMatchHandlers(service matchservice.Service, logger *slog.Logger) Handlers {
	return &MatchHandlers{service: service, logger: logger}
}

type matchesResponse struct {
	Matches []matchdomain.Match `json:"matches"`
}

type matchResponse struct {
	OK    bool               `json:"ok,omitempty"`
	Match *matchdomain.Match `json:"match"`
}

func (h *MatchHandlers) HandleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.service.ListMatches(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if matches == nil {
		matches = []matchdomain.Match{}
	}
	respond.JSON(w, http.StatusOK, matchesResponse{Matches: matches})
}

func (h *MatchHandlers) HandleAdminListMatches(w http.ResponseWriter, r *http.Request) {
	h.HandleListMatches(w, r)
}

func (h *MatchHandlers) HandleAdminGetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "matchID"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, matchdomain.ErrMatchNotFound.Error())
		return
	}
	match, err := h.service.GetMatch(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, matchResponse{Match: match})
}

func (h *MatchHandlers) HandleAdminRecordResult(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "matchID"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, matchdomain.ErrMatchNotFound.Error())
		return
	}

	var patch matchdomain.ResultPatch
	if err := respond.DecodeJSON(r, &patch); err != nil {
		respond.Error(w, http.StatusBadRequest, "INVALID_BODY")
		return
	}

	match, err := h.service.RecordResult(r.Context(), id, patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, matchResponse{OK: true, Match: match})
}

func (h *MatchHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, matchdomain.ErrMatchNotFound):
		respond.Error(w, http.StatusNotFound, matchdomain.ErrMatchNotFound.Error())
	case matchdomain.IsValidationError(err):
		respond.Error(w, http.StatusBadRequest, rootCode(err))
	default:
		h.logger.ErrorContext(r.Context(), "Match request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		respond.Error(w, http.StatusInternalServerError, "INTERNAL")
	}
}

// rootCode unwraps err down to the sentinel that names the API code.
func rootCode(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
