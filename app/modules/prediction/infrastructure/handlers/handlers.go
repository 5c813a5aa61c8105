package predictionhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	authdomain "github.com/Black-And-White-Club/prode/app/modules/auth/domain"
	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	predictionservice "github.com/Black-And-White-Club/prode/app/modules/prediction/application"
	predictiondomain "github.com/Black-And-White-Club/prode/app/modules/prediction/domain"
	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/respond"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PredictionHandlers implements Handlers.
type PredictionHandlers struct {
	service predictionservice.Service
	logger  *slog.Logger
}

func NewPredictionHandlers(service predictionservice.Service, logger *slog.Logger) Handlers {
	return &PredictionHandlers{service: service, logger: logger}
}

type submitRequest struct {
	Predictions []json.RawMessage `json:"predictions"`
}

type submitResponse struct {
	OK        bool                             `json:"ok"`
	Saved     int                              `json:"saved"`
	Submitted int                              `json:"submitted"`
	Rejected  map[predictiondomain.Outcome]int `json:"rejected"`
	ServerNow time.Time                        `json:"serverNow"`
}

type stageResponse struct {
	ServerNow   time.Time                          `json:"serverNow"`
	Predictions []predictiondomain.StagePrediction `json:"predictions"`
}

type allResponse struct {
	Predictions []predictiondomain.DetailedPrediction `json:"predictions"`
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

// HandleSubmitPredictions saves a batch. Bad entries never fail the request;
// they are counted under rejected.
func (h *PredictionHandlers) HandleSubmitPredictions(w http.ResponseWriter, r *http.Request) {
	id, roomID, ok := route(w, r)
	if !ok {
		return
	}
	var req submitRequest
	if err := respond.DecodeJSON(r, &req); err != nil || req.Predictions == nil {
		respond.Error(w, http.StatusBadRequest, "INVALID_BODY")
		return
	}

	res, err := h.service.SubmitBatch(r.Context(), roomID, id.UserID, req.Predictions)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, submitResponse{
		OK:        true,
		Saved:     res.Saved,
		Submitted: res.Submitted,
		Rejected:  res.Rejected,
		ServerNow: res.ServerNow,
	})
}

func (h *PredictionHandlers) HandleListPredictions(w http.ResponseWriter, r *http.Request) {
	id, roomID, ok := route(w, r)
	if !ok {
		return
	}
	preds, err := h.service.ListForStage(r.Context(), roomID, id.UserID, r.URL.Query().Get("stage"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if preds == nil {
		preds = []predictiondomain.StagePrediction{}
	}
	respond.JSON(w, http.StatusOK, stageResponse{ServerNow: time.Now().UTC(), Predictions: preds})
}

func (h *PredictionHandlers) HandleListAllPredictions(w http.ResponseWriter, r *http.Request) {
	id, roomID, ok := route(w, r)
	if !ok {
		return
	}
	preds, err := h.service.ListAll(r.Context(), roomID, id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if preds == nil {
		preds = []predictiondomain.DetailedPrediction{}
	}
	respond.JSON(w, http.StatusOK, allResponse{Predictions: preds})
}

func (h *PredictionHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, roomdomain.ErrRoomNotFound):
		respond.Error(w, http.StatusNotFound, roomdomain.ErrRoomNotFound.Error())
	case errors.Is(err, roomdomain.ErrNotMember):
		respond.Error(w, http.StatusForbidden, roomdomain.ErrNotMember.Error())
	case errors.Is(err, roomdomain.ErrNotActive):
		respond.Error(w, http.StatusForbidden, roomdomain.ErrNotActive.Error())
	case errors.Is(err, matchdomain.ErrInvalidStage):
		respond.Error(w, http.StatusBadRequest, matchdomain.ErrInvalidStage.Error())
	default:
		h.logger.ErrorContext(r.Context(), "Prediction request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		respond.Error(w, http.StatusInternalServerError, "INTERNAL")
	}
}
