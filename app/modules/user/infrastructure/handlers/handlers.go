package userhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/prode/app/modules/auth/domain"
	userservice "github.com/Black-And-White-Club/prode/app/modules/user/application"
	userdomain "github.com/Black-And-White-Club/prode/app/modules/user/domain"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/respond"
)

// UserHandlers implements Handlers.
type UserHandlers struct {
	service       userservice.Service
	logger        *slog.Logger
	secureCookies bool
}

// NewUserHandlers creates the user HTTP handlers.
func NewUserHandlers(service userservice.Service, logger *slog.Logger, secureCookies bool) Handlers {
	return &UserHandlers{service: service, logger: logger, secureCookies: secureCookies}
}

type userResponse struct {
	User    *userdomain.User `json:"user"`
	IsAdmin bool             `json:"isAdmin,omitempty"`
}

type displayNameRequest struct {
	DisplayName string `json:"displayName"`
}

// HandleEnsureGuest returns the caller's user, creating a guest and setting
// the guest cookie when the request carries no identity.
func (h *UserHandlers) HandleEnsureGuest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if id, ok := authdomain.IdentityFromContext(ctx); ok {
		user, err := h.service.GetUser(ctx, id.UserID)
		if err == nil {
			respond.JSON(w, http.StatusOK, userResponse{User: user, IsAdmin: id.IsAdmin})
			return
		}
		if !errors.Is(err, userdomain.ErrUserNotFound) || !id.IsGuest {
			h.writeError(w, r, err)
			return
		}
	}

	user, err := h.service.EnsureGuest(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authdomain.GuestCookieName,
		Value:    user.ID,
		Path:     "/",
		MaxAge:   int(authdomain.GuestCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	respond.JSON(w, http.StatusCreated, userResponse{User: user})
}

func (h *UserHandlers) HandleGuestStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := authdomain.IdentityFromContext(r.Context())
	if !ok || !id.IsGuest {
		respond.JSON(w, http.StatusOK, userservice.GuestStatus{})
		return
	}
	status, err := h.service.GuestStatus(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, status)
}

func (h *UserHandlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := authdomain.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "UNAUTHENTICATED")
		return
	}
	user, err := h.service.GetUser(r.Context(), id.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, userResponse{User: user, IsAdmin: id.IsAdmin})
}

func (h *UserHandlers) HandleUpdateDisplayName(w http.ResponseWriter, r *http.Request) {
	id, ok := authdomain.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "UNAUTHENTICATED")
		return
	}

	var req displayNameRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "INVALID_BODY")
		return
	}

	user, err := h.service.UpdateDisplayName(r.Context(), id.UserID, req.DisplayName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, userResponse{User: user})
}

func (h *UserHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var nameErr *userdomain.NameError
	switch {
	case errors.Is(err, userdomain.ErrNameTaken):
		respond.ErrorMessage(w, http.StatusConflict, userdomain.ErrNameTaken.Code, userdomain.ErrNameTaken.Message)
	case errors.As(err, &nameErr):
		respond.ErrorMessage(w, http.StatusBadRequest, nameErr.Code, nameErr.Message)
	case errors.Is(err, userdomain.ErrUserNotFound):
		respond.Error(w, http.StatusNotFound, userdomain.ErrUserNotFound.Error())
	default:
		h.logger.ErrorContext(r.Context(), "User request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		respond.Error(w, http.StatusInternalServerError, "INTERNAL")
	}
}
