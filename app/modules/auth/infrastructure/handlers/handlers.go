package authhandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	authservice "github.com/Black-And-White-Club/prode/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/prode/app/modules/auth/domain"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/respond"
	"github.com/google/uuid"
)

// stateTTL bounds the login round trip.
const stateTTL = 10 * time.Minute

// Handlers exposes the auth HTTP endpoints.
type Handlers interface {
	HandleGoogleLogin(w http.ResponseWriter, r *http.Request)
	HandleGoogleCallback(w http.ResponseWriter, r *http.Request)
	HandleLogout(w http.ResponseWriter, r *http.Request)
}

// AuthHandlers implements the Handlers interface.
type AuthHandlers struct {
	service       authservice.Service
	logger        *slog.Logger
	secureCookies bool
	afterLogin    string
}

// NewAuthHandlers creates a new AuthHandlers instance. afterLogin is the
// redirect target once the session cookie is set.
func NewAuthHandlers(service authservice.Service, logger *slog.Logger, secureCookies bool, afterLogin string) Handlers {
	if afterLogin == "" {
		afterLogin = "/"
	}
	return &AuthHandlers{
		service:       service,
		logger:        logger,
		secureCookies: secureCookies,
		afterLogin:    afterLogin,
	}
}

func (h *AuthHandlers) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	url, err := h.service.LoginURL(state)
	if err != nil {
		respond.Error(w, http.StatusNotFound, "LOGIN_DISABLED")
		return
	}
	h.setCookie(w, authdomain.StateCookieName, state, stateTTL)
	http.Redirect(w, r, url, http.StatusFound)
}

func (h *AuthHandlers) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stateCookie, err := r.Cookie(authdomain.StateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		respond.Error(w, http.StatusBadRequest, "INVALID_STATE")
		return
	}
	h.clearCookie(w, authdomain.StateCookieName)

	guestID := ""
	if c, err := r.Cookie(authdomain.GuestCookieName); err == nil {
		guestID = c.Value
	}

	session, err := h.service.CompleteLogin(ctx, r.URL.Query().Get("code"), guestID)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrMissingCode):
			respond.Error(w, http.StatusBadRequest, "MISSING_CODE")
		case errors.Is(err, authservice.ErrLoginDisabled):
			respond.Error(w, http.StatusNotFound, "LOGIN_DISABLED")
		default:
			h.logger.ErrorContext(ctx, "Login failed",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			respond.Error(w, http.StatusBadGateway, "LOGIN_FAILED")
		}
		return
	}

	h.setCookie(w, authdomain.SessionCookieName, session.Token, time.Until(session.ExpiresAt))
	h.clearCookie(w, authdomain.GuestCookieName)
	http.Redirect(w, r, h.afterLogin, http.StatusFound)
}

func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, authdomain.SessionCookieName)
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *AuthHandlers) setCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
