package user

import (
	"context"
	"log/slog"
	"sync"

	authhandlers "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/handlers"
	userservice "github.com/Black-And-White-Club/prode/app/modules/user/application"
	userhandlers "github.com/Black-And-White-Club/prode/app/modules/user/infrastructure/handlers"
	"github.com/Black-And-White-Club/prode/config"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/go-chi/chi/v5"
)

// Module represents the user module.
type Module struct {
	service  userservice.Service
	handlers userhandlers.Handlers
	logger   *slog.Logger
}

// NewModule registers the user routes. The service is built by the caller
// because the auth guards resolve guest cookies through it.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	service userservice.Service,
	httpRouter chi.Router,
	guards *authhandlers.Guards,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "Initializing user module")

	handlers := userhandlers.NewUserHandlers(service, logger, cfg.HTTP.SecureCookies)

	if httpRouter != nil {
		httpRouter.Route("/api/users", func(r chi.Router) {
			r.Use(guards.Identify)
			r.With(guards.RateLimit).Post("/guest", handlers.HandleEnsureGuest)
			r.Get("/guest-status", handlers.HandleGuestStatus)
			r.With(guards.RequireIdentity).Get("/me", handlers.HandleMe)
		})
		httpRouter.With(guards.RequireIdentity).Patch("/api/profile/display-name", handlers.HandleUpdateDisplayName)
	}

	return &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Service returns the user service.
func (m *Module) Service() userservice.Service {
	return m.service
}

// Run has no background work.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	m.logger.InfoContext(ctx, "User module ready")
}

// Close stops the user module.
func (m *Module) Close() error {
	m.logger.Info("Stopping user module")
	return nil
}
