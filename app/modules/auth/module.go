package auth

import (
	"context"
	"log/slog"
	"sync"

	authservice "github.com/Black-And-White-Club/prode/app/modules/auth/application"
	authgoogle "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/google"
	authhandlers "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/jwt"
	userservice "github.com/Black-And-White-Club/prode/app/modules/user/application"
	"github.com/Black-And-White-Club/prode/config"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/go-chi/chi/v5"
)

// Per-IP budget shared by login and submission routes.
const (
	rateLimitPerSecond = 5
	rateLimitBurst     = 10
)

// Module represents the auth module.
type Module struct {
	service  authservice.Service
	handlers authhandlers.Handlers
	guards   *authhandlers.Guards
	logger   *slog.Logger
}

// NewModule creates the auth module and registers its HTTP routes.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	users userservice.Service,
	httpRouter chi.Router,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "Initializing auth module")

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret)

	var google authservice.IdentityProvider
	if client := authgoogle.NewClient(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL); client != nil {
		google = client
	} else {
		logger.WarnContext(ctx, "Google login disabled: no client id configured")
	}

	service := authservice.NewService(
		jwtProvider,
		google,
		users,
		authservice.Config{SessionTTL: cfg.JWT.DefaultTTL},
		logger,
		tracer,
	)

	limiter := authhandlers.NewIPRateLimiter(rateLimitPerSecond, rateLimitBurst)
	guards := authhandlers.NewGuards(service, users, cfg.IsAdminEmail, limiter, logger)
	handlers := authhandlers.NewAuthHandlers(service, logger, cfg.HTTP.SecureCookies, "/")

	if httpRouter != nil {
		httpRouter.Route("/api/auth", func(r chi.Router) {
			r.Use(guards.RateLimit)
			r.Get("/google/login", handlers.HandleGoogleLogin)
			r.Get("/google/callback", handlers.HandleGoogleCallback)
			r.Post("/logout", handlers.HandleLogout)
		})
	}

	return &Module{
		service:  service,
		handlers: handlers,
		guards:   guards,
		logger:   logger,
	}, nil
}

// Guards returns the identity middleware for the other modules.
func (m *Module) Guards() *authhandlers.Guards {
	return m.guards
}

// Run has no background work; sessions are stateless.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	m.logger.InfoContext(ctx, "Auth module ready")
}

// Close stops the auth module.
func (m *Module) Close() error {
	m.logger.Info("Stopping auth module")
	return nil
}
