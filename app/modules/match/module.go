package match

import (
	"context"
	"log/slog"
	"sync"

	authhandlers "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/handlers"
	matchservice "github.com/Black-And-White-Club/prode/app/modules/match/application"
	matchhandlers "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/handlers"
	matchdb "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the match module.
type Module struct {
	repo     matchdb.Repository
	service  matchservice.Service
	handlers matchhandlers.Handlers
	logger   *slog.Logger
}

// NewModule creates the match module and registers the public schedule and
// admin result routes.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	publisher message.Publisher,
	httpRouter chi.Router,
	guards *authhandlers.Guards,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "Initializing match module")

	repo := matchdb.NewRepository(db)
	service := matchservice.NewMatchService(repo, publisher, logger, obs.Registry.Metrics, obs.Registry.Tracer, db)
	handlers := matchhandlers.NewMatchHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Get("/api/matches", handlers.HandleListMatches)
		httpRouter.Route("/api/admin/matches", func(r chi.Router) {
			r.Use(guards.RequireAdmin)
			r.Get("/", handlers.HandleAdminListMatches)
			r.Get("/{matchID}", handlers.HandleAdminGetMatch)
			r.Patch("/{matchID}", handlers.HandleAdminRecordResult)
		})
	}

	return &Module{
		repo:     repo,
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Repository exposes match persistence to the modules that read the schedule.
func (m *Module) Repository() matchdb.Repository {
	return m.repo
}

// Service returns the match service.
func (m *Module) Service() matchservice.Service {
	return m.service
}

// Run has no background work.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	m.logger.InfoContext(ctx, "Match module ready")
}

// Close stops the match module.
func (m *Module) Close() error {
	m.logger.Info("Stopping match module")
	return nil
}
