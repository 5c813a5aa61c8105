package prediction

import (
	"context"
	"log/slog"
	"sync"

	authhandlers "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/handlers"
	matchdb "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/repositories"
	predictionservice "github.com/Black-And-White-Club/prode/app/modules/prediction/application"
	predictiondomain "github.com/Black-And-White-Club/prode/app/modules/prediction/domain"
	predictionhandlers "github.com/Black-And-White-Club/prode/app/modules/prediction/infrastructure/handlers"
	predictiondb "github.com/Black-And-White-Club/prode/app/modules/prediction/infrastructure/repositories"
	roomdb "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/repositories"
	"github.com/Black-And-White-Club/prode/config"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the prediction module.
type Module struct {
	repo     predictiondb.Repository
	service  predictionservice.Service
	handlers predictionhandlers.Handlers
	logger   *slog.Logger
}

// NewModule creates the prediction module. It reads fixtures and memberships
// through the match and room repositories.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	matches matchdb.Repository,
	rooms roomdb.Repository,
	publisher message.Publisher,
	httpRouter chi.Router,
	guards *authhandlers.Guards,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "Initializing prediction module")

	limits := predictiondomain.DefaultLimits
	if cfg != nil {
		limits = predictiondomain.Limits{
			MaxGoals:        cfg.Prediction.MaxGoals,
			MaxPenWinnerLen: cfg.Prediction.MaxPenWinnerLen,
		}
	}

	repo := predictiondb.NewRepository(db)
	service := predictionservice.NewPredictionService(repo, matches, rooms, publisher, logger, obs.Registry.Metrics, obs.Registry.Tracer, db, limits)
	handlers := predictionhandlers.NewPredictionHandlers(service, logger)

	if httpRouter != nil {
		httpRouter.Group(func(r chi.Router) {
			r.Use(guards.RequireIdentity)
			r.With(guards.RateLimit).Post("/api/rooms/{roomID}/predictions", handlers.HandleSubmitPredictions)
			r.Get("/api/rooms/{roomID}/predictions", handlers.HandleListPredictions)
			r.Get("/api/rooms/{roomID}/predictions/all", handlers.HandleListAllPredictions)
		})
	}

	return &Module{
		repo:     repo,
		service:  service,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// Repository exposes prediction persistence to the standings module.
func (m *Module) Repository() predictiondb.Repository {
	return m.repo
}

func (m *Module) Service() predictionservice.Service {
	return m.service
}

// Run has no background work.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	m.logger.InfoContext(ctx, "Prediction module ready")
}

// Close stops the prediction module.
func (m *Module) Close() error {
	m.logger.Info("Stopping prediction module")
	return nil
}
