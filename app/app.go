package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/prode/app/modules/auth"
	authhandlers "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/prode/app/modules/match"
	"github.com/Black-And-White-Club/prode/app/modules/prediction"
	"github.com/Black-And-White-Club/prode/app/modules/room"
	"github.com/Black-And-White-Club/prode/app/modules/standings"
	"github.com/Black-And-White-Club/prode/app/modules/user"
	userservice "github.com/Black-And-White-Club/prode/app/modules/user/application"
	userdb "github.com/Black-And-White-Club/prode/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/prode/config"
	"github.com/Black-And-White-Club/prode/internal/db/bundb"
	"github.com/Black-And-White-Club/prode/internal/eventbus"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/respond"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
)

// Modules holds every module of the service.
type Modules struct {
	Auth       *auth.Module
	User       *user.Module
	Match      *match.Module
	Room       *room.Module
	Prediction *prediction.Module
	Standings  *standings.Module
}

// App wires configuration, infrastructure and modules together.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	Pool          *pgxpool.Pool
	EventBus      *eventbus.Bus
	Router        *message.Router
	HTTPRouter    chi.Router
	Modules       *Modules
}

// Initialize opens the infrastructure and builds the modules in dependency
// order: users, auth, then the modules guarded by auth.
func (app *App) Initialize(ctx context.Context, cfg *config.Config, obs observability.Observability) error {
	app.Config = cfg
	app.Observability = obs
	logger := obs.Provider.Logger

	db, err := bundb.Open(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		return err
	}
	app.DB = db

	pool, err := bundb.OpenPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	app.Pool = pool

	if cfg.NATS.URL != "" {
		bus, err := eventbus.NewNATS(eventbus.Config{URL: cfg.NATS.URL, NKeySeed: cfg.NATS.NKeySeed}, logger)
		if err != nil {
			return fmt.Errorf("failed to create event bus: %w", err)
		}
		app.EventBus = bus
	} else {
		logger.WarnContext(ctx, "NATS_URL not set, using the in-memory event bus")
		app.EventBus = eventbus.NewInMemory(logger)
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create message router: %w", err)
	}
	app.Router = router

	app.HTTPRouter = NewHTTPRouter(cfg, obs)

	if err := app.initializeModules(ctx); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Application initialized")
	return nil
}

func (app *App) initializeModules(ctx context.Context) error {
	obs := app.Observability
	cfg := app.Config
	r := app.HTTPRouter

	users := userservice.NewUserService(userdb.NewRepository(app.DB), obs.Provider.Logger, obs.Registry.Metrics, obs.Registry.Tracer, app.DB)

	authModule, err := auth.NewModule(ctx, cfg, obs, users, r)
	if err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}
	guards := authModule.Guards()

	userModule, err := user.NewModule(ctx, cfg, obs, users, r, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize user module: %w", err)
	}

	matchModule, err := match.NewModule(ctx, obs, app.DB, app.EventBus, r, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize match module: %w", err)
	}

	roomModule, err := room.NewModule(ctx, obs, app.DB, app.EventBus, r, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize room module: %w", err)
	}

	predictionModule, err := prediction.NewModule(ctx, cfg, obs, app.DB, matchModule.Repository(), roomModule.Repository(), app.EventBus, r, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize prediction module: %w", err)
	}

	standingsModule, err := standings.NewModule(ctx, obs, standings.Deps{
		Rooms:       roomModule.Repository(),
		Matches:     matchModule.Repository(),
		Predictions: predictionModule.Repository(),
		Publisher:   app.EventBus,
		Subscriber:  app.EventBus,
		Router:      app.Router,
		Pool:        app.Pool,
	}, r, guards)
	if err != nil {
		return fmt.Errorf("failed to initialize standings module: %w", err)
	}

	app.Modules = &Modules{
		Auth:       authModule,
		User:       userModule,
		Match:      matchModule,
		Room:       roomModule,
		Prediction: predictionModule,
		Standings:  standingsModule,
	}
	return nil
}

// NewHTTPRouter builds the chi router with the shared middleware and the
// operational endpoints. Modules add their routes to it.
func NewHTTPRouter(cfg *config.Config, obs observability.Observability) chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		correlationID,
		middleware.Recoverer,
		authhandlers.CORSMiddleware(cfg.HTTP.AllowedOrigins),
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Observability.MetricsAddress == "" {
		r.Handle("/metrics", obs.MetricsHandler())
	}
	return r
}

// correlationID reuses the chi request id as the correlation id of every log
// line and event emitted while serving the request.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(attr.WithCorrelationID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
