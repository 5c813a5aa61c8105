package standings

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	authhandlers "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/handlers"
	matchdb "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/repositories"
	predictiondb "github.com/Black-And-White-Club/prode/app/modules/prediction/infrastructure/repositories"
	roomdb "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/repositories"
	standingsservice "github.com/Black-And-White-Club/prode/app/modules/standings/application"
	standingshandlers "github.com/Black-And-White-Club/prode/app/modules/standings/infrastructure/handlers"
	standingsqueue "github.com/Black-And-White-Club/prode/app/modules/standings/infrastructure/queue"
	standingsrouter "github.com/Black-And-White-Club/prode/app/modules/standings/infrastructure/router"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps are the collaborators of the standings module.
type Deps struct {
	Rooms       roomdb.Repository
	Matches     matchdb.Repository
	Predictions predictiondb.Repository
	Publisher   message.Publisher
	Subscriber  message.Subscriber
	// Router receives the result subscription. Nil skips it.
	Router *message.Router
	// Pool backs the River queue. Nil refreshes inline in the subscriber.
	Pool *pgxpool.Pool
}

// Module represents the standings module.
type Module struct {
	service    standingsservice.Service
	handlers   standingshandlers.Handlers
	router     *standingsrouter.StandingsRouter
	queue      *standingsqueue.Service
	logger     *slog.Logger
	done       context.Context
	cancelFunc context.CancelFunc
}

// NewModule creates the standings module, registers its routes and binds the
// result subscription to the refresh queue.
func NewModule(
	ctx context.Context,
	obs observability.Observability,
	deps Deps,
	httpRouter chi.Router,
	guards *authhandlers.Guards,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "Initializing standings module")

	service := standingsservice.NewStandingsService(deps.Rooms, deps.Matches, deps.Predictions, deps.Publisher, logger, obs.Registry.Metrics, obs.Registry.Tracer)
	handlers := standingshandlers.NewStandingsHandlers(service, logger)

	m := &Module{
		service:  service,
		handlers: handlers,
		logger:   logger,
	}
	m.done, m.cancelFunc = context.WithCancel(context.Background())

	var enqueuer standingsrouter.Enqueuer = standingsqueue.Inline{Refresher: service}
	if deps.Pool != nil {
		queue, err := standingsqueue.NewService(deps.Pool, service, logger, obs.Registry.Metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create standings queue: %w", err)
		}
		m.queue = queue
		enqueuer = queue
	}

	if deps.Router != nil {
		m.router = standingsrouter.NewStandingsRouter(logger, deps.Router, deps.Subscriber, obs.Registry.Prometheus)
		if err := m.router.Configure(ctx, enqueuer); err != nil {
			return nil, fmt.Errorf("failed to configure standings router: %w", err)
		}
	}

	if httpRouter != nil {
		httpRouter.Group(func(r chi.Router) {
			r.Use(guards.RequireIdentity)
			r.Get("/api/rooms/{roomID}/standings", handlers.HandleGetStandings)
			r.Get("/api/rooms/{roomID}/standings/chart.png", handlers.HandleStandingsChart)
		})
	}

	return m, nil
}

func (m *Module) Service() standingsservice.Service {
	return m.service
}

// Run starts the refresh queue and blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(m.done, cancel)
	defer stop()

	if m.queue != nil {
		if err := m.queue.Start(ctx); err != nil {
			m.logger.ErrorContext(ctx, "Standings queue failed to start", attr.Error(err))
			return
		}
	}
	m.logger.InfoContext(ctx, "Standings module running")
	<-ctx.Done()
}

// Close stops the queue. The shared message router is closed by the app.
func (m *Module) Close() error {
	m.logger.Info("Stopping standings module")
	m.cancelFunc()
	if m.queue != nil {
		if err := m.queue.Stop(context.Background()); err != nil {
			return err
		}
	}
	return nil
}
