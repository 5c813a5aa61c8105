package standingsqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

const (
	serviceName  = "river"
	uniquePeriod = 10 * time.Second
)

// Service schedules standings refresh jobs on River.
type Service struct {
	client  *river.Client[pgx.Tx]
	logger  *slog.Logger
	metrics observability.ServiceMetrics
}

// NewService creates the River client with the refresh worker registered.
// The pool is owned by the caller.
func NewService(pool *pgxpool.Pool, refresher Refresher, logger *slog.Logger, metrics observability.ServiceMetrics) (*Service, error) {
	if metrics == nil {
		metrics = observability.NewNoopMetrics()
	}
	logger = logger.With(attr.String("component", "river_queue"))

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRefreshWorker(refresher, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Logger: logger,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			QueueName:          {MaxWorkers: 4},
		},
		Workers: workers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	return &Service{client: client, logger: logger, metrics: metrics}, nil
}

// Start starts the River workers.
func (s *Service) Start(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Starting standings queue")
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop waits for running jobs to finish.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Stopping standings queue")
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	return nil
}

// EnqueueRefresh schedules a refresh for every room predicting the match.
func (s *Service) EnqueueRefresh(ctx context.Context, matchID uuid.UUID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "enqueue_standings_refresh", serviceName)

	res, err := s.client.Insert(ctx, StandingsRefreshArgs{MatchID: matchID}, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to enqueue standings refresh", attr.MatchID(matchID), attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "enqueue_standings_refresh", serviceName)
		return fmt.Errorf("failed to enqueue standings refresh: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_standings_refresh", serviceName)
	s.metrics.RecordOperationDuration(ctx, "enqueue_standings_refresh", serviceName, time.Since(start))
	s.logger.InfoContext(ctx, "Standings refresh enqueued",
		attr.ExtractCorrelationID(ctx),
		attr.MatchID(matchID),
		attr.Bool("duplicate", res.UniqueSkippedAsDuplicate),
	)
	return nil
}

// Inline runs refreshes synchronously. It stands in for the queue when no
// Postgres pool is available for River.
type Inline struct {
	Refresher Refresher
}

func (i Inline) EnqueueRefresh(ctx context.Context, matchID uuid.UUID) error {
	_, err := i.Refresher.RefreshForMatch(ctx, matchID)
	return err
}
