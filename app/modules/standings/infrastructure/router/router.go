package standingsrouter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	"github.com/Black-And-White-Club/prode/internal/eventbus"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const resultRecordedHandler = "standings." + eventbus.MatchResultRecordedV1

// Enqueuer schedules a standings refresh for a match.
type Enqueuer interface {
	EnqueueRefresh(ctx context.Context, matchID uuid.UUID) error
}

// StandingsRouter binds the standings module to the event bus.
type StandingsRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	metricsBuilder *metrics.PrometheusMetricsBuilder
}

// NewStandingsRouter creates the router wrapper. A nil registry disables the
// watermill router metrics.
func NewStandingsRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	prometheusRegistry *prometheus.Registry,
) *StandingsRouter {
	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "prode", "standings")
		metricsBuilder = &builder
	}
	return &StandingsRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		metricsBuilder: metricsBuilder,
	}
}

// Configure sets up the middlewares and registers the result handler.
func (r *StandingsRouter) Configure(ctx context.Context, enqueuer Enqueuer) error {
	if r.Router == nil || r.subscriber == nil {
		return fmt.Errorf("standings router requires a message router and a subscriber")
	}
	if r.metricsBuilder != nil {
		r.logger.InfoContext(ctx, "Adding Prometheus router metrics middleware for Standings")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(r.logger),
		}.Middleware,
		middleware.Recoverer,
	)

	r.Router.AddNoPublisherHandler(
		resultRecordedHandler,
		eventbus.MatchResultRecordedV1,
		r.subscriber,
		HandleResultRecorded(enqueuer, r.logger),
	)
	r.logger.InfoContext(ctx, "Registered Standings event handlers", attr.String("topic", eventbus.MatchResultRecordedV1))
	return nil
}

// HandleResultRecorded turns a recorded result into a refresh job. Payloads
// that cannot be decoded are dropped; enqueue failures are retried.
func HandleResultRecorded(enqueuer Enqueuer, logger *slog.Logger) message.NoPublishHandlerFunc {
	return func(msg *message.Message) error {
		ctx := eventbus.ContextFromMessage(msg)
		payload, err := eventbus.DecodeEvent[matchdomain.ResultRecordedPayload](msg)
		if err != nil || payload.MatchID == uuid.Nil {
			logger.WarnContext(ctx, "Dropping malformed result event",
				attr.ExtractCorrelationID(ctx),
				attr.String("message_id", msg.UUID),
			)
			return nil
		}
		if err := enqueuer.EnqueueRefresh(ctx, payload.MatchID); err != nil {
			return fmt.Errorf("enqueue refresh: %w", err)
		}
		return nil
	}
}

// Close closes the underlying message router.
func (r *StandingsRouter) Close() error {
	if r.Router == nil {
		return nil
	}
	return r.Router.Close()
}
