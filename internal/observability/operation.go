package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/results"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Operation carries what every service operation reports to.
type Operation struct {
	Service string
	Logger  *slog.Logger
	Metrics ServiceMetrics
	Tracer  trace.Tracer
}

// OperationFunc is the generic signature for service operation functions.
type OperationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// WithTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func WithTelemetry[S any, F any](
	ctx context.Context,
	o Operation,
	operationName string,
	identifier string,
	op OperationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var span trace.Span
	if o.Tracer != nil {
		ctx, span = o.Tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("service", o.Service),
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if o.Metrics != nil {
		o.Metrics.RecordOperationAttempt(ctx, operationName, o.Service)
	}

	startTime := time.Now()
	defer func() {
		if o.Metrics != nil {
			o.Metrics.RecordOperationDuration(ctx, operationName, o.Service, time.Since(startTime))
		}
	}()

	logger.DebugContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if o.Metrics != nil {
				o.Metrics.RecordOperationFailure(ctx, operationName, o.Service)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if o.Metrics != nil {
			o.Metrics.RecordOperationFailure(ctx, operationName, o.Service)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	} else {
		logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if o.Metrics != nil {
		o.Metrics.RecordOperationSuccess(ctx, operationName, o.Service)
	}

	return result, nil
}
