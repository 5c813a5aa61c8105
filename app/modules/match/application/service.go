package matchservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/repositories"
	"github.com/Black-And-White-Club/prode/internal/db/bundb"
	"github.com/Black-And-White-Club/prode/internal/eventbus"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "MatchService"

// MatchService implements the Service interface.
type MatchService struct {
	repo      matchdb.Repository
	publisher message.Publisher
	logger    *slog.Logger
	telemetry observability.Operation
	db        *bun.DB
	now       func() time.Time
}

// NewMatchService creates a new MatchService.
func NewMatchService(
	repo matchdb.Repository,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		telemetry: observability.Operation{
			Service: serviceName,
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		db:  db,
		now: time.Now,
	}
}

// ListMatches returns the whole schedule ordered by kickoff.
func (s *MatchService) ListMatches(ctx context.Context) ([]matchdomain.Match, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "ListMatches", "all", func(ctx context.Context) (results.OperationResult[[]matchdomain.Match, error], error) {
		rows, err := s.repo.ListAll(ctx, nil)
		if err != nil {
			return results.OperationResult[[]matchdomain.Match, error]{}, fmt.Errorf("failed to list matches: %w", err)
		}
		return results.SuccessResult[[]matchdomain.Match, error](matchdb.ToDomainSlice(rows)), nil
	})
	return results.Unwrap(result, err)
}

// GetMatch retrieves one match.
func (s *MatchService) GetMatch(ctx context.Context, id uuid.UUID) (*matchdomain.Match, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "GetMatch", id.String(), func(ctx context.Context) (results.OperationResult[*matchdomain.Match, error], error) {
		return s.getMatchLogic(ctx, nil, id)
	})
	return results.Unwrap(result, err)
}

func (s *MatchService) getMatchLogic(ctx context.Context, db bun.IDB, id uuid.UUID) (results.OperationResult[*matchdomain.Match, error], error) {
	row, err := s.repo.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return results.FailureResult[*matchdomain.Match, error](matchdomain.ErrMatchNotFound), nil
		}
		return results.OperationResult[*matchdomain.Match, error]{}, fmt.Errorf("failed to get match: %w", err)
	}
	m := row.ToDomain()
	return results.SuccessResult[*matchdomain.Match, error](&m), nil
}

// RecordResult applies an administrative patch. When the match ends up
// resolved a match.result.recorded event is published after commit.
func (s *MatchService) RecordResult(ctx context.Context, id uuid.UUID, patch matchdomain.ResultPatch) (*matchdomain.Match, error) {
	recordTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*matchdomain.Match, error], error) {
		return s.recordResultLogic(ctx, db, id, patch)
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "RecordResult", id.String(), func(ctx context.Context) (results.OperationResult[*matchdomain.Match, error], error) {
		return bundb.RunInTx(ctx, s.db, recordTx)
	})
	updated, err := results.Unwrap(result, err)
	if err != nil {
		return nil, err
	}

	if updated.IsResolved() {
		s.publishResultRecorded(ctx, *updated)
	}
	return updated, nil
}

func (s *MatchService) recordResultLogic(ctx context.Context, db bun.IDB, id uuid.UUID, patch matchdomain.ResultPatch) (results.OperationResult[*matchdomain.Match, error], error) {
	row, err := s.repo.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return results.FailureResult[*matchdomain.Match, error](matchdomain.ErrMatchNotFound), nil
		}
		return results.OperationResult[*matchdomain.Match, error]{}, fmt.Errorf("failed to load match: %w", err)
	}

	patched, err := patch.Apply(row.ToDomain())
	if err != nil {
		return results.FailureResult[*matchdomain.Match, error](err), nil
	}

	updatedRow := matchdb.FromDomain(patched)
	updatedRow.CreatedAt = row.CreatedAt
	if err := s.repo.UpdateResult(ctx, db, updatedRow); err != nil {
		if errors.Is(err, matchdb.ErrNotFound) {
			return results.FailureResult[*matchdomain.Match, error](matchdomain.ErrMatchNotFound), nil
		}
		return results.OperationResult[*matchdomain.Match, error]{}, fmt.Errorf("failed to save match result: %w", err)
	}

	return results.SuccessResult[*matchdomain.Match, error](&patched), nil
}

// publishResultRecorded is best effort: the result is already committed and
// standings are always recomputed on read.
func (s *MatchService) publishResultRecorded(ctx context.Context, m matchdomain.Match) {
	if s.publisher == nil {
		return
	}
	payload := matchdomain.ResultRecordedPayload{
		MatchID:            m.ID,
		Stage:              m.Stage,
		HomeTeam:           m.HomeTeam,
		AwayTeam:           m.AwayTeam,
		HomeGoals:          *m.HomeGoals,
		AwayGoals:          *m.AwayGoals,
		DecidedByPenalties: m.DecidedByPenalties,
		PenWinner:          m.PenWinner,
		RecordedAt:         s.now().UTC(),
	}
	msg, err := eventbus.NewEventMessage(ctx, eventbus.MatchResultRecordedV1, payload)
	if err == nil {
		err = s.publisher.Publish(eventbus.MatchResultRecordedV1, msg)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish match result",
			attr.ExtractCorrelationID(ctx),
			attr.MatchID(m.ID),
			attr.Error(err),
		)
	}
}

// ImportFixtures upserts fixtures by external reference; fixtures without one
// are inserted as new matches.
func (s *MatchService) ImportFixtures(ctx context.Context, fixtures []matchdomain.Match) (int, error) {
	importTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[int, error], error) {
		var keyed, plain []*matchdb.Match
		for _, f := range fixtures {
			if !f.Stage.Valid() {
				return results.FailureResult[int, error](fmt.Errorf("%w: %q", matchdomain.ErrInvalidStage, f.Stage)), nil
			}
			row := matchdb.FromDomain(f)
			if row.FifaID != nil {
				keyed = append(keyed, row)
			} else {
				plain = append(plain, row)
			}
		}
		n, err := s.repo.UpsertByFifaID(ctx, db, keyed)
		if err != nil {
			return results.OperationResult[int, error]{}, err
		}
		if err := s.repo.Insert(ctx, db, plain); err != nil {
			return results.OperationResult[int, error]{}, err
		}
		return results.SuccessResult[int, error](n + len(plain)), nil
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "ImportFixtures", fmt.Sprintf("%d fixtures", len(fixtures)), func(ctx context.Context) (results.OperationResult[int, error], error) {
		return bundb.RunInTx(ctx, s.db, importTx)
	})
	return results.Unwrap(result, err)
}
