package standingsservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	matchdb "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/repositories"
	predictiondb "github.com/Black-And-White-Club/prode/app/modules/prediction/infrastructure/repositories"
	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
	roomdb "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/repositories"
	standingsdomain "github.com/Black-And-White-Club/prode/app/modules/standings/domain"
	"github.com/Black-And-White-Club/prode/internal/eventbus"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/results"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "StandingsService"

// StandingsService implements the Service interface.
type StandingsService struct {
	rooms       roomdb.Repository
	matches     matchdb.Repository
	predictions predictiondb.Repository
	publisher   message.Publisher
	logger      *slog.Logger
	metrics     observability.StandingsMetrics
	telemetry   observability.Operation
	now         func() time.Time
}

// NewStandingsService creates a new StandingsService.
func NewStandingsService(
	rooms roomdb.Repository,
	matches matchdb.Repository,
	predictions predictiondb.Repository,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics observability.StandingsMetrics,
	tracer trace.Tracer,
) *StandingsService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoopMetrics()
	}
	return &StandingsService{
		rooms:       rooms,
		matches:     matches,
		predictions: predictions,
		publisher:   publisher,
		logger:      logger,
		metrics:     metrics,
		telemetry: observability.Operation{
			Service: serviceName,
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		now: time.Now,
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, roomdomain.ErrNotMember) || errors.Is(err, roomdomain.ErrNotActive)
}

func settle[T any](v T, err error) (results.OperationResult[T, error], error) {
	if err == nil {
		return results.SuccessResult[T, error](v), nil
	}
	if isDomainError(err) {
		return results.FailureResult[T, error](err), nil
	}
	return results.OperationResult[T, error]{}, err
}

func (s *StandingsService) ComputeStandings(ctx context.Context, roomID uuid.UUID) ([]standingsdomain.Row, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "ComputeStandings", roomID.String(), func(ctx context.Context) (results.OperationResult[[]standingsdomain.Row, error], error) {
		rows, err := s.compute(ctx, roomID)
		return settle(rows, err)
	})
	return results.Unwrap(result, err)
}

func (s *StandingsService) ViewStandings(ctx context.Context, roomID uuid.UUID, userID string) ([]standingsdomain.Row, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "ViewStandings", roomID.String(), func(ctx context.Context) (results.OperationResult[[]standingsdomain.Row, error], error) {
		if err := s.requireActiveMember(ctx, roomID, userID); err != nil {
			return settle[[]standingsdomain.Row](nil, err)
		}
		rows, err := s.compute(ctx, roomID)
		return settle(rows, err)
	})
	return results.Unwrap(result, err)
}

func (s *StandingsService) StandingsChart(ctx context.Context, roomID uuid.UUID, userID string) ([]byte, error) {
	rows, err := s.ViewStandings(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	return RenderStandingsChart(rows)
}

// compute loads the room's active members, the whole schedule and the
// room's predictions, then folds them.
func (s *StandingsService) compute(ctx context.Context, roomID uuid.UUID) ([]standingsdomain.Row, error) {
	if _, err := s.rooms.GetRoomByID(ctx, nil, roomID); err != nil {
		if errors.Is(err, roomdb.ErrNotFound) {
			return []standingsdomain.Row{}, nil
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}

	memberRows, err := s.rooms.ListMembers(ctx, nil, roomID, string(roomdomain.StatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	matchRows, err := s.matches.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	predRows, err := s.predictions.ListByRoom(ctx, nil, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}

	members := make([]standingsdomain.Member, 0, len(memberRows))
	for _, m := range roomdb.MembersToDomain(memberRows) {
		members = append(members, standingsdomain.Member{
			UserID:           m.UserID,
			DisplayName:      m.DisplayName,
			ContributionText: m.ContributionText,
		})
	}
	preds := make([]standingsdomain.Prediction, 0, len(predRows))
	for _, p := range predRows {
		preds = append(preds, standingsdomain.Prediction{
			UserID:    p.UserID,
			MatchID:   p.MatchID,
			HomeGoals: p.PredHomeGoals,
			AwayGoals: p.PredAwayGoals,
			PenWinner: p.PredPenWinner,
		})
	}

	rows := standingsdomain.Compute(members, matchdb.ToDomainSlice(matchRows), preds)
	s.metrics.RecordStandingsComputed(ctx, len(members), len(matchRows))
	return rows, nil
}

func (s *StandingsService) requireActiveMember(ctx context.Context, roomID uuid.UUID, userID string) error {
	member, err := s.rooms.GetMemberByUser(ctx, nil, roomID, userID)
	if err != nil {
		if errors.Is(err, roomdb.ErrMemberNotFound) {
			return roomdomain.ErrNotMember
		}
		return fmt.Errorf("failed to load membership: %w", err)
	}
	if roomdomain.MemberStatus(member.Status) != roomdomain.StatusActive {
		return roomdomain.ErrNotActive
	}
	return nil
}

func (s *StandingsService) RefreshForMatch(ctx context.Context, matchID uuid.UUID) (int, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "RefreshForMatch", matchID.String(), func(ctx context.Context) (results.OperationResult[int, error], error) {
		roomIDs, err := s.predictions.ListRoomIDsForMatch(ctx, nil, matchID)
		if err != nil {
			return settle(0, fmt.Errorf("failed to list rooms for match: %w", err))
		}

		refreshed := 0
		for _, roomID := range roomIDs {
			rows, err := s.compute(ctx, roomID)
			if err != nil {
				return settle(refreshed, err)
			}
			s.publishRefreshed(ctx, roomID, matchID, rows)
			refreshed++
		}
		return settle(refreshed, nil)
	})
	return results.Unwrap(result, err)
}

func (s *StandingsService) publishRefreshed(ctx context.Context, roomID, matchID uuid.UUID, rows []standingsdomain.Row) {
	if s.publisher == nil {
		return
	}
	payload := standingsdomain.RefreshedPayload{
		RoomID:      roomID,
		MatchID:     matchID,
		Standings:   rows,
		RefreshedAt: s.now().UTC(),
	}
	msg, err := eventbus.NewEventMessage(ctx, eventbus.StandingsRefreshedV1, payload)
	if err == nil {
		err = eventbus.PublishWithRoomScope(s.publisher, eventbus.StandingsRefreshedV1, roomID, msg)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish standings",
			attr.ExtractCorrelationID(ctx),
			attr.RoomID(roomID),
			attr.MatchID(matchID),
			attr.Error(err),
		)
	}
}
