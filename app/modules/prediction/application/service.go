package predictionservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	matchdomain "github.com/Black-And-White-Club/prode/app/modules/match/domain"
	matchdb "github.com/Black-And-White-Club/prode/app/modules/match/infrastructure/repositories"
	predictiondomain "github.com/Black-And-White-Club/prode/app/modules/prediction/domain"
	predictiondb "github.com/Black-And-White-Club/prode/app/modules/prediction/infrastructure/repositories"
	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
	roomdb "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/repositories"
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

const serviceName = "PredictionService"

// PredictionService implements the Service interface.
type PredictionService struct {
	repo      predictiondb.Repository
	matches   matchdb.Repository
	rooms     roomdb.Repository
	publisher message.Publisher
	logger    *slog.Logger
	metrics   observability.PredictionMetrics
	telemetry observability.Operation
	db        *bun.DB
	limits    predictiondomain.Limits
	now       func() time.Time
}

// NewPredictionService creates a new PredictionService.
func NewPredictionService(
	repo predictiondb.Repository,
	matches matchdb.Repository,
	rooms roomdb.Repository,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics observability.PredictionMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	limits predictiondomain.Limits,
) *PredictionService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NewNoopMetrics()
	}
	return &PredictionService{
		repo:      repo,
		matches:   matches,
		rooms:     rooms,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		telemetry: observability.Operation{
			Service: serviceName,
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		db:     db,
		limits: limits,
		now:    time.Now,
	}
}

// requireActiveMember loads the room and checks the caller may predict in it.
func (s *PredictionService) requireActiveMember(ctx context.Context, db bun.IDB, roomID uuid.UUID, userID string) (*roomdb.Room, error) {
	room, err := s.rooms.GetRoomByID(ctx, db, roomID)
	if err != nil {
		if errors.Is(err, roomdb.ErrNotFound) {
			return nil, roomdomain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	member, err := s.rooms.GetMemberByUser(ctx, db, roomID, userID)
	if err != nil {
		if errors.Is(err, roomdb.ErrMemberNotFound) {
			return nil, roomdomain.ErrNotMember
		}
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}
	if roomdomain.MemberStatus(member.Status) != roomdomain.StatusActive {
		return nil, roomdomain.ErrNotActive
	}
	return room, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, roomdomain.ErrRoomNotFound) ||
		errors.Is(err, roomdomain.ErrNotMember) ||
		errors.Is(err, roomdomain.ErrNotActive) ||
		errors.Is(err, matchdomain.ErrInvalidStage)
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

// batchOutcome is the evaluation of a whole submission before it is saved.
type batchOutcome struct {
	result   predictiondomain.BatchResult
	outcomes []predictiondomain.Outcome
	matchIDs []uuid.UUID
}

// SubmitBatch evaluates every entry on its own: malformed or out of range
// entries, unknown matches and locked matches are dropped and counted. The
// last accepted entry for a match wins and earlier ones count as superseded.
func (s *PredictionService) SubmitBatch(ctx context.Context, roomID uuid.UUID, userID string, entries []json.RawMessage) (*predictiondomain.BatchResult, error) {
	submitTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*batchOutcome, error], error) {
		out, err := s.submitBatchLogic(ctx, db, roomID, userID, entries)
		return settle(out, err)
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "SubmitBatch", roomID.String(), func(ctx context.Context) (results.OperationResult[*batchOutcome, error], error) {
		return bundb.RunInTx(ctx, s.db, submitTx)
	})
	out, err := results.Unwrap(result, err)
	if err != nil {
		return nil, err
	}

	for _, o := range out.outcomes {
		s.metrics.RecordPredictionEntry(ctx, string(o))
	}
	if out.result.Saved > 0 {
		s.publishBatchSaved(ctx, roomID, userID, out)
	}
	return &out.result, nil
}

func (s *PredictionService) submitBatchLogic(ctx context.Context, db bun.IDB, roomID uuid.UUID, userID string, raw []json.RawMessage) (*batchOutcome, error) {
	room, err := s.requireActiveMember(ctx, db, roomID, userID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()

	out := &batchOutcome{
		result: predictiondomain.BatchResult{
			Submitted: len(raw),
			Rejected:  map[predictiondomain.Outcome]int{},
			ServerNow: now,
		},
		outcomes: make([]predictiondomain.Outcome, 0, len(raw)),
	}
	reject := func(o predictiondomain.Outcome) {
		out.outcomes = append(out.outcomes, o)
		out.result.Rejected[o]++
	}

	parsed := make([]predictiondomain.Entry, 0, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	seen := make(map[uuid.UUID]bool, len(raw))
	for _, r := range raw {
		e, err := predictiondomain.ParseEntry(r)
		if err != nil {
			reject(predictiondomain.OutcomeInvalid)
			continue
		}
		parsed = append(parsed, e)
		if !seen[e.MatchID] {
			seen[e.MatchID] = true
			ids = append(ids, e.MatchID)
		}
	}
	if len(parsed) == 0 {
		return out, nil
	}

	matchRows, err := s.matches.ListByIDs(ctx, db, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load submitted matches: %w", err)
	}
	byID := make(map[uuid.UUID]matchdomain.Match, len(matchRows))
	for i := range matchRows {
		m := matchRows[i].ToDomain()
		byID[m.ID] = m
	}

	policy := roomdomain.EditPolicy(room.EditPolicy)
	earliest, err := s.earliestKickoffs(ctx, db, policy, byID)
	if err != nil {
		return nil, err
	}

	accepted := make(map[uuid.UUID]predictiondomain.Entry, len(parsed))
	acceptedAt := make(map[uuid.UUID]int, len(parsed))
	order := make([]uuid.UUID, 0, len(parsed))
	for _, e := range parsed {
		m, ok := byID[e.MatchID]
		switch {
		case !ok:
			reject(predictiondomain.OutcomeUnknownMatch)
			continue
		case e.Validate(m.Stage, s.limits) != nil:
			reject(predictiondomain.OutcomeInvalid)
			continue
		case !predictiondomain.IsSubmissionAccepted(policy, m, earliest, now):
			reject(predictiondomain.OutcomeLocked)
			continue
		}
		if prev, dup := acceptedAt[e.MatchID]; dup {
			out.outcomes[prev] = predictiondomain.OutcomeSuperseded
			out.result.Rejected[predictiondomain.OutcomeSuperseded]++
		} else {
			order = append(order, e.MatchID)
		}
		acceptedAt[e.MatchID] = len(out.outcomes)
		out.outcomes = append(out.outcomes, predictiondomain.OutcomeAccepted)
		accepted[e.MatchID] = e
	}
	if len(order) == 0 {
		return out, nil
	}

	rows := make([]*predictiondb.Prediction, 0, len(order))
	for _, id := range order {
		e := accepted[id]
		rows = append(rows, &predictiondb.Prediction{
			RoomID:        roomID,
			UserID:        userID,
			MatchID:       e.MatchID,
			PredHomeGoals: e.HomeGoals,
			PredAwayGoals: e.AwayGoals,
			PredPenWinner: e.PenWinner,
		})
	}
	if _, err := s.repo.Upsert(ctx, db, rows); err != nil {
		return nil, err
	}

	out.result.Saved = len(rows)
	out.matchIDs = order
	return out, nil
}

// earliestKickoffs loads the full schedule of every submitted stage. Only the
// per-stage policy needs it.
func (s *PredictionService) earliestKickoffs(ctx context.Context, db bun.IDB, policy roomdomain.EditPolicy, byID map[uuid.UUID]matchdomain.Match) (map[matchdomain.Stage]time.Time, error) {
	if policy != roomdomain.EditPolicyAllowUntilRoundClose || len(byID) == 0 {
		return nil, nil
	}
	stageSet := make(map[matchdomain.Stage]bool)
	var stages []string
	for _, m := range byID {
		if !stageSet[m.Stage] {
			stageSet[m.Stage] = true
			stages = append(stages, string(m.Stage))
		}
	}
	rows, err := s.matches.ListByStages(ctx, db, stages)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage schedule: %w", err)
	}
	return predictiondomain.EarliestKickoffByStage(matchdb.ToDomainSlice(rows)), nil
}

func (s *PredictionService) publishBatchSaved(ctx context.Context, roomID uuid.UUID, userID string, out *batchOutcome) {
	if s.publisher == nil {
		return
	}
	payload := predictiondomain.BatchSavedPayload{
		RoomID:    roomID,
		UserID:    userID,
		MatchIDs:  out.matchIDs,
		Saved:     out.result.Saved,
		Submitted: out.result.Submitted,
		SavedAt:   out.result.ServerNow,
	}
	msg, err := eventbus.NewEventMessage(ctx, eventbus.PredictionBatchSavedV1, payload)
	if err == nil {
		err = s.publisher.Publish(eventbus.PredictionBatchSavedV1, msg)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish prediction batch",
			attr.ExtractCorrelationID(ctx),
			attr.RoomID(roomID),
			attr.UserID(userID),
			attr.Error(err),
		)
	}
}

// ListForStage lists the room's predictions for one stage.
func (s *PredictionService) ListForStage(ctx context.Context, roomID uuid.UUID, userID, rawStage string) ([]predictiondomain.StagePrediction, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "ListForStage", roomID.String(), func(ctx context.Context) (results.OperationResult[[]predictiondomain.StagePrediction, error], error) {
		stage := matchdomain.StageGroup
		if rawStage != "" {
			parsed, err := matchdomain.ParseStage(rawStage)
			if err != nil {
				return settle[[]predictiondomain.StagePrediction](nil, err)
			}
			stage = parsed
		}
		if _, err := s.requireActiveMember(ctx, nil, roomID, userID); err != nil {
			return settle[[]predictiondomain.StagePrediction](nil, err)
		}
		rows, err := s.repo.ListForStage(ctx, nil, roomID, string(stage))
		if err != nil {
			return settle[[]predictiondomain.StagePrediction](nil, err)
		}
		out := make([]predictiondomain.StagePrediction, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
		return settle(out, nil)
	})
	return results.Unwrap(result, err)
}

// ListAll lists every prediction of the room with author and fixture.
func (s *PredictionService) ListAll(ctx context.Context, roomID uuid.UUID, userID string) ([]predictiondomain.DetailedPrediction, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "ListAll", roomID.String(), func(ctx context.Context) (results.OperationResult[[]predictiondomain.DetailedPrediction, error], error) {
		if _, err := s.requireActiveMember(ctx, nil, roomID, userID); err != nil {
			return settle[[]predictiondomain.DetailedPrediction](nil, err)
		}
		rows, err := s.repo.ListDetailed(ctx, nil, roomID)
		if err != nil {
			return settle[[]predictiondomain.DetailedPrediction](nil, err)
		}
		out := make([]predictiondomain.DetailedPrediction, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
		return settle(out, nil)
	})
	return results.Unwrap(result, err)
}
