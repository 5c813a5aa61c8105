package roomservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	roomdomain "github.com/Black-And-White-Club/prode/app/modules/room/domain"
	roomdb "github.com/Black-And-White-Club/prode/app/modules/room/infrastructure/repositories"
	standingsdomain "github.com/Black-And-White-Club/prode/app/modules/standings/domain"
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

const (
	serviceName = "RoomService"

	// maxCodeAttempts bounds join code generation on collisions.
	maxCodeAttempts = 5
)

// RoomService implements the Service interface.
type RoomService struct {
	repo      roomdb.Repository
	publisher message.Publisher
	logger    *slog.Logger
	telemetry observability.Operation
	db        *bun.DB
	now       func() time.Time
	newCode   func() string
}

// NewRoomService creates a new RoomService.
func NewRoomService(
	repo roomdb.Repository,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RoomService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoomService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		telemetry: observability.Operation{
			Service: serviceName,
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		db:      db,
		now:     time.Now,
		newCode: roomdomain.NewCode,
	}
}

// settle turns a domain sentinel into a failure result and anything else into
// an infrastructure error.
func settle[T any](v T, err error) (results.OperationResult[T, error], error) {
	if err == nil {
		return results.SuccessResult[T, error](v), nil
	}
	if isDomainError(err) {
		return results.FailureResult[T, error](err), nil
	}
	return results.OperationResult[T, error]{}, err
}

func isDomainError(err error) bool {
	return roomdomain.IsPermissionError(err) ||
		roomdomain.IsValidationError(err) ||
		errors.Is(err, roomdomain.ErrRoomNotFound) ||
		errors.Is(err, roomdomain.ErrMemberNotFound) ||
		errors.Is(err, roomdomain.ErrNotMember) ||
		errors.Is(err, roomdomain.ErrCodeGenerationFailed)
}

func (s *RoomService) loadRoom(ctx context.Context, db bun.IDB, roomID uuid.UUID) (*roomdb.Room, error) {
	room, err := s.repo.GetRoomByID(ctx, db, roomID)
	if err != nil {
		if errors.Is(err, roomdb.ErrNotFound) {
			return nil, roomdomain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	return room, nil
}

// loadMembership returns the user's membership, or ErrNotMember.
func (s *RoomService) loadMembership(ctx context.Context, db bun.IDB, roomID uuid.UUID, userID string) (roomdomain.Member, error) {
	row, err := s.repo.GetMemberByUser(ctx, db, roomID, userID)
	if err != nil {
		if errors.Is(err, roomdb.ErrMemberNotFound) {
			return roomdomain.Member{}, roomdomain.ErrNotMember
		}
		return roomdomain.Member{}, fmt.Errorf("failed to load membership: %w", err)
	}
	return row.ToDomain(), nil
}

// loadActor resolves the room and the acting member. Callers without a
// membership get noMember instead of ErrNotMember.
func (s *RoomService) loadActor(ctx context.Context, db bun.IDB, roomID uuid.UUID, actorID string, noMember error) (roomdomain.Member, error) {
	if _, err := s.loadRoom(ctx, db, roomID); err != nil {
		return roomdomain.Member{}, err
	}
	actor, err := s.loadMembership(ctx, db, roomID, actorID)
	if errors.Is(err, roomdomain.ErrNotMember) {
		return roomdomain.Member{}, noMember
	}
	return actor, err
}

func (s *RoomService) loadTarget(ctx context.Context, db bun.IDB, roomID, memberID uuid.UUID) (roomdomain.Member, error) {
	row, err := s.repo.GetMember(ctx, db, roomID, memberID)
	if err != nil {
		if errors.Is(err, roomdb.ErrMemberNotFound) {
			return roomdomain.Member{}, roomdomain.ErrMemberNotFound
		}
		return roomdomain.Member{}, fmt.Errorf("failed to load member: %w", err)
	}
	return row.ToDomain(), nil
}

// CreateRoom creates a room with the caller as its active owner.
func (s *RoomService) CreateRoom(ctx context.Context, userID string, req CreateRoomRequest) (*roomdomain.RoomMembership, error) {
	createTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*roomdomain.RoomMembership, error], error) {
		created, err := s.createRoomLogic(ctx, db, userID, req)
		return settle(created, err)
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "CreateRoom", userID, func(ctx context.Context) (results.OperationResult[*roomdomain.RoomMembership, error], error) {
		return bundb.RunInTx(ctx, s.db, createTx)
	})
	created, err := results.Unwrap(result, err)
	if err != nil {
		return nil, err
	}

	s.publishRoomCreated(ctx, userID, created.Room)
	return created, nil
}

func (s *RoomService) createRoomLogic(ctx context.Context, db bun.IDB, userID string, req CreateRoomRequest) (*roomdomain.RoomMembership, error) {
	name, err := roomdomain.NormalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	policy, err := roomdomain.ParseEditPolicy(req.EditPolicy)
	if err != nil {
		return nil, err
	}
	access, err := roomdomain.ParseAccessType(req.AccessType)
	if err != nil {
		return nil, err
	}
	contribution, err := roomdomain.NormalizeContribution(req.ContributionText)
	if err != nil {
		return nil, err
	}

	code, err := s.freeCode(ctx, db)
	if err != nil {
		return nil, err
	}

	room := &roomdb.Room{
		Code:       code,
		Name:       name,
		EditPolicy: string(policy),
		AccessType: string(access),
	}
	if err := s.repo.CreateRoom(ctx, db, room); err != nil {
		return nil, err
	}

	owner := &roomdb.Member{
		RoomID:           room.ID,
		UserID:           userID,
		Role:             string(roomdomain.RoleOwner),
		Status:           string(roomdomain.StatusActive),
		ContributionText: contribution,
	}
	if err := s.repo.CreateMember(ctx, db, owner); err != nil {
		return nil, err
	}

	return &roomdomain.RoomMembership{
		Room:        room.ToDomain(),
		Role:        roomdomain.RoleOwner,
		Status:      roomdomain.StatusActive,
		MemberCount: 1,
	}, nil
}

func (s *RoomService) freeCode(ctx context.Context, db bun.IDB) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := s.newCode()
		_, err := s.repo.GetRoomByCode(ctx, db, code)
		if errors.Is(err, roomdb.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check room code: %w", err)
		}
	}
	return "", roomdomain.ErrCodeGenerationFailed
}

func (s *RoomService) publishRoomCreated(ctx context.Context, ownerID string, room roomdomain.Room) {
	if s.publisher == nil {
		return
	}
	payload := roomdomain.RoomCreatedPayload{
		RoomID:     room.ID,
		Code:       room.Code,
		Name:       room.Name,
		OwnerID:    ownerID,
		EditPolicy: room.EditPolicy,
		AccessType: room.AccessType,
		CreatedAt:  room.CreatedAt,
	}
	msg, err := eventbus.NewEventMessage(ctx, eventbus.RoomCreatedV1, payload)
	if err == nil {
		err = s.publisher.Publish(eventbus.RoomCreatedV1, msg)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish room created",
			attr.ExtractCorrelationID(ctx),
			attr.RoomID(room.ID),
			attr.Error(err),
		)
	}
}

// JoinRoom adds the caller to the room with the given code. An existing
// membership is returned unchanged unless it was rejected.
func (s *RoomService) JoinRoom(ctx context.Context, userID, code, contributionText string) (*JoinResult, error) {
	joinTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*JoinResult, error], error) {
		joined, err := s.joinRoomLogic(ctx, db, userID, code, contributionText)
		return settle(joined, err)
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "JoinRoom", userID, func(ctx context.Context) (results.OperationResult[*JoinResult, error], error) {
		return bundb.RunInTx(ctx, s.db, joinTx)
	})
	return results.Unwrap(result, err)
}

func (s *RoomService) joinRoomLogic(ctx context.Context, db bun.IDB, userID, rawCode, rawContribution string) (*JoinResult, error) {
	code, err := roomdomain.NormalizeCode(rawCode)
	if err != nil {
		return nil, err
	}
	contribution, err := roomdomain.NormalizeContribution(rawContribution)
	if err != nil {
		return nil, err
	}

	room, err := s.repo.GetRoomByCode(ctx, db, code)
	if err != nil {
		if errors.Is(err, roomdb.ErrNotFound) {
			return nil, roomdomain.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room by code: %w", err)
	}

	existing, err := s.loadMembership(ctx, db, room.ID, userID)
	switch {
	case err == nil:
		if existing.Status == roomdomain.StatusRejected {
			return nil, roomdomain.ErrRequestRejected
		}
		return &JoinResult{Room: room.ToDomain(), Member: existing, AlreadyMember: true}, nil
	case !errors.Is(err, roomdomain.ErrNotMember):
		return nil, err
	}

	status := roomdomain.StatusActive
	if roomdomain.AccessType(room.AccessType) == roomdomain.AccessClosed {
		status = roomdomain.StatusPending
	}
	row := &roomdb.Member{
		RoomID:           room.ID,
		UserID:           userID,
		Role:             string(roomdomain.RoleMember),
		Status:           string(status),
		ContributionText: contribution,
	}
	if err := s.repo.CreateMember(ctx, db, row); err != nil {
		return nil, err
	}

	member, err := s.loadMembership(ctx, db, room.ID, userID)
	if err != nil {
		return nil, err
	}
	return &JoinResult{Room: room.ToDomain(), Member: member}, nil
}

// GetRoom retrieves one room.
func (s *RoomService) GetRoom(ctx context.Context, roomID uuid.UUID) (*roomdomain.Room, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "GetRoom", roomID.String(), func(ctx context.Context) (results.OperationResult[*roomdomain.Room, error], error) {
		room, err := s.loadRoom(ctx, nil, roomID)
		if err != nil {
			return settle[*roomdomain.Room](nil, err)
		}
		r := room.ToDomain()
		return settle(&r, nil)
	})
	return results.Unwrap(result, err)
}

// ListMyRooms lists the rooms where the user is active or pending.
func (s *RoomService) ListMyRooms(ctx context.Context, userID string) ([]roomdomain.RoomMembership, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "ListMyRooms", userID, func(ctx context.Context) (results.OperationResult[[]roomdomain.RoomMembership, error], error) {
		rows, err := s.repo.ListRoomsForUser(ctx, nil, userID)
		if err != nil {
			return results.OperationResult[[]roomdomain.RoomMembership, error]{}, err
		}
		out := make([]roomdomain.RoomMembership, 0, len(rows))
		for i := range rows {
			out = append(out, rows[i].ToDomain())
		}
		return results.SuccessResult[[]roomdomain.RoomMembership, error](out), nil
	})
	return results.Unwrap(result, err)
}

// DeleteRoom removes the room with every membership and prediction.
func (s *RoomService) DeleteRoom(ctx context.Context, actorID string, roomID uuid.UUID) error {
	deleteTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		actor, err := s.loadActor(ctx, db, roomID, actorID, roomdomain.ErrNotOwner)
		if err != nil {
			return settle(false, err)
		}
		if actor.Role != roomdomain.RoleOwner {
			return settle(false, roomdomain.ErrNotOwner)
		}
		if err := s.repo.DeleteRoom(ctx, db, roomID); err != nil {
			if errors.Is(err, roomdb.ErrNotFound) {
				return settle(false, roomdomain.ErrRoomNotFound)
			}
			return settle(false, err)
		}
		return settle(true, nil)
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "DeleteRoom", roomID.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return bundb.RunInTx(ctx, s.db, deleteTx)
	})
	if _, err := results.Unwrap(result, err); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Room deleted",
		attr.ExtractCorrelationID(ctx),
		attr.RoomID(roomID),
		attr.UserID(actorID),
	)
	return nil
}

// MyStatus returns the caller's membership in any status.
func (s *RoomService) MyStatus(ctx context.Context, userID string, roomID uuid.UUID) (*roomdomain.Member, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "MyStatus", roomID.String(), func(ctx context.Context) (results.OperationResult[*roomdomain.Member, error], error) {
		m, err := s.loadMembership(ctx, nil, roomID, userID)
		if err != nil {
			return settle[*roomdomain.Member](nil, err)
		}
		return settle(&m, nil)
	})
	return results.Unwrap(result, err)
}

// RequireActiveMember returns the caller's membership if it is active.
func (s *RoomService) RequireActiveMember(ctx context.Context, userID string, roomID uuid.UUID) (*roomdomain.Member, error) {
	m, err := s.MyStatus(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if !m.IsActive() {
		return nil, roomdomain.ErrNotActive
	}
	return m, nil
}

// ListActiveMembers returns the members that enter the standings table.
func (s *RoomService) ListActiveMembers(ctx context.Context, roomID uuid.UUID) ([]roomdomain.Member, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "ListActiveMembers", roomID.String(), func(ctx context.Context) (results.OperationResult[[]roomdomain.Member, error], error) {
		rows, err := s.repo.ListMembers(ctx, nil, roomID, string(roomdomain.StatusActive))
		if err != nil {
			return settle[[]roomdomain.Member](nil, err)
		}
		return settle(roomdb.MembersToDomain(rows), nil)
	})
	return results.Unwrap(result, err)
}

// ListPending lists join requests awaiting moderation, oldest first.
func (s *RoomService) ListPending(ctx context.Context, actorID string, roomID uuid.UUID) ([]roomdomain.Member, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "ListPending", roomID.String(), func(ctx context.Context) (results.OperationResult[[]roomdomain.Member, error], error) {
		actor, err := s.loadActor(ctx, nil, roomID, actorID, roomdomain.ErrNoPermission)
		if err != nil {
			return settle[[]roomdomain.Member](nil, err)
		}
		if err := roomdomain.CheckModerate(actor); err != nil {
			return settle[[]roomdomain.Member](nil, err)
		}
		rows, err := s.repo.ListMembers(ctx, nil, roomID, string(roomdomain.StatusPending))
		if err != nil {
			return settle[[]roomdomain.Member](nil, err)
		}
		return settle(roomdb.MembersToDomain(rows), nil)
	})
	return results.Unwrap(result, err)
}

// moderatePending loads a pending target the actor is allowed to moderate.
func (s *RoomService) moderatePending(ctx context.Context, db bun.IDB, actorID string, roomID, memberID uuid.UUID) (roomdomain.Member, error) {
	actor, err := s.loadActor(ctx, db, roomID, actorID, roomdomain.ErrNoPermission)
	if err != nil {
		return roomdomain.Member{}, err
	}
	if err := roomdomain.CheckModerate(actor); err != nil {
		return roomdomain.Member{}, err
	}
	target, err := s.loadTarget(ctx, db, roomID, memberID)
	if err != nil {
		return roomdomain.Member{}, err
	}
	if target.Status != roomdomain.StatusPending {
		return roomdomain.Member{}, roomdomain.ErrNotPending
	}
	return target, nil
}

func (s *RoomService) setStatus(ctx context.Context, db bun.IDB, target roomdomain.Member, status roomdomain.MemberStatus) (roomdomain.Member, error) {
	if err := s.repo.UpdateMemberStatus(ctx, db, target.ID, string(status)); err != nil {
		if errors.Is(err, roomdb.ErrMemberNotFound) {
			return roomdomain.Member{}, roomdomain.ErrMemberNotFound
		}
		return roomdomain.Member{}, err
	}
	target.Status = status
	return target, nil
}

// ApproveMember activates a pending member. The returned standings row lets
// callers extend a rendered table without recomputing it.
func (s *RoomService) ApproveMember(ctx context.Context, actorID string, roomID, memberID uuid.UUID) (*ApproveResult, error) {
	approveTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*ApproveResult, error], error) {
		target, err := s.moderatePending(ctx, db, actorID, roomID, memberID)
		if err != nil {
			return settle[*ApproveResult](nil, err)
		}
		approved, err := s.setStatus(ctx, db, target, roomdomain.StatusActive)
		if err != nil {
			return settle[*ApproveResult](nil, err)
		}
		return settle(&ApproveResult{
			Member: approved,
			Standing: standingsdomain.ZeroRow(standingsdomain.Member{
				UserID:           approved.UserID,
				DisplayName:      approved.DisplayName,
				ContributionText: approved.ContributionText,
			}),
		}, nil)
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "ApproveMember", memberID.String(), func(ctx context.Context) (results.OperationResult[*ApproveResult, error], error) {
		return bundb.RunInTx(ctx, s.db, approveTx)
	})
	approved, err := results.Unwrap(result, err)
	if err != nil {
		return nil, err
	}

	s.publishMemberApproved(ctx, actorID, approved.Member)
	return approved, nil
}

func (s *RoomService) publishMemberApproved(ctx context.Context, actorID string, m roomdomain.Member) {
	if s.publisher == nil {
		return
	}
	payload := roomdomain.MemberApprovedPayload{
		RoomID:     m.RoomID,
		MemberID:   m.ID,
		UserID:     m.UserID,
		ApprovedBy: actorID,
		ApprovedAt: s.now().UTC(),
	}
	msg, err := eventbus.NewEventMessage(ctx, eventbus.RoomMemberApprovedV1, payload)
	if err == nil {
		err = eventbus.PublishWithRoomScope(s.publisher, eventbus.RoomMemberApprovedV1, m.RoomID, msg)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish member approval",
			attr.ExtractCorrelationID(ctx),
			attr.RoomID(m.RoomID),
			attr.MemberID(m.ID),
			attr.Error(err),
		)
	}
}

// RejectMember marks a pending member as rejected. Rejected users cannot
// request to join again.
func (s *RoomService) RejectMember(ctx context.Context, actorID string, roomID, memberID uuid.UUID) (*roomdomain.Member, error) {
	rejectTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*roomdomain.Member, error], error) {
		target, err := s.moderatePending(ctx, db, actorID, roomID, memberID)
		if err != nil {
			return settle[*roomdomain.Member](nil, err)
		}
		rejected, err := s.setStatus(ctx, db, target, roomdomain.StatusRejected)
		if err != nil {
			return settle[*roomdomain.Member](nil, err)
		}
		return settle(&rejected, nil)
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "RejectMember", memberID.String(), func(ctx context.Context) (results.OperationResult[*roomdomain.Member, error], error) {
		return bundb.RunInTx(ctx, s.db, rejectTx)
	})
	return results.Unwrap(result, err)
}

// KickMember removes a member together with their predictions in the room.
func (s *RoomService) KickMember(ctx context.Context, actorID string, roomID, memberID uuid.UUID) error {
	kickTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		actor, err := s.loadActor(ctx, db, roomID, actorID, roomdomain.ErrNoPermission)
		if err != nil {
			return settle(false, err)
		}
		if err := roomdomain.CheckModerate(actor); err != nil {
			return settle(false, err)
		}
		target, err := s.loadTarget(ctx, db, roomID, memberID)
		if err != nil {
			return settle(false, err)
		}
		if err := roomdomain.CheckKick(actor, target); err != nil {
			return settle(false, err)
		}
		if err := s.repo.DeleteMember(ctx, db, target.ID); err != nil {
			if errors.Is(err, roomdb.ErrMemberNotFound) {
				return settle(false, roomdomain.ErrMemberNotFound)
			}
			return settle(false, err)
		}
		return settle(true, nil)
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "KickMember", memberID.String(), func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return bundb.RunInTx(ctx, s.db, kickTx)
	})
	_, err = results.Unwrap(result, err)
	return err
}

// ChangeRole lets the owner promote or demote an active member.
func (s *RoomService) ChangeRole(ctx context.Context, actorID string, roomID, memberID uuid.UUID, rawRole string) (*roomdomain.Member, error) {
	changeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*roomdomain.Member, error], error) {
		role, err := roomdomain.ParseAssignableRole(rawRole)
		if err != nil {
			return settle[*roomdomain.Member](nil, err)
		}
		actor, err := s.loadActor(ctx, db, roomID, actorID, roomdomain.ErrNotOwner)
		if err != nil {
			return settle[*roomdomain.Member](nil, err)
		}
		target, err := s.loadTarget(ctx, db, roomID, memberID)
		if err != nil {
			return settle[*roomdomain.Member](nil, err)
		}
		if err := roomdomain.CheckChangeRole(actor, target); err != nil {
			return settle[*roomdomain.Member](nil, err)
		}
		if err := s.repo.UpdateMemberRole(ctx, db, target.ID, string(role)); err != nil {
			if errors.Is(err, roomdb.ErrMemberNotFound) {
				return settle[*roomdomain.Member](nil, roomdomain.ErrMemberNotFound)
			}
			return settle[*roomdomain.Member](nil, err)
		}
		target.Role = role
		return settle(&target, nil)
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "ChangeRole", memberID.String(), func(ctx context.Context) (results.OperationResult[*roomdomain.Member, error], error) {
		return bundb.RunInTx(ctx, s.db, changeTx)
	})
	return results.Unwrap(result, err)
}
