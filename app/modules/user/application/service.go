package userservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	userdomain "github.com/Black-And-White-Club/prode/app/modules/user/domain"
	userdb "github.com/Black-And-White-Club/prode/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/prode/internal/db/bundb"
	"github.com/Black-And-White-Club/prode/internal/observability"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"github.com/Black-And-White-Club/prode/internal/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "UserService"

	// guestCreateAttempts bounds retries when a generated default name collides.
	guestCreateAttempts = 3
)

// UserService implements the Service interface.
type UserService struct {
	repo      userdb.Repository
	logger    *slog.Logger
	telemetry observability.Operation
	db        *bun.DB
	newID     func() string
}

// NewUserService creates a new UserService.
func NewUserService(
	repo userdb.Repository,
	logger *slog.Logger,
	metrics observability.ServiceMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		repo:   repo,
		logger: logger,
		telemetry: observability.Operation{
			Service: serviceName,
			Logger:  logger,
			Metrics: metrics,
			Tracer:  tracer,
		},
		db:    db,
		newID: userdomain.NewUserID,
	}
}

// EnsureGuest creates a fresh guest user.
func (s *UserService) EnsureGuest(ctx context.Context) (*userdomain.User, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "EnsureGuest", "guest", func(ctx context.Context) (results.OperationResult[*userdomain.User, error], error) {
		var lastErr error
		for i := 0; i < guestCreateAttempts; i++ {
			id := s.newID()
			row := &userdb.User{
				ID:          id,
				DisplayName: userdomain.DefaultDisplayName(id),
				IsGuest:     true,
			}
			lastErr = s.repo.Create(ctx, nil, row)
			if lastErr == nil {
				u := row.ToDomain()
				return results.SuccessResult[*userdomain.User, error](&u), nil
			}
			if !errors.Is(lastErr, userdb.ErrDisplayNameTaken) {
				break
			}
		}
		return results.OperationResult[*userdomain.User, error]{}, fmt.Errorf("failed to create guest: %w", lastErr)
	})
	return results.Unwrap(result, err)
}

// GetUser loads a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*userdomain.User, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "GetUser", id, func(ctx context.Context) (results.OperationResult[*userdomain.User, error], error) {
		return s.getUserLogic(ctx, nil, id)
	})
	return results.Unwrap(result, err)
}

func (s *UserService) getUserLogic(ctx context.Context, db bun.IDB, id string) (results.OperationResult[*userdomain.User, error], error) {
	row, err := s.repo.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return results.FailureResult[*userdomain.User, error](userdomain.ErrUserNotFound), nil
		}
		return results.OperationResult[*userdomain.User, error]{}, err
	}
	u := row.ToDomain()
	return results.SuccessResult[*userdomain.User, error](&u), nil
}

// GuestStatus reports whether the guest exists and owns rooms or predictions.
func (s *UserService) GuestStatus(ctx context.Context, guestID string) (GuestStatus, error) {
	result, err := observability.WithTelemetry(ctx, s.telemetry, "GuestStatus", guestID, func(ctx context.Context) (results.OperationResult[GuestStatus, error], error) {
		if _, err := s.repo.GetByID(ctx, nil, guestID); err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return results.SuccessResult[GuestStatus, error](GuestStatus{}), nil
			}
			return results.OperationResult[GuestStatus, error]{}, err
		}
		data, err := s.repo.GuestData(ctx, nil, guestID)
		if err != nil {
			return results.OperationResult[GuestStatus, error]{}, err
		}
		return results.SuccessResult[GuestStatus, error](GuestStatus{Exists: true, HasData: data.HasData()}), nil
	})
	return results.Unwrap(result, err)
}

// UpdateDisplayName validates and stores a new display name.
func (s *UserService) UpdateDisplayName(ctx context.Context, id, raw string) (*userdomain.User, error) {
	renameTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdomain.User, error], error) {
		name, err := userdomain.ParseDisplayName(raw)
		if err != nil {
			return results.FailureResult[*userdomain.User, error](err), nil
		}
		if err := s.repo.UpdateDisplayName(ctx, db, id, name); err != nil {
			switch {
			case errors.Is(err, userdb.ErrDisplayNameTaken):
				return results.FailureResult[*userdomain.User, error](userdomain.ErrNameTaken), nil
			case errors.Is(err, userdb.ErrNotFound):
				return results.FailureResult[*userdomain.User, error](userdomain.ErrUserNotFound), nil
			}
			return results.OperationResult[*userdomain.User, error]{}, err
		}
		return s.getUserLogic(ctx, db, id)
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "UpdateDisplayName", id, func(ctx context.Context) (results.OperationResult[*userdomain.User, error], error) {
		return bundb.RunInTx(ctx, s.db, renameTx)
	})
	return results.Unwrap(result, err)
}

// UpsertGoogleUser finds the account by Google subject, then by email, and
// creates it otherwise. Profile fields are synced on every login.
func (s *UserService) UpsertGoogleUser(ctx context.Context, profile userdomain.GoogleProfile) (*userdomain.User, error) {
	if profile.Sub == "" {
		return nil, errors.New("google profile without subject")
	}
	email := strings.ToLower(strings.TrimSpace(profile.Email))

	upsertTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*userdomain.User, error], error) {
		row, err := s.repo.GetByGoogleSub(ctx, db, profile.Sub)
		if errors.Is(err, userdb.ErrNotFound) && email != "" {
			row, err = s.repo.GetByEmail(ctx, db, email)
		}

		switch {
		case err == nil:
			applyProfile(row, profile.Sub, email, profile)
			if err := s.repo.UpdateProfile(ctx, db, row); err != nil {
				return results.OperationResult[*userdomain.User, error]{}, err
			}
		case errors.Is(err, userdb.ErrNotFound):
			id := s.newID()
			row = &userdb.User{ID: id, DisplayName: userdomain.DefaultDisplayName(id)}
			applyProfile(row, profile.Sub, email, profile)
			if err := s.repo.Create(ctx, db, row); err != nil {
				return results.OperationResult[*userdomain.User, error]{}, err
			}
		default:
			return results.OperationResult[*userdomain.User, error]{}, err
		}

		u := row.ToDomain()
		return results.SuccessResult[*userdomain.User, error](&u), nil
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "UpsertGoogleUser", profile.Sub, func(ctx context.Context) (results.OperationResult[*userdomain.User, error], error) {
		return bundb.RunInTx(ctx, s.db, upsertTx)
	})
	return results.Unwrap(result, err)
}

func applyProfile(row *userdb.User, sub, email string, profile userdomain.GoogleProfile) {
	row.GoogleSub = &sub
	row.IsGuest = false
	if email != "" {
		row.Email = &email
	}
	if profile.Name != "" {
		row.Name = &profile.Name
	}
	if profile.Image != "" {
		row.Image = &profile.Image
	}
}

// MergeGuest moves the guest's rooms and predictions onto the account.
func (s *UserService) MergeGuest(ctx context.Context, guestID, accountID string) error {
	if guestID == "" || guestID == accountID {
		return nil
	}

	mergeTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[bool, error], error) {
		guest, err := s.repo.GetByID(ctx, db, guestID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return results.SuccessResult[bool, error](false), nil
			}
			return results.OperationResult[bool, error]{}, err
		}
		if !guest.IsGuest {
			return results.SuccessResult[bool, error](false), nil
		}
		if err := s.repo.MergeGuest(ctx, db, guestID, accountID); err != nil {
			return results.OperationResult[bool, error]{}, err
		}
		return results.SuccessResult[bool, error](true), nil
	}

	result, err := observability.WithTelemetry(ctx, s.telemetry, "MergeGuest", guestID, func(ctx context.Context) (results.OperationResult[bool, error], error) {
		return bundb.RunInTx(ctx, s.db, mergeTx)
	})
	merged, err := results.Unwrap(result, err)
	if err != nil {
		return err
	}
	if merged {
		s.logger.InfoContext(ctx, "Guest merged into account",
			attr.ExtractCorrelationID(ctx),
			attr.String("guest_id", guestID),
			attr.UserID(accountID),
		)
	}
	return nil
}
