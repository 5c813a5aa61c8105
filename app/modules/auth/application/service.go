package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	authdomain "github.com/Black-And-White-Club/prode/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/jwt"
	userservice "github.com/Black-And-White-Club/prode/app/modules/user/application"
	"github.com/Black-And-White-Club/prode/internal/observability/attr"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the configuration for the auth service.
type Config struct {
	SessionTTL time.Duration
}

// DefaultSessionTTL is used when Config.SessionTTL is zero.
const DefaultSessionTTL = 30 * 24 * time.Hour

type service struct {
	users       userservice.Service
	jwtProvider authjwt.Provider
	google      IdentityProvider
	config      Config
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewService creates a new auth service. google may be nil, which disables
// the login endpoints while sessions keep validating.
func NewService(
	jwtProvider authjwt.Provider,
	google IdentityProvider,
	users userservice.Service,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	if config.SessionTTL <= 0 {
		config.SessionTTL = DefaultSessionTTL
	}
	return &service{
		users:       users,
		jwtProvider: jwtProvider,
		google:      google,
		config:      config,
		logger:      logger,
		tracer:      tracer,
	}
}

func (s *service) LoginURL(state string) (string, error) {
	if s.google == nil {
		return "", ErrLoginDisabled
	}
	return s.google.AuthCodeURL(state), nil
}

func (s *service) CompleteLogin(ctx context.Context, code, guestID string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.CompleteLogin")
	defer span.End()

	if s.google == nil {
		return nil, ErrLoginDisabled
	}
	if code == "" {
		return nil, ErrMissingCode
	}

	profile, err := s.google.FetchProfile(ctx, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "profile fetch failed")
		return nil, fmt.Errorf("failed to fetch google profile: %w", err)
	}

	user, err := s.users.UpsertGoogleUser(ctx, profile)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to upsert account: %w", err)
	}

	// A failed merge leaves the guest intact; the login still succeeds.
	if guestID != "" && guestID != user.ID {
		if err := s.users.MergeGuest(ctx, guestID, user.ID); err != nil {
			s.logger.WarnContext(ctx, "Guest merge failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("guest_id", guestID),
				attr.UserID(user.ID),
				attr.Error(err),
			)
		}
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	token, err := s.jwtProvider.GenerateToken(&authdomain.Claims{UserID: user.ID, Email: email}, s.config.SessionTTL)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrGenerateToken, err)
	}

	s.logger.InfoContext(ctx, "User logged in",
		attr.ExtractCorrelationID(ctx),
		attr.UserID(user.ID),
	)

	return &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(s.config.SessionTTL),
		User:      user,
	}, nil
}

func (s *service) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	claims, err := s.jwtProvider.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, authjwt.ErrExpiredToken) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	return claims, nil
}
