package authservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	authjwt "github.com/Black-And-White-Club/prode/app/modules/auth/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func newTestService(google IdentityProvider, users *FakeUserService) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewService(authjwt.NewProvider(testSecret), google, users, Config{SessionTTL: time.Hour}, logger, tracer)
}

func TestCompleteLogin(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		guestID   string
		google    IdentityProvider
		setup     func(*FakeUserService)
		wantErr   error
		wantTrace []string
	}{
		{
			name:      "login with guest merge",
			code:      "c",
			guestID:   "guest1234567",
			google:    &FakeIdentityProvider{},
			wantTrace: []string{"UpsertGoogleUser", "MergeGuest"},
		},
		{
			name:      "login without guest",
			code:      "c",
			google:    &FakeIdentityProvider{},
			wantTrace: []string{"UpsertGoogleUser"},
		},
		{
			name:    "merge failure does not block login",
			code:    "c",
			guestID: "guest1234567",
			google:  &FakeIdentityProvider{},
			setup: func(f *FakeUserService) {
				f.MergeGuestFunc = func(ctx context.Context, guestID, accountID string) error {
					return errors.New("deadlock")
				}
			},
			wantTrace: []string{"UpsertGoogleUser", "MergeGuest"},
		},
		{
			name:    "disabled",
			code:    "c",
			wantErr: ErrLoginDisabled,
		},
		{
			name:    "missing code",
			google:  &FakeIdentityProvider{},
			wantErr: ErrMissingCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &FakeUserService{}
			if tt.setup != nil {
				tt.setup(users)
			}
			svc := newTestService(tt.google, users)

			session, err := svc.CompleteLogin(context.Background(), tt.code, tt.guestID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, users.trace)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTrace, users.trace)

			claims, err := svc.ValidateToken(context.Background(), session.Token)
			require.NoError(t, err)
			assert.Equal(t, "acc123456789", claims.UserID)
			assert.Equal(t, "fan@example.com", claims.Email)
		})
	}
}

func TestLoginURL(t *testing.T) {
	_, err := newTestService(nil, &FakeUserService{}).LoginURL("s")
	assert.ErrorIs(t, err, ErrLoginDisabled)

	url, err := newTestService(&FakeIdentityProvider{}, &FakeUserService{}).LoginURL("s")
	require.NoError(t, err)
	assert.Contains(t, url, "state=s")
}

func TestValidateToken(t *testing.T) {
	svc := newTestService(nil, &FakeUserService{})

	_, err := svc.ValidateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = svc.ValidateToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
