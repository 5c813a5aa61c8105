package authjwt

import (
	"errors"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/prode/app/modules/auth/domain"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	p := NewProvider(testSecret)

	claims := &authdomain.Claims{
		UserID: "kq3Yd9PbX0aZ",
		Email:  "fan@example.com",
	}

	tests := []struct {
		name        string
		setupClaims *authdomain.Claims
		ttl         time.Duration
		validator   Provider
		expectedErr error
		verify      func(t *testing.T, validated *authdomain.Claims)
	}{
		{
			name:        "success",
			setupClaims: claims,
			ttl:         time.Hour,
			validator:   p,
			verify: func(t *testing.T, validated *authdomain.Claims) {
				if validated.UserID != claims.UserID {
					t.Errorf("expected userID %s, got %s", claims.UserID, validated.UserID)
				}
				if validated.Email != claims.Email {
					t.Errorf("expected email %s, got %s", claims.Email, validated.Email)
				}
				if validated.IsExpired() {
					t.Error("expected token to be live")
				}
			},
		},
		{
			name:        "expired token",
			setupClaims: claims,
			ttl:         -time.Hour,
			validator:   p,
			expectedErr: ErrExpiredToken,
		},
		{
			name:        "wrong secret",
			setupClaims: claims,
			ttl:         time.Hour,
			validator:   NewProvider("another-secret-at-least-32-chars!!"),
			expectedErr: ErrInvalidSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := p.GenerateToken(tt.setupClaims, tt.ttl)
			if err != nil {
				t.Fatalf("failed to generate token: %v", err)
			}

			validated, err := tt.validator.ValidateToken(token)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("failed to validate token: %v", err)
			}
			if tt.verify != nil {
				tt.verify(t, validated)
			}
		})
	}
}

func TestProvider_RejectsGarbage(t *testing.T) {
	p := NewProvider(testSecret)
	if _, err := p.ValidateToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestProvider_RequiresSubject(t *testing.T) {
	p := NewProvider(testSecret)
	if _, err := p.GenerateToken(&authdomain.Claims{}, time.Hour); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
