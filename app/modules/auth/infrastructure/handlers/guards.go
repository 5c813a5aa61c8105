package authhandlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	authdomain "github.com/Black-And-White-Club/prode/app/modules/auth/domain"
	userdomain "github.com/Black-And-White-Club/prode/app/modules/user/domain"
	"github.com/Black-And-White-Club/prode/internal/respond"
)

// TokenValidator validates session tokens.
type TokenValidator interface {
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error)
}

// UserLookup resolves guest cookies into users.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*userdomain.User, error)
}

// Guards resolve the caller identity and gate routes on it.
type Guards struct {
	tokens  TokenValidator
	users   UserLookup
	isAdmin func(email string) bool
	limiter *IPRateLimiter
	logger  *slog.Logger
}

// NewGuards wires the identity middleware. users may be nil, in which case
// guest cookies are trusted without a lookup.
func NewGuards(tokens TokenValidator, users UserLookup, isAdmin func(string) bool, limiter *IPRateLimiter, logger *slog.Logger) *Guards {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guards{tokens: tokens, users: users, isAdmin: isAdmin, limiter: limiter, logger: logger}
}

// Identify attaches the caller identity when one can be resolved. It never
// rejects a request.
func (g *Guards) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, g.withIdentity(r))
	})
}

// RequireIdentity rejects anonymous callers with 401 UNAUTHENTICATED.
func (g *Guards) RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = g.withIdentity(r)
		if _, ok := authdomain.IdentityFromContext(r.Context()); !ok {
			respond.Error(w, http.StatusUnauthorized, "UNAUTHENTICATED")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin only lets logged-in accounts from the admin allow-list through.
func (g *Guards) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = g.withIdentity(r)
		id, ok := authdomain.IdentityFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "UNAUTHENTICATED")
			return
		}
		if id.IsGuest || !id.IsAdmin {
			respond.Error(w, http.StatusForbidden, "FORBIDDEN")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit applies the shared per-IP limiter.
func (g *Guards) RateLimit(next http.Handler) http.Handler {
	if g.limiter == nil {
		return next
	}
	return RateLimitMiddleware(g.limiter)(next)
}

func (g *Guards) withIdentity(r *http.Request) *http.Request {
	if _, ok := authdomain.IdentityFromContext(r.Context()); ok {
		return r
	}
	id, ok := g.resolve(r)
	if !ok {
		return r
	}
	return r.WithContext(authdomain.WithIdentity(r.Context(), id))
}

// resolve prefers a valid session over the guest cookie.
func (g *Guards) resolve(r *http.Request) (authdomain.Identity, bool) {
	ctx := r.Context()

	if token := sessionToken(r); token != "" && g.tokens != nil {
		claims, err := g.tokens.ValidateToken(ctx, token)
		if err == nil {
			return authdomain.Identity{
				UserID:  claims.UserID,
				Email:   claims.Email,
				IsAdmin: claims.Email != "" && g.isAdmin(claims.Email),
			}, true
		}
		g.logger.DebugContext(ctx, "Ignoring invalid session token", slog.String("error", err.Error()))
	}

	cookie, err := r.Cookie(authdomain.GuestCookieName)
	if err != nil || cookie.Value == "" {
		return authdomain.Identity{}, false
	}
	if g.users == nil {
		return authdomain.Identity{UserID: cookie.Value, IsGuest: true}, true
	}
	user, err := g.users.GetUser(ctx, cookie.Value)
	if err != nil || !user.IsGuest {
		return authdomain.Identity{}, false
	}
	return authdomain.Identity{UserID: user.ID, IsGuest: true}, true
}

func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(authdomain.SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
