package middlewares

//go:generate mockgen -source=auth.go -destination=auth_mock_test.go -package=middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-wrap-credits/internal/jwt"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
)

// SessionResolver resolves a session cookie token to its user.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.SessionUser, error)
}

// Tokener defines the minimal interface needed to read service tokens.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

type userKey struct{}

// WithUser returns a copy of ctx carrying the session user.
func WithUser(ctx context.Context, user *models.SessionUser) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the session user attached by SessionMiddleware, or nil.
func UserFromContext(ctx context.Context) *models.SessionUser {
	user, _ := ctx.Value(userKey{}).(*models.SessionUser)
	return user
}

// SessionMiddleware attaches the user of the session cookie to the request context.
// It never rejects a request: anonymous requests pass through without a user.
func SessionMiddleware(resolver SessionResolver, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := resolver.ResolveSession(r.Context(), cookie.Value)
			if err != nil {
				logger.Log.Errorw("session lookup failed", "err", err)
			}
			if user != nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects requests without a session user with 401.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin admits admin session users and bearers of an admin service token.
// Requests without any identity get 401, other users get 403.
func RequireAdmin(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user := UserFromContext(ctx)
			if user.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			if claims, ok := serviceClaims(ctx, tokener, r); ok {
				if claims.Role == jwt.RoleAdmin {
					next.ServeHTTP(w, r)
					return
				}
				w.WriteHeader(http.StatusForbidden)
				return
			}

			if user == nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			logger.Log.Warnw("admin route denied", "user_id", user.UserID, "path", r.URL.Path)
			w.WriteHeader(http.StatusForbidden)
		})
	}
}

// RequireService admits bearers of a service token carrying one of roles.
// A missing or invalid token gets 401, a token with another role 403.
func RequireService(tokener Tokener, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := serviceClaims(r.Context(), tokener, r)
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			w.WriteHeader(http.StatusForbidden)
		})
	}
}

func serviceClaims(ctx context.Context, tokener Tokener, r *http.Request) (*jwt.Claims, bool) {
	tokenString, err := tokener.GetTokenFromRequest(ctx, r)
	if err != nil {
		return nil, false
	}
	claims, err := tokener.GetClaims(ctx, tokenString)
	if err != nil {
		logger.Log.Errorw("authorization failed", "err", err)
		return nil, false
	}
	return claims, true
}
