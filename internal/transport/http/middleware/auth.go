package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wani-app/api/internal/domain"
	jwtinfra "github.com/wani-app/api/internal/infrastructure/jwt"
)

type contextKey string

const UserKey contextKey = "user"

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type tokenVerifier interface {
	Verify(token string, kind jwtinfra.Kind) (*jwtinfra.Claims, bool)
}

// Authenticate returns middleware that validates the Bearer access token,
// loads the subject's account, rejects inactive accounts, and injects the
// *domain.User into context. Downstream gates assume it already ran.
func Authenticate(verifier tokenVerifier, users userStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "InvalidToken", "missing or invalid authorization header")
				return
			}
			claims, ok := verifier.Verify(token, jwtinfra.KindAccess)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "InvalidToken", "invalid or expired token")
				return
			}
			u, err := users.Get(r.Context(), claims.Subject)
			if err != nil {
				// Only a confirmed missing account is answered as such; a
				// store failure must not log every session out.
				if errors.Is(err, domain.ErrNotFound) {
					writeJSONError(w, http.StatusUnauthorized, "UserNotFound", "account no longer exists")
					return
				}
				slog.Error("user lookup failed during authentication", "user_id", claims.Subject, "err", err)
				writeJSONError(w, http.StatusInternalServerError, "InternalServerError", "something went wrong")
				return
			}
			if !u.Active {
				writeJSONError(w, http.StatusForbidden, "AccountInactive", "account is deactivated")
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthenticate behaves like Authenticate but never rejects: a
// missing, invalid, or orphaned token simply leaves the context without a
// user. Handlers that can serve both audiences use UserFromContext's ok flag.
func OptionalAuthenticate(verifier tokenVerifier, users userStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			claims, ok := verifier.Verify(token, jwtinfra.KindAccess)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			u, err := users.Get(r.Context(), claims.Subject)
			if err != nil || !u.Active {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), UserKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated user from the request context.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(UserKey).(*domain.User)
	return u, ok
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(h, "Bearer ")
	return token, token != ""
}
