package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userdomain "tiptrip-go/internal/domain/user"
	"tiptrip-go/pkg/logger"
)

// TokenHeader carries the caller's user token.
const TokenHeader = "X-User-Hash"

type contextKey int

const userKey contextKey = iota

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userdomain.User, error)
}

type TokenAuth struct {
	users Authenticator
	log   logger.Logger
}

func NewTokenAuth(users Authenticator, log logger.Logger) *TokenAuth {
	return &TokenAuth{users: users, log: log}
}

func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get(TokenHeader))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token", TokenHeader+" header missing")
			return
		}

		user, err := a.users.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, userdomain.ErrInvalidToken) {
				a.log.BusinessError("auth: invalid token", err, "path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "invalid_token", "invalid user hash")
				return
			}
			a.log.InternalError("auth: authenticate failed", err, "path", r.URL.Path)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user)))
	})
}

func WithUser(ctx context.Context, user userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (userdomain.User, bool) {
	user, ok := ctx.Value(userKey).(userdomain.User)
	if !ok || user.ID == 0 {
		return userdomain.User{}, false
	}
	return user, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
