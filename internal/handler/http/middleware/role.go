package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/response"
)

type sessionKey struct{}

func WithSession(ctx context.Context, session auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session stored by AuthRequired.
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(auth.Session)
	return session, ok
}

// RequireTreasurer requires treasurer role
func RequireTreasurer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok || session.Role != auth.RoleTreasurer {
			response.HandleError(w, auth.ErrTreasurerAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireEmployee requires employee role with a bound employee key
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok || session.Role != auth.RoleEmployee || session.EmployeeKey == "" {
			response.HandleError(w, auth.ErrEmployeeAccessRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}
