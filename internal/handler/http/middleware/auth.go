package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/response"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// SessionValidator checks a session against the current store.
type SessionValidator interface {
	ValidateSession(ctx context.Context, session auth.Session) error
}

// AuthRequired runs after jwtauth.Verifier. It rejects missing, non-access and
// revoked tokens, plus employee tokens issued for a credential that no longer
// exists, and stores the session in the request context.
func AuthRequired(jwtService jwt.Service, sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			session, err := jwt.SessionFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if jwtService.IsTokenRevoked(session.TokenID) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if err := sessions.ValidateSession(r.Context(), session); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		}
		return http.HandlerFunc(hfn)
	}
}
