package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/model"
	"github.com/ndewijer/YieldMax-Dashboard-Backend/internal/service"
)

// SessionTokenHeader is the header clients present their session token in.
const SessionTokenHeader = "X-Session-Token"

type contextKey string

// sessionContextKey carries the resolved session through the request context.
const sessionContextKey contextKey = "session"

// RequireSession resolves the session token header and stores the session in
// the request context. Requests without a valid, unexpired token get a 401.
func RequireSession(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(SessionTokenHeader)
			if token == "" {
				response.RespondError(w, http.StatusUnauthorized, "missing session token", nil)
				return
			}

			session, err := sessions.ResolveToken(token)
			if err != nil {
				switch {
				case errors.Is(err, apperrors.ErrInvalidSessionToken),
					errors.Is(err, apperrors.ErrSessionNotFound),
					errors.Is(err, apperrors.ErrSessionExpired):
					response.RespondError(w, http.StatusUnauthorized, "invalid or expired session", err.Error())
				default:
					response.RespondError(w, http.StatusInternalServerError, "failed to resolve session", err.Error())
				}
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session stored by RequireSession.
// The boolean is false when the middleware did not run for this request.
func SessionFromContext(ctx context.Context) (model.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(model.Session)
	return session, ok
}

// ContextWithSession stores a session in a context. Exposed for handler tests
// that bypass the middleware.
func ContextWithSession(ctx context.Context, session model.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}
