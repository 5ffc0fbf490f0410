package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/logger"
)

// SessionCookieName is the cookie carrying the page session id.
const SessionCookieName = "storefront_session"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// sessionKey is the context key for the visitor's page session.
const sessionKey contextKey = "session"

var errNoSession = errors.New("page session missing from request context")

// SessionCookie resolves the visitor's page session from the session cookie,
// creating one when the cookie is missing or stale, and stores it in the
// request context. The request logger gains a session_id attribute.
func SessionCookie(svc *service.PageService, base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookieName); err == nil {
				id = c.Value
			}

			sess, created, err := svc.Session(r.Context(), id)
			if err != nil {
				httputil.WriteError(w, r, err, base)
				return
			}
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := logger.WithSessionID(r.Context(), sess.ID)
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			ctx = context.WithValue(ctx, sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionFromContext extracts the page session stored by SessionCookie.
func sessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok && sess != nil
}
