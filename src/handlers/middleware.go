package handlers

import (
	"context"
	"net/http"

	"github.com/lojasmimi/trocas/backend/src/logger"
	"github.com/lojasmimi/trocas/backend/src/services"
	"github.com/lojasmimi/trocas/backend/src/utils"
)

const SessionCookieName = "trocas_session"

type contextKey string

const sessionContextKey = contextKey("session")

// SessionMiddleware resolves the operator session from the session cookie,
// creating a fresh session (and ledger) when none exists yet. The session is
// placed in the request context for the handlers.
func SessionMiddleware(store *services.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var session *services.Session

			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if existing, found := store.Get(cookie.Value); found {
					session = existing
				} else {
					logger.L.Debug("Session cookie references expired session", "sessionID", cookie.Value)
				}
			}

			if session == nil {
				session = store.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    session.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the operator session placed by SessionMiddleware.
func SessionFromContext(ctx context.Context) (*services.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(*services.Session)
	return session, ok
}

func requireSession(w http.ResponseWriter, r *http.Request) (*services.Session, bool) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "operator session not found", http.StatusInternalServerError)
		return nil, false
	}
	return session, true
}
