package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/ghuser/vetclinic/pkg/httpx"
	"github.com/ghuser/vetclinic/pkg/logger"
)

// SessionName is the cookie name sessions are issued under.
const SessionName = "vetclinic_session"

// SessionUserIDKey is the session value holding the staff member's UUID string.
const SessionUserIDKey = "user_id"

// userFromSession returns the session's user ID, or uuid.Nil with a reason.
func userFromSession(store sessions.Store, r *http.Request) (uuid.UUID, string) {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return uuid.Nil, "invalid session cookie"
	}
	raw, ok := session.Values[SessionUserIDKey].(string)
	if !ok || raw == "" {
		return uuid.Nil, "session missing user_id"
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, "invalid user_id in session"
	}
	return id, ""
}

// LoadOperator attaches the session's user ID to the request context when a
// valid session is present. Requests without one pass through unchanged.
func LoadOperator(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, reason := userFromSession(store, r)
			if id == uuid.Nil {
				if _, err := r.Cookie(SessionName); err == nil {
					log.DebugContext(r.Context(), "ignoring session", "reason", reason)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

// RequireOperator is like LoadOperator but answers 401 when no valid session
// user is present.
func RequireOperator(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, reason := userFromSession(store, r)
			if id == uuid.Nil {
				log.WarnContext(r.Context(), "unauthenticated request", "reason", reason)
				httpx.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}
