package httpserver

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const sessionCookieName = "sessionId"

// sessionMaxAge is one day, matching the cookie's intended lifetime of a
// single campaign visit.
const sessionMaxAge = 24 * 60 * 60

type contextKey string

const sessionContextKey contextKey = "session-id"

// withSession guarantees every request carries a session id. A missing or
// empty cookie gets a fresh uuid; the cookie is re-issued on every response
// so its expiry slides forward while the visitor stays active.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			id = cookie.Value
		}
		if id == "" {
			id = uuid.NewString()
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   sessionMaxAge,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := context.WithValue(r.Context(), sessionContextKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionContextKey).(string)
	return id
}
