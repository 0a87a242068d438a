// Package middleware provides HTTP middlewares for session checks, logging,
// simulated latency and metrics.
package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/atinyakov/NoteShare/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// MsgLoginRequired is returned to requests without a valid session.
const MsgLoginRequired = "Debes iniciar sesión"

// LoginPath is where unauthenticated clients are sent.
const LoginPath = "/login"

// SessionSource exposes the active session of the auth store.
type SessionSource interface {
	// Session returns the active token and user together; ok is false when nobody is logged in.
	Session() (token string, user models.PublicUser, ok bool)
}

// RequireSession is a middleware that only lets requests through when they carry
// the active session token as "Authorization: Bearer <token>".
//
// Rejected requests get 401 with a Location header pointing at LoginPath,
// the API equivalent of redirecting the browser to the login page.
// On success the current user is stored in the request context.
func RequireSession(sessions SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			active, user, loggedIn := sessions.Session()

			if !ok || !loggedIn || active == "" ||
				subtle.ConstantTimeCompare([]byte(token), []byte(active)) != 1 {
				w.Header().Set("Location", LoginPath)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(models.Result{Success: false, Message: MsgLoginRequired})
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user stored by RequireSession.
func UserFromContext(ctx context.Context) (models.PublicUser, bool) {
	u, ok := ctx.Value(userKey).(models.PublicUser)
	return u, ok
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
