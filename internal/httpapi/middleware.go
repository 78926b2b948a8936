package httpapi

import (
	"context"
	"net/http"
)

type contextKey string

const userEmailKey contextKey = "userEmail"

const (
	userCookieName  = "user_email"
	userEmailHeader = "X-User-Email"
)

// RequireUser resolves the caller's identity from the session cookie or,
// for API clients, a header. The actual sign-in flow belongs to the auth
// provider in front of this service; requests without an identity are
// rejected.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get(userEmailHeader)
		if email == "" {
			if ck, err := r.Cookie(userCookieName); err == nil {
				email = ck.Value
			}
		}
		if email == "" {
			writeError(w, http.StatusUnauthorized, "you must be signed in to checkout")
			return
		}

		ctx := context.WithValue(r.Context(), userEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserEmail returns the authenticated caller's email, if any.
func UserEmail(ctx context.Context) string {
	v, _ := ctx.Value(userEmailKey).(string)
	return v
}
