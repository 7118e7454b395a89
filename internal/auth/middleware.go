package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vmccready/techdegree-project-9/internal/model"
)

// contextKey is unexported so no other package can read or overwrite the
// authenticated user stored by this one.
type contextKey struct{}

var currentUserKey contextKey

// accessDenied is the only body a rejected request ever sees.
const accessDenied = `{"message":"Access Denied"}`

// RequireUser is a middleware that enforces HTTP Basic authentication on the
// routes it wraps.
//
// On success the resolved user is stored in the request context (read it
// with UserFromContext). Every credential failure answers 401 with the same
// body; the actual reason only goes to the log.
func RequireUser(authn *Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authn.Authenticate(r)
			if err != nil {
				if IsRejection(err) {
					logger.Warn("authentication rejected",
						slog.String("reason", err.Error()),
						slog.String("path", r.URL.Path),
					)
					w.Header().Set("WWW-Authenticate", `Basic realm="api", charset="UTF-8"`)
					writeRaw(w, http.StatusUnauthorized, accessDenied)
					return
				}

				logger.Error("authentication lookup failed", slog.String("error", err.Error()))
				writeRaw(w, http.StatusInternalServerError,
					`{"error":"internal_error","message":"An internal error occurred"}`)
				return
			}

			logger.Debug("authentication succeeded", slog.Int64("userID", user.ID))
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// UserFromContext retrieves the user stored by RequireUser.
// Returns (nil, false) on routes that are not behind the middleware.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*model.User)
	return user, ok && user != nil
}

// WithUser returns a copy of ctx carrying user. RequireUser uses it; it is
// exported so handler tests can skip the middleware.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body + "\n"))
}
