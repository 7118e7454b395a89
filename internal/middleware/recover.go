package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"
)

// Recover turns a panic in any later handler into a JSON 500. The panic
// value and stack are logged under an incident ID that is also returned to
// the client. http.ErrAbortHandler is re-raised so net/http can drop the
// connection as intended.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				incident := xid.New().String()
				logger.Error("panic recovered",
					slog.String("incident", incident),
					slog.String("requestID", chimiddleware.GetReqID(r.Context())),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal_error","message":"An internal error occurred","incident":"` +
					incident + `"}` + "\n"))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
