package middlewarectx

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-diet/internal/http/response"
)

// Recoverer перехватывает панику обработчика и отвечает 500.
// В тихом режиме (quiet) значение паники и стек в лог не пишутся.
func Recoverer(log *slog.Logger, quiet bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				attrs := []any{
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
				}
				if !quiet {
					attrs = append(attrs,
						slog.Any("panic", rvr),
						slog.String("stack", string(debug.Stack())),
					)
				}
				log.Error("panic recovered", attrs...)

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Internal())
			}()

			next.ServeHTTP(w, r)
		})
	}
}
