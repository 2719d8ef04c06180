// Package middlewarectx содержит HTTP middleware сервиса.
//
// RequireSessionCookie проверяет наличие cookie сессии и кладёт её значение
// в контекст запроса. Сама сессия здесь не проверяется: это делают обработчики,
// которым нужен пользователь.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-diet/internal/http/response"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionToken — ключ для значения cookie сессии в контексте.
const SessionToken Key = "session_token"

// RequireSessionCookie возвращает middleware, который отклоняет запросы без cookie cookieName.
//
// Пустое значение считается отсутствием cookie. В этом случае возвращается 401
// и следующий обработчик не вызывается.
func RequireSessionCookie(log *slog.Logger, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireSessionCookie"

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				log.Debug("session cookie missing",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Unauthorized())
				return
			}

			ctx := context.WithValue(r.Context(), SessionToken, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext возвращает значение cookie сессии, положенное RequireSessionCookie.
func SessionFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionToken).(string)
	return token, ok && token != ""
}

// WithSession кладёт токен сессии в контекст.
func WithSession(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, SessionToken, token)
}
