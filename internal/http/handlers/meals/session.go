// Package meals содержит общие части HTTP-обработчиков приёмов пищи.
// Сами обработчики лежат во вложенных пакетах.
package meals

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-diet/internal/http/middlewarectx"
	"github.com/magabrotheeeer/daily-diet/internal/http/response"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	"github.com/magabrotheeeer/daily-diet/internal/models"
	"github.com/magabrotheeeer/daily-diet/internal/services/users"
)

// SessionResolver находит пользователя по токену сессии.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.User, error)
}

// CurrentUser возвращает пользователя, которому принадлежит сессия запроса.
//
// Если пользователь не найден, пишет 401 с пустым телом, при ошибке хранилища 500.
// В обоих случаях возвращает nil, и обработчик должен завершиться.
func CurrentUser(w http.ResponseWriter, r *http.Request, log *slog.Logger, resolver SessionResolver) *models.User {
	token, _ := middlewarectx.SessionFromContext(r.Context())

	user, err := resolver.ResolveSession(r.Context(), token)
	if errors.Is(err, users.ErrSessionNotFound) {
		log.Info("session not resolved")
		w.WriteHeader(http.StatusUnauthorized)
		return nil
	}
	if err != nil {
		log.Error("failed to resolve session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return nil
	}
	return user
}
