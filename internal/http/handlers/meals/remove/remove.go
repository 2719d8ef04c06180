// Package remove реализует HTTP-обработчик удаления приёма пищи.
//
// Сначала проверяется, что приём пищи существует, затем сессия.
// Удаляется только приём пищи пользователя сессии.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/meals"
	"github.com/magabrotheeeer/daily-diet/internal/http/response"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	mealsvc "github.com/magabrotheeeer/daily-diet/internal/services/meals"
)

// Service описывает удаление приёма пищи.
type Service interface {
	Exists(ctx context.Context, id string) error
	Delete(ctx context.Context, id, ownerID string) error
}

// Handler обрабатывает запросы удаления приёма пищи.
type Handler struct {
	log     *slog.Logger
	service Service
	users   meals.SessionResolver
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, users meals.SessionResolver) *Handler {
	return &Handler{
		log:     log,
		service: service,
		users:   users,
	}
}

// ServeHTTP godoc
// @Summary Удалить приём пищи
// @Description Удаляет приём пищи пользователя сессии. Чужой приём пищи не удаляется.
// @Tags Meals
// @Param id path string true "ID приёма пищи"
// @Success 204 "Удалено"
// @Failure 401 "Сессия не найдена"
// @Failure 404 "Приём пищи не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /meals/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meals.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	err := h.service.Exists(r.Context(), id)
	if errors.Is(err, mealsvc.ErrMealNotFound) {
		log.Info("meal not found", slog.String("meal_id", id))
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to find meal", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	user := meals.CurrentUser(w, r, log, h.users)
	if user == nil {
		return
	}

	if err := h.service.Delete(r.Context(), id, user.ID); err != nil {
		log.Error("failed to delete meal", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	log.Info("meal deleted", slog.String("meal_id", id))
	w.WriteHeader(http.StatusNoContent)
}
