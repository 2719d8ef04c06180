// Package read реализует HTTP-обработчик чтения приёма пищи по ID.
package read

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
	"github.com/magabrotheeeer/daily-diet/internal/models"
	mealsvc "github.com/magabrotheeeer/daily-diet/internal/services/meals"
)

// Service описывает чтение приёма пищи владельца.
type Service interface {
	Get(ctx context.Context, id, ownerID string) (*models.Meal, error)
}

// Handler обрабатывает запросы чтения приёма пищи.
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
// @Summary Получить приём пищи
// @Description Возвращает приём пищи по ID, если он принадлежит пользователю сессии.
// @Tags Meals
// @Produce  json
// @Param id path string true "ID приёма пищи"
// @Success 200 {object} models.Meal
// @Failure 401 "Сессия не найдена"
// @Failure 404 "Приём пищи не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /meals/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meals.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user := meals.CurrentUser(w, r, log, h.users)
	if user == nil {
		return
	}

	id := chi.URLParam(r, "id")
	meal, err := h.service.Get(r.Context(), id, user.ID)
	if errors.Is(err, mealsvc.ErrMealNotFound) {
		log.Info("meal not found", slog.String("meal_id", id))
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("failed to read meal", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, meal)
}
