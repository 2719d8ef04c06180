// Package list реализует HTTP-обработчик списка приёмов пищи пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/meals"
	"github.com/magabrotheeeer/daily-diet/internal/http/response"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	"github.com/magabrotheeeer/daily-diet/internal/models"
)

// Service описывает получение списка приёмов пищи.
type Service interface {
	List(ctx context.Context, ownerID string) ([]*models.Meal, error)
}

// Handler обрабатывает запросы списка приёмов пищи.
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
// @Summary Список приёмов пищи
// @Description Возвращает все приёмы пищи пользователя из пути. Требуется действующая сессия.
// @Tags Meals
// @Produce  json
// @Param userId path string true "ID пользователя"
// @Success 200 {array} models.Meal
// @Failure 401 "Сессия не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /meals/{userId}/meals [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meals.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if user := meals.CurrentUser(w, r, log, h.users); user == nil {
		return
	}

	ownerID := chi.URLParam(r, "userId")
	res, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		log.Error("failed to list meals", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	log.Debug("meals listed", slog.String("owner_id", ownerID), slog.Int("count", len(res)))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, res)
}
