// Package metrics реализует HTTP-обработчик статистики пользователя по приёмам пищи.
//
// Пользователь берётся из пути запроса. Middleware перед обработчиком
// проверяет только наличие cookie сессии.
package metrics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-diet/internal/http/response"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	"github.com/magabrotheeeer/daily-diet/internal/models"
)

// Service описывает расчёт статистики.
type Service interface {
	ForUser(ctx context.Context, userID string) (models.Metrics, error)
}

// Handler обрабатывает запросы статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика пользователя
// @Description Возвращает число приёмов пищи, в том числе по диете и вне её, и лучшую серию за один день.
// @Tags Users
// @Produce  json
// @Param id path string true "ID пользователя"
// @Success 200 {object} models.Metrics
// @Failure 401 {object} response.UnauthorizedResponse "Нет cookie сессии"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/{id}/metrics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.metrics"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID := chi.URLParam(r, "id")
	res, err := h.service.ForUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to count metrics", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	log.Debug("metrics counted", slog.String("user_id", userID), slog.Int("meals", res.TotalNumberOfMeals))
	render.Status(r, http.StatusOK)
	render.JSON(w, r, res)
}
