// Package update реализует HTTP-обработчик частичного обновления приёма пищи.
package update

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

// Request — поля для обновления. Отсутствующее поле не меняется.
type Request struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	MadeAt       *string `json:"madeAt"`
	IsOnDietPlan *bool   `json:"isOnDietPlan"`
}

// Patch переводит запрос в изменения колонок приёма пищи.
func (req Request) Patch() models.MealPatch {
	return models.MealPatch{
		Name:            req.Name,
		Description:     req.Description,
		RegisteredAt:    req.MadeAt,
		IsOnTheDietPlan: req.IsOnDietPlan,
	}
}

// Service описывает обновление приёма пищи.
type Service interface {
	Update(ctx context.Context, id, ownerID string, patch models.MealPatch) error
}

// Handler обрабатывает запросы обновления приёма пищи.
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
// @Summary Обновить приём пищи
// @Description Меняет переданные поля приёма пищи пользователя сессии. Чужой или несуществующий приём пищи не меняется.
// @Tags Meals
// @Accept  json
// @Param id path string true "ID приёма пищи"
// @Param request body Request true "Изменяемые поля"
// @Success 204 "Обновлено"
// @Failure 400 {object} response.ValidationResponse "Ошибка валидации"
// @Failure 401 "Сессия не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /meals/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meals.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Info("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.DecodeError(err))
		return
	}

	user := meals.CurrentUser(w, r, log, h.users)
	if user == nil {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Update(r.Context(), id, user.ID, req.Patch()); err != nil {
		log.Error("failed to update meal", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	log.Info("meal updated", slog.String("meal_id", id))
	w.WriteHeader(http.StatusNoContent)
}
