// Package create реализует HTTP-обработчик создания приёма пищи.
//
// Handler принимает JSON с описанием приёма пищи, валидирует его, находит
// пользователя сессии и сохраняет приём пищи от его имени.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/meals"
	"github.com/magabrotheeeer/daily-diet/internal/http/response"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	"github.com/magabrotheeeer/daily-diet/internal/models"
)

// Request — данные нового приёма пищи.
//
// Все поля обязательны, строки могут быть пустыми.
type Request struct {
	Name         *string `json:"name" validate:"required"`
	Description  *string `json:"description" validate:"required"`
	MadeAt       *string `json:"madeAt" validate:"required"`
	IsOnDietPlan *bool   `json:"isOnDietPlan" validate:"required"`
}

// Service описывает создание приёма пищи.
type Service interface {
	Create(ctx context.Context, ownerID string, meal models.Meal) (*models.Meal, error)
}

// Handler обрабатывает запросы создания приёма пищи.
type Handler struct {
	log      *slog.Logger
	service  Service
	users    meals.SessionResolver
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, users meals.SessionResolver) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		users:    users,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Создать приём пищи
// @Description Сохраняет приём пищи от имени пользователя сессии. Тело ответа пустое.
// @Tags Meals
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные приёма пищи"
// @Success 201 "Приём пищи создан"
// @Failure 400 {object} response.ValidationResponse "Ошибка валидации"
// @Failure 401 "Сессия не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /meals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meals.create"
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

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user := meals.CurrentUser(w, r, log, h.users)
	if user == nil {
		return
	}

	meal, err := h.service.Create(r.Context(), user.ID, models.Meal{
		Name:            *req.Name,
		Description:     *req.Description,
		RegisteredAt:    *req.MadeAt,
		IsOnTheDietPlan: *req.IsOnDietPlan,
	})
	if err != nil {
		log.Error("failed to create meal", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	log.Info("meal created", slog.String("meal_id", meal.ID))
	w.WriteHeader(http.StatusCreated)
}
