// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Handler принимает JSON с именем, email и паролем, валидирует его и создаёт
// пользователя через сервис. Повторный email возвращает 400.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-diet/internal/http/response"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	"github.com/magabrotheeeer/daily-diet/internal/services/users"
)

// Request — структура входных данных для регистрации.
//
// Имя не может быть пустым, пароль — минимум 8 символов.
type Request struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, name, email, password string) error
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис регистрации пользователей
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт нового пользователя. Тело ответа пустое.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Пользователь уже существует"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.register"
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

	err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, users.ErrUserExists) {
		log.Info("user already exists", slog.String("email", req.Email))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("User already exists!"))
		return
	}
	if err != nil {
		log.Error("failed to register user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	log.Info("user registered", slog.String("email", req.Email))
	w.WriteHeader(http.StatusCreated)
}
