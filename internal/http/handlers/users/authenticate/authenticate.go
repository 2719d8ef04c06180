// Package authenticate реализует HTTP-обработчик входа пользователя.
//
// При успешной проверке email и пароля клиент без cookie сессии получает новую
// сессию в cookie. Клиент, у которого cookie уже есть, новую сессию не получает.
package authenticate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/daily-diet/internal/config"
	"github.com/magabrotheeeer/daily-diet/internal/http/response"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	"github.com/magabrotheeeer/daily-diet/internal/services/users"
)

// Request — учётные данные пользователя.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Service описывает бизнес-логику входа.
type Service interface {
	Authenticate(ctx context.Context, email, password string, hasSession bool) (string, error)
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	session  config.Session // Параметры выдаваемой cookie
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, session config.Session) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
		session:  session,
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль. Клиенту без cookie сессии выдаёт cookie sessionId.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 201 "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Неверный email или пароль"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /users/authenticate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.authenticate"
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

	hasSession := false
	if c, err := r.Cookie(h.session.CookieName); err == nil && c.Value != "" {
		hasSession = true
	}

	token, err := h.service.Authenticate(r.Context(), req.Email, req.Password, hasSession)
	if errors.Is(err, users.ErrInvalidCredentials) {
		log.Info("invalid credentials", slog.String("email", req.Email))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Incorrect Email or Password"))
		return
	}
	if err != nil {
		log.Error("failed to authenticate", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Internal())
		return
	}

	if token != "" {
		http.SetCookie(w, &http.Cookie{
			Name:   h.session.CookieName,
			Value:  token,
			Path:   h.session.CookiePath,
			MaxAge: int(h.session.MaxAge.Seconds()),
		})
		log.Info("session cookie issued", slog.String("email", req.Email))
	}
	w.WriteHeader(http.StatusCreated)
}
