// Package health реализует проверку доступности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
)

// Pinger проверяет соединение с хранилищем.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler отвечает на запросы проверки доступности.
type Handler struct {
	log     *slog.Logger
	storage Pinger
	timeout time.Duration
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, storage Pinger) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
		timeout: 2 * time.Second,
	}
}

// ServeHTTP godoc
// @Summary Проверка доступности
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		h.log.Error("storage is unavailable", slog.String("op", op), sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "unavailable"})
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}
