// Package dailydiet собирает HTTP-приложение сервиса учёта питания.
package dailydiet

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/daily-diet/internal/config"
	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/health"
	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/meals/create"
	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/meals/list"
	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/meals/read"
	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/meals/remove"
	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/meals/update"
	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/users/authenticate"
	usermetrics "github.com/magabrotheeeer/daily-diet/internal/http/handlers/users/metrics"
	"github.com/magabrotheeeer/daily-diet/internal/http/handlers/users/register"
	"github.com/magabrotheeeer/daily-diet/internal/http/middlewarectx"
	mealservice "github.com/magabrotheeeer/daily-diet/internal/services/meals"
	metricservice "github.com/magabrotheeeer/daily-diet/internal/services/metrics"
	userservice "github.com/magabrotheeeer/daily-diet/internal/services/users"
)

// Services — зависимости обработчиков.
type Services struct {
	Users   *userservice.Service
	Meals   *mealservice.Service
	Metrics *metricservice.Service
	Storage health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc Services, reg *prometheus.Registry) {
	httpMetrics := middlewarectx.NewHTTPMetrics(reg)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middlewarectx.Recoverer(logger, cfg.Env == config.EnvProd),
		middleware.URLFormat,
		httpMetrics.Middleware,
	)

	requireSession := middlewarectx.RequireSessionCookie(logger, cfg.CookieName)
	loginLimiter := middlewarectx.NewClientLimiters(rate.Limit(cfg.LoginRateLimit), cfg.LoginBurst)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", register.New(logger, svc.Users).ServeHTTP)
		r.With(middlewarectx.RateLimit(logger, loginLimiter)).
			Post("/authenticate", authenticate.New(logger, svc.Users, cfg.Session).ServeHTTP)
		r.With(requireSession).
			Get("/{id}/metrics", usermetrics.New(logger, svc.Metrics).ServeHTTP)
	})

	// Все маршруты приёмов пищи требуют cookie сессии
	r.Route("/meals", func(r chi.Router) {
		r.Use(requireSession)
		r.Get("/{userId}/meals", list.New(logger, svc.Meals, svc.Users).ServeHTTP)
		r.Get("/{id}", read.New(logger, svc.Meals, svc.Users).ServeHTTP)
		r.Post("/", create.New(logger, svc.Meals, svc.Users).ServeHTTP)
		r.Put("/{id}", update.New(logger, svc.Meals, svc.Users).ServeHTTP)
		r.Delete("/{id}", remove.New(logger, svc.Meals, svc.Users).ServeHTTP)
	})

	r.Get("/health", health.New(logger, svc.Storage).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
}
