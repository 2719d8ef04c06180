package dailydiet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/daily-diet/internal/cache"
	"github.com/magabrotheeeer/daily-diet/internal/config"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
	"github.com/magabrotheeeer/daily-diet/internal/migrations"
	mealservice "github.com/magabrotheeeer/daily-diet/internal/services/meals"
	metricservice "github.com/magabrotheeeer/daily-diet/internal/services/metrics"
	userservice "github.com/magabrotheeeer/daily-diet/internal/services/users"
	"github.com/magabrotheeeer/daily-diet/internal/storage/repository"
)

// App — HTTP-сервер сервиса со всеми зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  io.Closer
}

// New подключается к хранилищу, применяет миграции и собирает маршруты.
// Кеш сессий подключается, только если задан адрес redis.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	version, err := migrations.Run(db.DB, cfg.MigrationsPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("schema migrated", slog.Uint64("version", uint64(version)))

	var (
		sessionCache userservice.Cache = cache.Nop{}
		closer       io.Closer
	)
	if cfg.CacheEnabled() {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		sessionCache = cacheRedis
		closer = cacheRedis
	} else {
		logger.Info("redis address is not set, session cache disabled")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, Services{
		Users:   userservice.New(db, sessionCache, logger, cfg.BcryptCost, cfg.MaxAge),
		Meals:   mealservice.New(db, logger),
		Metrics: metricservice.New(db),
		Storage: db,
	}, reg)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  closer,
	}, nil
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close storage", sl.Err(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close cache", sl.Err(err))
		}
	}
}
