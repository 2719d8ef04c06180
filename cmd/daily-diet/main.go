// Package main Daily Diet API
//
// @title           Daily Diet API
// @version         1.0
// @description     API для учёта приёмов пищи и соблюдения диеты
//
// @host      localhost:3333
// @BasePath  /
//
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name sessionId
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	dailydiet "github.com/magabrotheeeer/daily-diet/internal/app/daily-diet"
	"github.com/magabrotheeeer/daily-diet/internal/config"
	"github.com/magabrotheeeer/daily-diet/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting daily-diet", slog.String("env", cfg.Env))
	logger.Debug("config loaded\n" + cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := dailydiet.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("daily-diet stopped gracefully")
}
