// Package sl содержит вспомогательные функции для работы с логгером slog:
// сборку логгера под окружение и формирование единообразных полей лога.
package sl

import (
	"io"
	"log/slog"

	"github.com/magabrotheeeer/daily-diet/internal/config"
)

// New создаёт логгер под окружение env.
//
// local — текстовый вывод с уровнем debug, dev — JSON с уровнем debug,
// prod и всё остальное — JSON с уровнем info.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case config.EnvLocal:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case config.EnvDev:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

// Discard возвращает логгер, который ничего не пишет. Используется в тестах.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
