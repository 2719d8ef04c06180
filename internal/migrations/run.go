// Package migrations применяет SQL-миграции схемы к базе PostgreSQL.
package migrations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxv5 "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Источник миграций из файловой системы.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// ErrDirty — предыдущая миграция упала на середине, схему нужно чинить вручную.
var ErrDirty = errors.New("schema is dirty")

// Run поднимает схему до последней миграции из каталога dir и возвращает её версию.
// Если новых миграций нет, это не ошибка.
func Run(db *sql.DB, dir string) (uint, error) {
	const op = "migrations.Run"

	driver, err := pgxv5.WithInstance(db, &pgxv5.Config{})
	if err != nil {
		return 0, fmt.Errorf("%s: driver: %w", op, err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "pgx_v5", driver)
	if err != nil {
		return 0, fmt.Errorf("%s: source %s: %w", op, dir, err)
	}

	if _, dirty, err := m.Version(); err == nil && dirty {
		return 0, fmt.Errorf("%s: %w", op, ErrDirty)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("%s: up: %w", op, err)
	}

	version, _, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("%s: version: %w", op, err)
	}
	return version, nil
}
