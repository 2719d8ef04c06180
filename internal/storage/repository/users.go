package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/daily-diet/internal/models"
	"github.com/magabrotheeeer/daily-diet/internal/storage"
)

const userColumns = `id, name, email, password_hash, created_at, session_id`

// CreateUser сохраняет нового пользователя.
// Повторный email возвращает storage.ErrUserExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) error {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (id, name, email, password_hash, created_at)
			  VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.DB.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserBySession возвращает пользователя, которому принадлежит сессия sessionID.
func (s *Storage) GetUserBySession(ctx context.Context, sessionID string) (*models.User, error) {
	const op = "storage.GetUserBySession"

	query := `SELECT ` + userColumns + ` FROM users WHERE session_id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateSession записывает новую сессию пользователю.
func (s *Storage) UpdateSession(ctx context.Context, userID, sessionID string) error {
	const op = "storage.UpdateSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET session_id = $1 WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, sessionID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		sessionID sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, err
	}
	if sessionID.Valid {
		u.SessionID = &sessionID.String
	}
	return &u, nil
}
