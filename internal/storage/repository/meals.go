package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/daily-diet/internal/models"
	"github.com/magabrotheeeer/daily-diet/internal/storage"
)

const mealColumns = `id, name, description, is_on_the_diet_plan, registered_at, registered_by`

// CreateMeal вставляет новый приём пищи.
func (s *Storage) CreateMeal(ctx context.Context, meal models.Meal) error {
	const op = "storage.CreateMeal"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO meals (` + mealColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := s.DB.ExecContext(ctx, query,
		meal.ID, meal.Name, meal.Description, meal.IsOnTheDietPlan,
		meal.RegisteredAt, meal.RegisteredBy); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetMeal возвращает приём пищи по ID без учёта владельца.
func (s *Storage) GetMeal(ctx context.Context, id string) (*models.Meal, error) {
	const op = "storage.GetMeal"

	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1`
	m, err := scanMeal(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// GetUserMeal возвращает приём пищи по ID, только если он принадлежит ownerID.
func (s *Storage) GetUserMeal(ctx context.Context, id, ownerID string) (*models.Meal, error) {
	const op = "storage.GetUserMeal"

	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1 AND registered_by = $2`
	m, err := scanMeal(s.DB.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// ListMeals возвращает все приёмы пищи пользователя ownerID.
func (s *Storage) ListMeals(ctx context.Context, ownerID string) ([]*models.Meal, error) {
	const op = "storage.ListMeals"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + mealColumns + ` FROM meals WHERE registered_by = $1`
	rows, err := s.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Meal, 0)
	for rows.Next() {
		var m models.Meal
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.IsOnTheDietPlan,
			&m.RegisteredAt, &m.RegisteredBy); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMeal применяет к приёму пищи только заданные в patch поля и
// возвращает количество изменённых строк. Чужой или отсутствующий приём даёт 0.
func (s *Storage) UpdateMeal(ctx context.Context, id, ownerID string, patch models.MealPatch) (int, error) {
	const op = "storage.UpdateMeal"
	if patch.Empty() {
		return 0, nil
	}

	query, args := buildMealUpdate(id, ownerID, patch)
	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteMeal удаляет приём пищи владельца и возвращает количество удалённых строк.
func (s *Storage) DeleteMeal(ctx context.Context, id, ownerID string) (int, error) {
	const op = "storage.DeleteMeal"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM meals WHERE id = $1 AND registered_by = $2`
	result, err := s.DB.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// buildMealUpdate собирает UPDATE только по непустым полям патча.
// Порядок колонок фиксирован: name, description, registered_at, is_on_the_diet_plan.
func buildMealUpdate(id, ownerID string, patch models.MealPatch) (string, []any) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.RegisteredAt != nil {
		add("registered_at", *patch.RegisteredAt)
	}
	if patch.IsOnTheDietPlan != nil {
		add("is_on_the_diet_plan", *patch.IsOnTheDietPlan)
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf("UPDATE meals SET %s WHERE id = $%d AND registered_by = $%d",
		strings.Join(sets, ", "), len(args)-1, len(args))
	return query, args
}

func scanMeal(row *sql.Row) (*models.Meal, error) {
	var m models.Meal
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.IsOnTheDietPlan,
		&m.RegisteredAt, &m.RegisteredBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrMealNotFound
		}
		return nil, err
	}
	return &m, nil
}
