// Package meals содержит бизнес-логику работы с приёмами пищи пользователя.
package meals

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/daily-diet/internal/models"
	"github.com/magabrotheeeer/daily-diet/internal/storage"
)

// ErrMealNotFound — приём пищи не найден или принадлежит другому пользователю.
var ErrMealNotFound = errors.New("meal not found")

// Repository определяет методы для работы с приёмами пищи в хранилище.
type Repository interface {
	// CreateMeal сохраняет новый приём пищи.
	CreateMeal(ctx context.Context, meal models.Meal) error
	// GetMeal возвращает приём пищи по ID без учёта владельца.
	GetMeal(ctx context.Context, id string) (*models.Meal, error)
	// GetUserMeal возвращает приём пищи по ID, если он принадлежит ownerID.
	GetUserMeal(ctx context.Context, id, ownerID string) (*models.Meal, error)
	// ListMeals возвращает все приёмы пищи владельца.
	ListMeals(ctx context.Context, ownerID string) ([]*models.Meal, error)
	// UpdateMeal частично обновляет приём пищи владельца и возвращает количество изменённых строк.
	UpdateMeal(ctx context.Context, id, ownerID string, patch models.MealPatch) (int, error)
	// DeleteMeal удаляет приём пищи владельца и возвращает количество удалённых строк.
	DeleteMeal(ctx context.Context, id, ownerID string) (int, error)
}

// Service реализует операции над приёмами пищи.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// List возвращает приёмы пищи пользователя ownerID.
func (s *Service) List(ctx context.Context, ownerID string) ([]*models.Meal, error) {
	const op = "meals.List"
	res, err := s.repo.ListMeals(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Get возвращает приём пищи id, принадлежащий ownerID.
func (s *Service) Get(ctx context.Context, id, ownerID string) (*models.Meal, error) {
	const op = "meals.Get"
	meal, err := s.repo.GetUserMeal(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, storage.ErrMealNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return meal, nil
}

// Create сохраняет новый приём пищи от имени ownerID и возвращает его.
// ID генерируется сервером, переданные ID и владелец игнорируются.
func (s *Service) Create(ctx context.Context, ownerID string, meal models.Meal) (*models.Meal, error) {
	const op = "meals.Create"
	meal.ID = uuid.NewString()
	meal.RegisteredBy = ownerID
	if err := s.repo.CreateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("meal created", slog.String("meal_id", meal.ID), slog.String("user_id", ownerID))
	return &meal, nil
}

// Update применяет patch к приёму пищи id владельца ownerID.
// Отсутствие подходящей строки ошибкой не считается.
func (s *Service) Update(ctx context.Context, id, ownerID string, patch models.MealPatch) error {
	const op = "meals.Update"
	count, err := s.repo.UpdateMeal(ctx, id, ownerID, patch)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		s.log.Debug("meal update matched no rows", slog.String("meal_id", id), slog.String("user_id", ownerID))
	}
	return nil
}

// Exists проверяет, что приём пищи id есть в хранилище, вне зависимости от владельца.
func (s *Service) Exists(ctx context.Context, id string) error {
	const op = "meals.Exists"
	if _, err := s.repo.GetMeal(ctx, id); err != nil {
		if errors.Is(err, storage.ErrMealNotFound) {
			return ErrMealNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет приём пищи id владельца ownerID.
// Чужой приём пищи не удаляется, ошибка при этом не возвращается.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	const op = "meals.Delete"
	count, err := s.repo.DeleteMeal(ctx, id, ownerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		s.log.Debug("meal delete matched no rows", slog.String("meal_id", id), slog.String("user_id", ownerID))
	}
	return nil
}
