// Package metrics считает статистику пользователя по приёмам пищи.
package metrics

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/daily-diet/internal/models"
)

// Repository возвращает приёмы пищи пользователя.
type Repository interface {
	ListMeals(ctx context.Context, ownerID string) ([]*models.Meal, error)
}

// Service строит статистику по данным из Repository.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// ForUser возвращает статистику по всем приёмам пищи пользователя userID.
func (s *Service) ForUser(ctx context.Context, userID string) (models.Metrics, error) {
	const op = "metrics.ForUser"
	list, err := s.repo.ListMeals(ctx, userID)
	if err != nil {
		return models.Metrics{}, fmt.Errorf("%s: %w", op, err)
	}
	return Aggregate(list), nil
}

// Aggregate считает статистику по списку приёмов пищи.
//
// BestSequenceOfMealsOnDiet — наибольшее число приёмов пищи с одинаковым
// значением RegisteredAt. Значение сравнивается как строка, без разбора даты.
// Для пустого списка все поля равны нулю.
func Aggregate(list []*models.Meal) models.Metrics {
	var res models.Metrics
	groups := make(map[string]int, len(list))

	for _, meal := range list {
		if meal == nil {
			continue
		}
		res.TotalNumberOfMeals++
		if meal.IsOnTheDietPlan {
			res.TotalNumberOfMealsOnDiet++
		} else {
			res.TotalNumberOfMealsOffDiet++
		}

		groups[meal.RegisteredAt]++
		if groups[meal.RegisteredAt] > res.BestSequenceOfMealsOnDiet {
			res.BestSequenceOfMealsOnDiet = groups[meal.RegisteredAt]
		}
	}
	return res
}
