package models

// Metrics — статистика пользователя по приёмам пищи.
type Metrics struct {
	TotalNumberOfMeals        int `json:"totalNumberOfMeals"`
	TotalNumberOfMealsOnDiet  int `json:"totalNumberOfMealsOnDiet"`
	TotalNumberOfMealsOffDiet int `json:"totalNumberOfMealsOffDiet"`
	BestSequenceOfMealsOnDiet int `json:"bestSequenceOfMealsOnDiet"`
}
