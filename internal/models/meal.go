package models

// Meal представляет приём пищи пользователя.
//
// JSON-представление повторяет имена колонок таблицы meals.
type Meal struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	IsOnTheDietPlan bool   `json:"is_on_the_diet_plan"`
	RegisteredAt    string `json:"registered_at"` // Передаётся клиентом, сервер не интерпретирует
	RegisteredBy    string `json:"registered_by"` // ID владельца
}

// MealPatch описывает частичное обновление приёма пищи.
// nil-поле означает, что колонка не меняется.
type MealPatch struct {
	Name            *string
	Description     *string
	RegisteredAt    *string
	IsOnTheDietPlan *bool
}

// Empty сообщает, что в патче нет ни одного поля.
func (p MealPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.RegisteredAt == nil && p.IsOnTheDietPlan == nil
}
