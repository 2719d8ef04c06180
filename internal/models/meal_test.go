package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMealPatch_Empty(t *testing.T) {
	name := "soup"
	onDiet := false

	assert.True(t, MealPatch{}.Empty())
	assert.False(t, MealPatch{Name: &name}.Empty())
	assert.False(t, MealPatch{IsOnTheDietPlan: &onDiet}.Empty())
}
