// Package plan contains weekly meal plans and the shopping list derived
// from them.
package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunara/wellness/internal/domain/recipe"
)

// Weekday keys as stored in plan meals, Monday first
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// PlannedMeal is one slot of a weekly plan. The recipe snapshot is embedded
// so the plan survives edits to the underlying recipe.
type PlannedMeal struct {
	ID             string          `json:"id"`
	DayOfWeek      string          `json:"day_of_week"`
	Name           string          `json:"name"`
	Type           recipe.Category `json:"type"`
	Calories       float64         `json:"calories"`
	RecipeID       uuid.UUID       `json:"recipe_id"`
	Portions       float64         `json:"portions"`
	Recipe         *recipe.Recipe  `json:"recipe,omitempty"`
}

// Plan is a stored weekly plan
type Plan struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	Type      string        `json:"type"`
	WeekStart time.Time     `json:"date"`
	Meals     []PlannedMeal `json:"meals"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// ScalePortions returns the portion multiplier that brings a recipe's base
// calories to the target, rounded to one decimal. A recipe without calorie
// data is assumed at 400 kcal so scaling stays defined.
func ScalePortions(baseCalories, targetCalories float64) float64 {
	if baseCalories <= 0 {
		baseCalories = 400
	}
	factor := targetCalories / baseCalories
	return float64(int(factor*10+0.5)) / 10
}
