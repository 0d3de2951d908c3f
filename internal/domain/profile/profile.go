// Package profile contains the nutrition profile derived from a user's
// questionnaire. The profile is the single input that drives recipe
// personalization.
package profile

import (
	"time"

	"github.com/google/uuid"
)

// CarbTier classifies a user's daily carbohydrate target
type CarbTier string

const (
	CarbTierKeto     CarbTier = "keto"
	CarbTierLowCarb  CarbTier = "low_carb"
	CarbTierModerate CarbTier = "moderate"
	CarbTierHighCarb CarbTier = "high_carb"
)

// CarbRange holds the per-portion carbohydrate thresholds of a tier, in grams
type CarbRange struct {
	MaxGrams       float64
	PreferredGrams float64
}

// carbRanges is fixed business policy. Changing these numbers changes which
// recipes users see.
var carbRanges = map[CarbTier]CarbRange{
	CarbTierKeto:     {MaxGrams: 30, PreferredGrams: 20},
	CarbTierLowCarb:  {MaxGrams: 75, PreferredGrams: 50},
	CarbTierModerate: {MaxGrams: 125, PreferredGrams: 100},
	CarbTierHighCarb: {MaxGrams: 200, PreferredGrams: 150},
}

var carbLabels = map[CarbTier]string{
	CarbTierKeto:     "Ketogenic",
	CarbTierLowCarb:  "Low-Carb",
	CarbTierModerate: "Balanced",
	CarbTierHighCarb: "Higher-Carb",
}

// Range returns the carb thresholds for the tier.
// Unknown or empty tiers fall back to moderate.
func (t CarbTier) Range() CarbRange {
	if r, ok := carbRanges[t]; ok {
		return r
	}
	return carbRanges[CarbTierModerate]
}

// Label returns the user-facing name of the tier
func (t CarbTier) Label() string {
	if l, ok := carbLabels[t]; ok {
		return l
	}
	return carbLabels[CarbTierModerate]
}

// Default values applied when a questionnaire leaves fields empty
const (
	DefaultDailyCalories = 2000
	DefaultMealsPerDay   = 3
)

// NutritionProfile is a user's nutrition preferences as captured by the
// questionnaire. All fields are optional on the wire; Normalize applies the
// documented defaults so downstream code never has to guess.
type NutritionProfile struct {
	DailyCalories  float64             `json:"daily_calories"`
	CarbTarget     CarbTier            `json:"carb_target"`
	PreferredFoods map[string][]string `json:"preferred_foods"`
	ExcludedFoods  []string            `json:"excluded_foods"`
	MealsPerDay    int                 `json:"meals_per_day"`
	SnacksPerDay   int                 `json:"snacks_per_day"`

	// CalorieDistribution assigns a calorie target per meal slot, keyed
	// "meal1".."mealN" and "snack1".."snackN". Slots without an entry use
	// the plan defaults.
	CalorieDistribution map[string]float64 `json:"calorie_distribution,omitempty"`
}

// Calorie targets for plan slots that have no explicit distribution entry
const (
	DefaultMealCalories  = 500
	DefaultSnackCalories = 200
)

// SlotCalories returns the calorie target for a plan slot key such as
// "meal2" or "snack1", falling back to the slot-type default.
func (p NutritionProfile) SlotCalories(slot string) float64 {
	if c, ok := p.CalorieDistribution[slot]; ok && c > 0 {
		return c
	}
	if len(slot) >= 5 && slot[:5] == "snack" {
		return DefaultSnackCalories
	}
	return DefaultMealCalories
}

// Normalize returns a copy with defaults applied for absent fields
func (p NutritionProfile) Normalize() NutritionProfile {
	if p.DailyCalories <= 0 {
		p.DailyCalories = DefaultDailyCalories
	}
	if p.CarbTarget == "" {
		p.CarbTarget = CarbTierModerate
	}
	if p.MealsPerDay <= 0 {
		p.MealsPerDay = DefaultMealsPerDay
	}
	if p.PreferredFoods == nil {
		p.PreferredFoods = map[string][]string{}
	}
	return p
}

// CaloriesPerMeal returns the per-meal calorie target. A zero meal count is
// treated as one meal so the division is always defined.
func (p NutritionProfile) CaloriesPerMeal() float64 {
	return p.CaloriesPerMealWith(p.MealsPerDay)
}

// CaloriesPerMealWith computes the per-meal target with an explicit meal
// count, used when a caller scores against a different meal structure than
// the stored one.
func (p NutritionProfile) CaloriesPerMealWith(mealsPerDay int) float64 {
	calories := p.DailyCalories
	if calories <= 0 {
		calories = DefaultDailyCalories
	}
	if mealsPerDay < 1 {
		mealsPerDay = 1
	}
	return calories / float64(mealsPerDay)
}

// Questionnaire is the stored questionnaire record. Only the nutrition
// section participates in personalization; the remaining sections are opaque
// to this service and carried through as-is.
type Questionnaire struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"user_id"`
	Nutrition     *NutritionProfile `json:"nutrition,omitempty"`
	RecoveryGoals map[string]any    `json:"recovery_goals,omitempty"`
	Movement      map[string]any    `json:"movement,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NutritionOrNil returns the normalized nutrition section, or nil when the
// questionnaire has none. Callers treat nil as "no personalization".
func (q *Questionnaire) NutritionOrNil() *NutritionProfile {
	if q == nil || q.Nutrition == nil {
		return nil
	}
	n := q.Nutrition.Normalize()
	return &n
}
