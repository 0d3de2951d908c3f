// Package personalization scores, ranks and validates recipes against a
// user's nutrition profile. Everything in this package is pure and
// deterministic: no I/O, no shared state, safe for concurrent use. All
// weights and thresholds are fixed business policy, not nutritional truth.
package personalization

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
)

// ErrNilRecipe signals a contract violation by the caller, not a data problem
var ErrNilRecipe = errors.New("personalization: recipe must not be nil")

// MatchLevel is the coarse classification of how well a recipe fits a profile
type MatchLevel string

const (
	MatchPerfect MatchLevel = "perfect"
	MatchGood    MatchLevel = "good"
	MatchPartial MatchLevel = "partial"
	MatchPoor    MatchLevel = "poor"

	// MatchNone marks recipes that were passed through unscored because no
	// profile was available.
	MatchNone MatchLevel = ""
)

// ScoredRecipe is a recipe annotated with its personalization result.
// The embedded recipe is a copy; scoring never mutates its input, since the
// same recipe is scored differently per profile and context.
type ScoredRecipe struct {
	recipe.Recipe

	Score            int        `json:"personalized_score"`
	MatchLevel       MatchLevel `json:"match_level,omitempty"`
	Issues           []string   `json:"profile_issues,omitempty"`
	PreferredMatches int        `json:"preferred_ingredient_count"`
}

// Scoring weights. The carb and calorie terms are tiered by distance from the
// target; preferred ingredients pay out twice, once per match and once as a
// count bonus. Both layers are intentional.
const (
	hormoneFriendlyBonus = 15

	carbPreferredBonus = 10
	carbWithinMaxBonus = 5
	carbOverPenalty    = 5
	carbFarOverPenalty = 15
	carbFarOverFactor  = 1.5

	caloriePerfectBonus   = 10
	calorieGoodBonus      = 5
	calorieAcceptPenalty  = 2
	calorieFarPenalty     = 8
	caloriePerfectRange   = 100
	calorieGoodRange      = 200
	calorieAcceptRange    = 350

	preferredMatchBonus = 8
	preferredManyBonus  = 10
	preferredSomeBonus  = 5
	preferredManyCount  = 3
)

// Score evaluates a single recipe against a nutrition profile.
//
// A nil profile returns the recipe unscored with MatchNone; a nil recipe is a
// programmer error. mealsPerDay overrides the profile's meal structure when
// positive, e.g. when scoring a snack slot separately from main meals.
func Score(rec *recipe.Recipe, prof *profile.NutritionProfile, mealsPerDay int) (ScoredRecipe, error) {
	if rec == nil {
		return ScoredRecipe{}, ErrNilRecipe
	}
	if prof == nil {
		return ScoredRecipe{Recipe: *rec}, nil
	}
	return score(*rec, prof.Normalize(), mealsPerDay), nil
}

// score does the actual work over a normalized profile
func score(rec recipe.Recipe, prof profile.NutritionProfile, mealsPerDay int) ScoredRecipe {
	if mealsPerDay <= 0 {
		mealsPerDay = prof.MealsPerDay
	}

	total := 0
	var issues []string

	if rec.HormoneFriendly {
		total += hormoneFriendlyBonus
	}

	// Carbohydrate term. The max boundary is inclusive; crossing it starts
	// penalizing.
	carbs := rec.MacrosPerPortion.Carbs
	carbRange := prof.CarbTarget.Range()
	switch {
	case carbs <= carbRange.PreferredGrams:
		total += carbPreferredBonus
	case carbs <= carbRange.MaxGrams:
		total += carbWithinMaxBonus
	case carbs <= carbRange.MaxGrams*carbFarOverFactor:
		total -= carbOverPenalty
		issues = append(issues, fmt.Sprintf("carbs somewhat above target (%.0f g vs %.0f g target)", carbs, carbRange.MaxGrams))
	default:
		total -= carbFarOverPenalty
		issues = append(issues, fmt.Sprintf("carbs well above target (%.0f g vs %.0f g target)", carbs, carbRange.MaxGrams))
	}

	// Calorie term, relative to the per-meal share of the daily target.
	calories := rec.MacrosPerPortion.Calories
	perMeal := prof.CaloriesPerMealWith(mealsPerDay)
	diff := math.Abs(calories - perMeal)
	switch {
	case diff <= caloriePerfectRange:
		total += caloriePerfectBonus
	case diff <= calorieGoodRange:
		total += calorieGoodBonus
	case diff <= calorieAcceptRange:
		total -= calorieAcceptPenalty
	default:
		total -= calorieFarPenalty
		direction := "lower"
		if calories > perMeal {
			direction = "higher"
		}
		issues = append(issues, fmt.Sprintf("calories %s than optimal (%.0f kcal deviation)", direction, diff))
	}

	// Preferred-ingredient bonus: +8 per matched preference, then a count
	// bonus on top. Matching is case-insensitive substring against the
	// ingredient names.
	names := rec.IngredientNames()
	matches := 0
	for _, foods := range prof.PreferredFoods {
		for _, food := range foods {
			needle := strings.ToLower(food)
			for _, name := range names {
				if strings.Contains(name, needle) {
					total += preferredMatchBonus
					matches++
					break
				}
			}
		}
	}
	switch {
	case matches >= preferredManyCount:
		total += preferredManyBonus
	case matches >= 1:
		total += preferredSomeBonus
	}

	return ScoredRecipe{
		Recipe:           rec,
		Score:            total,
		MatchLevel:       classify(total),
		Issues:           issues,
		PreferredMatches: matches,
	}
}

// classify derives the match level from the final cumulative score. Only the
// final score counts; no intermediate level sticks.
func classify(total int) MatchLevel {
	switch {
	case total >= 25:
		return MatchPerfect
	case total >= 10:
		return MatchGood
	case total >= -5:
		return MatchPartial
	default:
		return MatchPoor
	}
}
