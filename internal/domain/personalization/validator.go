package personalization

import (
	"fmt"
	"math"
	"strings"

	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
)

// validationCalorieTolerance is deliberately more lenient than the ranking
// buckets: validation flags saved favorites and planned meals, where a hard
// cutoff would be annoying.
const validationCalorieTolerance = 200

// Validation is the result of checking a recipe against a profile
type Validation struct {
	IsValid bool     `json:"is_valid"`
	Reasons []string `json:"reasons,omitempty"`
}

// Validate checks whether a previously saved recipe still fits the user's
// current profile. A missing recipe or profile validates trivially; this is
// advisory, not access control.
//
// At most one reason is emitted per rule; multiple matched exclusions are
// enumerated together in a single reason.
func Validate(rec *recipe.Recipe, prof *profile.NutritionProfile) Validation {
	if rec == nil || prof == nil {
		return Validation{IsValid: true}
	}

	norm := prof.Normalize()
	var reasons []string

	carbs := rec.MacrosPerPortion.Carbs
	carbRange := norm.CarbTarget.Range()
	if carbs > carbRange.MaxGrams {
		reasons = append(reasons, fmt.Sprintf("too many carbs for your %s target (%.0f g > %.0f g)",
			norm.CarbTarget.Label(), carbs, carbRange.MaxGrams))
	}

	calories := rec.MacrosPerPortion.Calories
	perMeal := norm.CaloriesPerMeal()
	if math.Abs(calories-perMeal) > validationCalorieTolerance {
		direction := "low"
		if calories > perMeal {
			direction = "high"
		}
		reasons = append(reasons, fmt.Sprintf("calories too %s for your meal structure (%.0f kcal vs ~%.0f kcal target)",
			direction, calories, perMeal))
	}

	if len(norm.ExcludedFoods) > 0 {
		names := rec.IngredientNames()
		var found []string
		for _, excluded := range norm.ExcludedFoods {
			needle := strings.ToLower(excluded)
			if needle == "" {
				continue
			}
			for _, name := range names {
				if strings.Contains(name, needle) {
					found = append(found, excluded)
					break
				}
			}
		}
		if len(found) > 0 {
			reasons = append(reasons, "contains excluded ingredients: "+strings.Join(found, ", "))
		}
	}

	return Validation{IsValid: len(reasons) == 0, Reasons: reasons}
}
