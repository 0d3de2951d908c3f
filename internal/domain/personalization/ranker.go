package personalization

import (
	"sort"

	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
)

// Fallback selection thresholds. These numbers directly determine how many
// recipes a user sees; treat them as product policy.
const (
	minGoodMatches   = 8
	goodMatchCap     = 20
	partialFillTo    = 15
	partialFillFloor = 5
	poorFillTo       = 10
	minResultSize    = 5
	safetyNetCap     = 10
)

// Rank scores a recipe pool against a profile and applies tiered fallback
// selection so the result is never uselessly small.
//
// Without a profile it degrades to a plain category filter that preserves the
// incoming order and leaves recipes unscored. With a profile the result is
// ordered by score descending; ties keep their original relative order, so
// ranking the same input twice yields the same output.
func Rank(recipes []recipe.Recipe, prof *profile.NutritionProfile, mealType recipe.Category) []ScoredRecipe {
	base := filterByCategory(recipes, mealType)

	if prof == nil {
		out := make([]ScoredRecipe, len(base))
		for i, r := range base {
			out[i] = ScoredRecipe{Recipe: r}
		}
		return out
	}

	norm := prof.Normalize()
	scored := make([]ScoredRecipe, len(base))
	for i, r := range base {
		scored[i] = score(r, norm, 0)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return selectWithFallback(scored)
}

// selectWithFallback draws from the match tiers in order until the result is
// large enough. Selection only decides which recipes are included; the
// score-descending order from ranking is preserved throughout.
func selectWithFallback(scored []ScoredRecipe) []ScoredRecipe {
	perfectAndGood := filterByLevel(scored, MatchPerfect, MatchGood)

	var result []ScoredRecipe
	if len(perfectAndGood) >= minGoodMatches {
		result = head(perfectAndGood, goodMatchCap)
	} else {
		partial := filterByLevel(scored, MatchPartial)
		take := partialFillTo - len(perfectAndGood)
		if take < partialFillFloor {
			take = partialFillFloor
		}
		result = append(perfectAndGood, head(partial, take)...)

		if len(result) < poorFillTo {
			poor := filterByLevel(scored, MatchPoor)
			result = append(result, head(poor, poorFillTo-len(result))...)
		}
	}

	// Safety net: with a pathological profile even the poor tier can run dry.
	// Rather than show an almost empty list, fall back to the best of the
	// whole pool regardless of tier.
	if len(result) < minResultSize && len(scored) >= minResultSize {
		result = head(scored, safetyNetCap)
	}

	return result
}

func filterByCategory(recipes []recipe.Recipe, mealType recipe.Category) []recipe.Recipe {
	if mealType == "" {
		return recipes
	}
	out := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.Category == mealType {
			out = append(out, r)
		}
	}
	return out
}

func filterByLevel(scored []ScoredRecipe, levels ...MatchLevel) []ScoredRecipe {
	out := make([]ScoredRecipe, 0, len(scored))
	for _, s := range scored {
		for _, level := range levels {
			if s.MatchLevel == level {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func head(scored []ScoredRecipe, n int) []ScoredRecipe {
	if n < 0 {
		n = 0
	}
	if len(scored) > n {
		return scored[:n]
	}
	return scored
}
