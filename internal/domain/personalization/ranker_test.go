package personalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
)

// Recipes that land in known match tiers under testProfile (1800 kcal over
// three meals, moderate carbs): the carb and calorie terms are pinned so the
// tier is determined entirely by the constructor used.
func perfectRecipe() recipe.Recipe { return testRecipe(600, 50, true) } // 35
func goodRecipe() recipe.Recipe    { return testRecipe(600, 50, false) } // 20
func partialRecipe() recipe.Recipe { return testRecipe(600, 140, false) } // 5
func poorRecipe() recipe.Recipe    { return testRecipe(1100, 200, false) } // -23

func lunchRecipe() recipe.Recipe {
	r := goodRecipe()
	r.Category = recipe.CategoryLunch
	return r
}

func repeat(n int, build func() recipe.Recipe) []recipe.Recipe {
	out := make([]recipe.Recipe, n)
	for i := range out {
		out[i] = build()
	}
	return out
}

func TestRankWithoutProfile(t *testing.T) {
	pool := []recipe.Recipe{goodRecipe(), poorRecipe(), lunchRecipe(), perfectRecipe()}

	result := Rank(pool, nil, recipe.CategoryBreakfast)

	require.Len(t, result, 3)
	for i, scored := range result {
		assert.Equal(t, recipe.CategoryBreakfast, scored.Category)
		assert.Equal(t, MatchNone, scored.MatchLevel)
		assert.Equal(t, 0, scored.Score)
		// Incoming order is preserved
		assert.Equal(t, pool[[]int{0, 1, 3}[i]].ID, scored.ID)
	}
}

func TestRankFiltersByCategory(t *testing.T) {
	pool := append(repeat(10, goodRecipe), repeat(5, lunchRecipe)...)

	result := Rank(pool, testProfile(), recipe.CategoryLunch)

	require.NotEmpty(t, result)
	for _, scored := range result {
		assert.Equal(t, recipe.CategoryLunch, scored.Category)
	}
}

func TestRankEmptyCategoryMeansAll(t *testing.T) {
	pool := append(repeat(6, goodRecipe), repeat(6, lunchRecipe)...)

	result := Rank(pool, testProfile(), "")

	assert.Len(t, result, 12)
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	pool := []recipe.Recipe{partialRecipe(), perfectRecipe(), poorRecipe(), goodRecipe(), perfectRecipe()}

	result := Rank(pool, testProfile(), recipe.CategoryBreakfast)

	require.NotEmpty(t, result)
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Score, result[i].Score)
	}
}

func TestRankIsDeterministic(t *testing.T) {
	pool := append(repeat(12, goodRecipe), repeat(12, partialRecipe)...)

	first := Rank(pool, testProfile(), recipe.CategoryBreakfast)
	second := Rank(pool, testProfile(), recipe.CategoryBreakfast)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestRankFallbackTiers(t *testing.T) {
	t.Run("EnoughGoodMatches_CapsAtTwenty", func(t *testing.T) {
		pool := repeat(30, perfectRecipe)

		result := Rank(pool, testProfile(), recipe.CategoryBreakfast)

		assert.Len(t, result, 20)
	})

	t.Run("FewGoodMatches_FillsWithPartials", func(t *testing.T) {
		// 3 good matches fall short of the threshold, so partials top the
		// list up to 15.
		pool := append(repeat(3, goodRecipe), repeat(40, partialRecipe)...)

		result := Rank(pool, testProfile(), recipe.CategoryBreakfast)

		require.Len(t, result, 15)
		assert.Equal(t, MatchGood, result[0].MatchLevel)
		assert.Equal(t, MatchGood, result[2].MatchLevel)
		assert.Equal(t, MatchPartial, result[3].MatchLevel)
	})

	t.Run("FewPartials_FillsWithPoor", func(t *testing.T) {
		pool := append(repeat(4, partialRecipe), repeat(20, poorRecipe)...)

		result := Rank(pool, testProfile(), recipe.CategoryBreakfast)

		// 4 partials, then poor recipes fill up to 10
		require.Len(t, result, 10)
		assert.Equal(t, MatchPartial, result[3].MatchLevel)
		assert.Equal(t, MatchPoor, result[4].MatchLevel)
	})

	t.Run("TinyPool_ReturnsWhatThereIs", func(t *testing.T) {
		pool := repeat(3, poorRecipe)

		result := Rank(pool, testProfile(), recipe.CategoryBreakfast)

		assert.Len(t, result, 3)
	})
}

func TestSelectWithFallbackSafetyNet(t *testing.T) {
	// Unclassified entries are invisible to every tier; the safety net keeps
	// the result from collapsing to nothing.
	scored := make([]ScoredRecipe, 12)
	for i := range scored {
		scored[i] = ScoredRecipe{Recipe: goodRecipe(), Score: 12 - i, MatchLevel: MatchNone}
	}

	result := selectWithFallback(scored)

	assert.Len(t, result, 10)
	assert.Equal(t, 12, result[0].Score)
}

func TestRankAgainstRealisticProfile(t *testing.T) {
	prof := &profile.NutritionProfile{
		DailyCalories:  1600,
		CarbTarget:     profile.CarbTierLowCarb,
		MealsPerDay:    3,
		PreferredFoods: map[string][]string{"protein": {"Lachs"}},
	}

	salmon := testRecipe(520, 40, true, "Lachs", "Brokkoli")
	pasta := testRecipe(780, 160, false, "Pasta", "Sahne")
	pool := []recipe.Recipe{pasta, salmon}

	result := Rank(pool, prof, recipe.CategoryBreakfast)

	require.Len(t, result, 2)
	assert.Equal(t, salmon.ID, result[0].ID)
	assert.Equal(t, MatchPerfect, result[0].MatchLevel)
	assert.Equal(t, 1, result[0].PreferredMatches)
	assert.Equal(t, MatchPoor, result[1].MatchLevel)
}
