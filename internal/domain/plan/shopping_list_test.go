package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunara/wellness/internal/domain/recipe"
)

func mealWith(portions float64, ingredients ...recipe.Ingredient) PlannedMeal {
	return PlannedMeal{
		Portions: portions,
		Recipe:   &recipe.Recipe{Ingredients: ingredients},
	}
}

func ingredient(name string, amount float64, unit string) recipe.Ingredient {
	return recipe.Ingredient{Name: recipe.LocalizedText{"de": name}, Amount: amount, Unit: unit}
}

func TestCategorizeIngredient(t *testing.T) {
	assert.Equal(t, "Gemüse & Salat", CategorizeIngredient("Babyspinat"))
	assert.Equal(t, "Proteine", CategorizeIngredient("Lachsfilet"))
	assert.Equal(t, "Milchprodukte", CategorizeIngredient("Griechischer Joghurt"))
	assert.Equal(t, "Sonstiges", CategorizeIngredient("Schokolade"))
}

func TestBuildShoppingListAggregatesByNameAndUnit(t *testing.T) {
	meals := []PlannedMeal{
		mealWith(2, ingredient("Spinat", 100, "g"), ingredient("Lachs", 150, "g")),
		mealWith(1, ingredient("Spinat", 50, "g")),
	}

	categories := BuildShoppingList(meals, "de")

	require.Len(t, categories, 2)
	// Categories are sorted alphabetically
	assert.Equal(t, "Gemüse & Salat", categories[0].Name)
	assert.Equal(t, "Proteine", categories[1].Name)

	require.Len(t, categories[0].Items, 1)
	spinach := categories[0].Items[0]
	assert.Equal(t, "Spinat", spinach.Name)
	// 100 g at 2 portions plus 50 g at 1 portion
	assert.Equal(t, 250.0, spinach.TotalAmount)

	require.Len(t, categories[1].Items, 1)
	assert.Equal(t, 300.0, categories[1].Items[0].TotalAmount)
}

func TestBuildShoppingListSeparatesUnits(t *testing.T) {
	meals := []PlannedMeal{
		mealWith(1, ingredient("Kokosmilch", 200, "ml"), ingredient("Kokosmilch", 1, "Dose")),
	}

	categories := BuildShoppingList(meals, "de")

	require.Len(t, categories, 1)
	assert.Len(t, categories[0].Items, 2)
}

func TestBuildShoppingListDefaultsPortions(t *testing.T) {
	meals := []PlannedMeal{
		mealWith(0, ingredient("Reis", 80, "g")),
	}

	categories := BuildShoppingList(meals, "de")

	require.Len(t, categories, 1)
	assert.Equal(t, 80.0, categories[0].Items[0].TotalAmount)
}

func TestBuildShoppingListSkipsMealsWithoutRecipe(t *testing.T) {
	meals := []PlannedMeal{{Portions: 2}}

	assert.Empty(t, BuildShoppingList(meals, "de"))
}

func TestBuildShoppingListUnnamedIngredient(t *testing.T) {
	meals := []PlannedMeal{
		mealWith(1, recipe.Ingredient{Amount: 1, Unit: "Stk"}),
	}

	categories := BuildShoppingList(meals, "de")

	require.Len(t, categories, 1)
	assert.Equal(t, "Sonstiges", categories[0].Name)
	assert.Equal(t, "Unbekannt", categories[0].Items[0].Name)
}
