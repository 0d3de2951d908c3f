package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipe(t *testing.T) {
	t.Run("ValidRecipe_ShouldCreateSuccessfully", func(t *testing.T) {
		title := LocalizedText{"de": "Lachs mit Brokkoli", "en": "Salmon with broccoli"}

		rec, err := NewRecipe(title, CategoryDinner)

		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.NotEqual(t, uuid.Nil, rec.ID)
		assert.Equal(t, CategoryDinner, rec.Category)
		assert.NotZero(t, rec.CreatedAt)

		events := rec.Events()
		require.Len(t, events, 1)
		created, ok := events[0].(CreatedEvent)
		require.True(t, ok)
		assert.Equal(t, rec.ID, created.RecipeID)
		assert.Equal(t, "Lachs mit Brokkoli", created.Title)
	})

	t.Run("MissingGermanTitle_ShouldReturnError", func(t *testing.T) {
		rec, err := NewRecipe(LocalizedText{}, CategoryDinner)

		assert.Nil(t, rec)
		assert.ErrorIs(t, err, ErrTitleMissing)
	})

	t.Run("InvalidCategory_ShouldReturnError", func(t *testing.T) {
		rec, err := NewRecipe(LocalizedText{"de": "Suppe"}, Category("brunch"))

		assert.Nil(t, rec)
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})
}

func TestRecipeValidate(t *testing.T) {
	rec := Recipe{
		Title:    LocalizedText{"de": "Omelett"},
		Category: CategoryBreakfast,
		Ingredients: []Ingredient{
			{Name: LocalizedText{"de": "Eier"}, Amount: 3, Unit: "Stk"},
		},
	}
	assert.NoError(t, rec.Validate())

	rec.Ingredients = append(rec.Ingredients, Ingredient{Amount: 1})
	assert.Error(t, rec.Validate())
}

func TestNewCustomCopy(t *testing.T) {
	original, err := NewRecipe(LocalizedText{"de": "Quinoa Bowl"}, CategoryLunch)
	require.NoError(t, err)
	original.Tags = []string{"vegan"}
	original.IsAIGenerated = true
	ownerID := uuid.New()

	copy := original.NewCustomCopy(ownerID)

	assert.NotEqual(t, original.ID, copy.ID)
	assert.True(t, copy.IsCustom)
	require.NotNil(t, copy.OriginalRecipeID)
	assert.Equal(t, original.ID, *copy.OriginalRecipeID)
	require.NotNil(t, copy.OwnerID)
	assert.Equal(t, ownerID, *copy.OwnerID)
	assert.Equal(t, original.Tags, copy.Tags)

	// The source recipe is untouched
	assert.False(t, original.IsCustom)
	assert.Nil(t, original.OwnerID)

	events := copy.Events()
	require.Len(t, events, 1)
	customized, ok := events[0].(CustomizedEvent)
	require.True(t, ok)
	assert.Equal(t, original.ID, customized.OriginalID)
}

func TestIngredientNames(t *testing.T) {
	rec := Recipe{
		Ingredients: []Ingredient{
			{Name: LocalizedText{"de": "Süßkartoffeln"}},
			{Name: LocalizedText{"en": "Kale"}},
			{},
		},
	}

	names := rec.IngredientNames()

	require.Len(t, names, 3)
	assert.Equal(t, "süßkartoffeln", names[0])
	assert.Equal(t, "kale", names[1])
	assert.Equal(t, "", names[2])
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("  Dinner ")
	require.NoError(t, err)
	assert.Equal(t, CategoryDinner, c)

	_, err = ParseCategory("brunch")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestLocalizedTextFallback(t *testing.T) {
	text := LocalizedText{"de": "Haferflocken", "en": "Oats"}
	assert.Equal(t, "Oats", text.Get("en"))
	assert.Equal(t, "Haferflocken", text.Get("fr"))
	assert.Equal(t, "Haferflocken", text.Get(""))

	var nilText LocalizedText
	assert.Equal(t, "", nilText.Get("de"))

	englishOnly := LocalizedText{"en": "Porridge"}
	assert.Equal(t, "Porridge", englishOnly.Get("de"))
}
