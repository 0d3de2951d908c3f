package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/personalization"
	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
	"github.com/lunara/wellness/internal/ports/inbound"
	apperrors "github.com/lunara/wellness/pkg/errors"
)

// MockRecipeRepository is a mock implementation of the global recipe repository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) List(ctx context.Context) ([]recipe.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ListByCategory(ctx context.Context, category recipe.Category) ([]recipe.Recipe, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

// MockUserRecipeRepository is a mock implementation of the user recipe repository
type MockUserRecipeRepository struct {
	mock.Mock
}

func (m *MockUserRecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockUserRecipeRepository) BulkCreate(ctx context.Context, recs []recipe.Recipe) error {
	args := m.Called(ctx, recs)
	return args.Error(0)
}

func (m *MockUserRecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockUserRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockUserRecipeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]recipe.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

func (m *MockUserRecipeRepository) DeleteAIGenerated(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockQuestionnaireRepository is a mock implementation of the questionnaire repository
type MockQuestionnaireRepository struct {
	mock.Mock
}

func (m *MockQuestionnaireRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*profile.Questionnaire, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Questionnaire), args.Error(1)
}

func (m *MockQuestionnaireRepository) Save(ctx context.Context, q *profile.Questionnaire) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

// MockFavoriteRepository is a mock implementation of the favorite repository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(ctx context.Context, fav *recipe.Favorite) error {
	args := m.Called(ctx, fav)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID, itemType string) ([]recipe.Favorite, error) {
	args := m.Called(ctx, userID, itemType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Favorite), args.Error(1)
}

// MockCacheRepository is a mock implementation of the cache repository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

type serviceMocks struct {
	recipes        *MockRecipeRepository
	userRecipes    *MockUserRecipeRepository
	questionnaires *MockQuestionnaireRepository
	favorites      *MockFavoriteRepository
	cache          *MockCacheRepository
}

func newServiceWithMocks() (*RecipeService, *serviceMocks) {
	m := &serviceMocks{
		recipes:        &MockRecipeRepository{},
		userRecipes:    &MockUserRecipeRepository{},
		questionnaires: &MockQuestionnaireRepository{},
		favorites:      &MockFavoriteRepository{},
		cache:          &MockCacheRepository{},
	}
	svc := NewRecipeService(m.recipes, m.userRecipes, m.questionnaires, m.favorites, m.cache, zap.NewNop()).(*RecipeService)
	return svc, m
}

func globalRecipe(category recipe.Category, calories, carbs float64) recipe.Recipe {
	rec, _ := recipe.NewRecipe(recipe.LocalizedText{"de": fmt.Sprintf("Gericht %s", uuid.NewString()[:8])}, category)
	rec.MacrosPerPortion = recipe.Macros{Calories: calories, Carbs: carbs}
	rec.ClearEvents()
	return *rec
}

func userQuestionnaire(userID uuid.UUID) *profile.Questionnaire {
	return &profile.Questionnaire{
		ID:     uuid.New(),
		UserID: userID,
		Nutrition: &profile.NutritionProfile{
			DailyCalories: 1800,
			CarbTarget:    profile.CarbTierModerate,
			MealsPerDay:   3,
		},
	}
}

func TestGetRecipe(t *testing.T) {
	id := uuid.New()

	t.Run("FoundInGlobalPool", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		rec := globalRecipe(recipe.CategoryDinner, 600, 50)
		rec.ID = id
		m.recipes.On("FindByID", mock.Anything, id).Return(&rec, nil)

		got, err := svc.GetRecipe(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		m.userRecipes.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("FallsBackToUserPool", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		rec := globalRecipe(recipe.CategoryDinner, 600, 50)
		rec.ID = id
		m.recipes.On("FindByID", mock.Anything, id).Return(nil, nil)
		m.userRecipes.On("FindByID", mock.Anything, id).Return(&rec, nil)

		got, err := svc.GetRecipe(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		m.recipes.On("FindByID", mock.Anything, id).Return(nil, nil)
		m.userRecipes.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := svc.GetRecipe(context.Background(), id)

		assert.True(t, apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})
}

func TestListPersonalized(t *testing.T) {
	userID := uuid.New()
	query := inbound.PersonalizedQuery{UserID: userID, MealType: recipe.CategoryBreakfast, Limit: 5}

	t.Run("CacheHitSkipsRepositories", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		cached := []personalization.ScoredRecipe{
			{Recipe: globalRecipe(recipe.CategoryBreakfast, 600, 50), Score: 20, MatchLevel: personalization.MatchGood},
		}
		data, err := json.Marshal(cached)
		require.NoError(t, err)
		key := fmt.Sprintf("pool:%s:breakfast:5", userID)
		m.cache.On("Get", mock.Anything, key).Return(data, nil)

		result, err := svc.ListPersonalized(context.Background(), query)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, 20, result[0].Score)
		m.recipes.AssertNotCalled(t, "List", mock.Anything)
	})

	t.Run("CacheMissRanksAndCaches", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		pool := []recipe.Recipe{
			globalRecipe(recipe.CategoryBreakfast, 600, 50),
			globalRecipe(recipe.CategoryBreakfast, 1200, 250),
			globalRecipe(recipe.CategoryLunch, 600, 50),
		}
		personal := []recipe.Recipe{
			globalRecipe(recipe.CategoryBreakfast, 620, 60),
		}

		m.cache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
		m.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, 15*time.Minute).Return(nil)
		m.questionnaires.On("FindByUser", mock.Anything, userID).Return(userQuestionnaire(userID), nil)
		m.recipes.On("List", mock.Anything).Return(pool, nil)
		m.userRecipes.On("ListByUser", mock.Anything, userID).Return(personal, nil)

		result, err := svc.ListPersonalized(context.Background(), query)

		require.NoError(t, err)
		// Lunch recipe is filtered out, the rest is ranked best first
		require.Len(t, result, 3)
		for _, sr := range result {
			assert.Equal(t, recipe.CategoryBreakfast, sr.Category)
		}
		assert.GreaterOrEqual(t, result[0].Score, result[1].Score)
		m.cache.AssertCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, 15*time.Minute)
	})

	t.Run("LimitCapsTheResult", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		var pool []recipe.Recipe
		for i := 0; i < 12; i++ {
			pool = append(pool, globalRecipe(recipe.CategoryBreakfast, 600, 50))
		}

		m.cache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
		m.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		m.questionnaires.On("FindByUser", mock.Anything, userID).Return(userQuestionnaire(userID), nil)
		m.recipes.On("List", mock.Anything).Return(pool, nil)
		m.userRecipes.On("ListByUser", mock.Anything, userID).Return(nil, nil)

		result, err := svc.ListPersonalized(context.Background(), query)

		require.NoError(t, err)
		assert.Len(t, result, 5)
	})

	t.Run("NoQuestionnaireDegradesGracefully", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		pool := []recipe.Recipe{globalRecipe(recipe.CategoryBreakfast, 600, 50)}

		m.cache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
		m.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		m.questionnaires.On("FindByUser", mock.Anything, userID).Return(nil, nil)
		m.recipes.On("List", mock.Anything).Return(pool, nil)
		m.userRecipes.On("ListByUser", mock.Anything, userID).Return(nil, nil)

		result, err := svc.ListPersonalized(context.Background(), query)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, personalization.MatchNone, result[0].MatchLevel)
	})
}

func TestToggleFavorite(t *testing.T) {
	userID := uuid.New()

	t.Run("AddsWhenNotFavorited", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		rec := globalRecipe(recipe.CategoryDinner, 600, 50)

		m.favorites.On("ListByUser", mock.Anything, userID, recipe.FavoriteItemTypeRecipe).Return(nil, nil)
		m.recipes.On("FindByID", mock.Anything, rec.ID).Return(&rec, nil)
		m.favorites.On("Create", mock.Anything, mock.MatchedBy(func(fav *recipe.Favorite) bool {
			return fav.ItemID == rec.ID && fav.UserID == userID && fav.ItemData != nil
		})).Return(nil)

		favorited, err := svc.ToggleFavorite(context.Background(), userID, rec.ID)

		require.NoError(t, err)
		assert.True(t, favorited)
	})

	t.Run("RemovesWhenAlreadyFavorited", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		rec := globalRecipe(recipe.CategoryDinner, 600, 50)
		existing := recipe.Favorite{ID: uuid.New(), UserID: userID, ItemID: rec.ID, ItemType: recipe.FavoriteItemTypeRecipe}

		m.favorites.On("ListByUser", mock.Anything, userID, recipe.FavoriteItemTypeRecipe).Return([]recipe.Favorite{existing}, nil)
		m.favorites.On("Delete", mock.Anything, existing.ID).Return(nil)

		favorited, err := svc.ToggleFavorite(context.Background(), userID, rec.ID)

		require.NoError(t, err)
		assert.False(t, favorited)
		m.recipes.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("UnknownRecipe", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		id := uuid.New()

		m.favorites.On("ListByUser", mock.Anything, userID, recipe.FavoriteItemTypeRecipe).Return(nil, nil)
		m.recipes.On("FindByID", mock.Anything, id).Return(nil, nil)
		m.userRecipes.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := svc.ToggleFavorite(context.Background(), userID, id)

		assert.True(t, apperrors.Is(err, apperrors.CodeRecipeNotFound))
	})
}

func TestListFavoritesAnnotatesProfileMatch(t *testing.T) {
	userID := uuid.New()
	svc, m := newServiceWithMocks()

	fitting := globalRecipe(recipe.CategoryDinner, 600, 50)
	tooCarby := globalRecipe(recipe.CategoryDinner, 600, 300)
	favorites := []recipe.Favorite{
		{ID: uuid.New(), UserID: userID, ItemID: fitting.ID, ItemData: &fitting},
		{ID: uuid.New(), UserID: userID, ItemID: tooCarby.ID, ItemData: &tooCarby},
	}

	m.favorites.On("ListByUser", mock.Anything, userID, recipe.FavoriteItemTypeRecipe).Return(favorites, nil)
	m.questionnaires.On("FindByUser", mock.Anything, userID).Return(userQuestionnaire(userID), nil)

	dtos, err := svc.ListFavorites(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.True(t, dtos[0].IsProfileMatch)
	assert.False(t, dtos[1].IsProfileMatch)
	assert.NotEmpty(t, dtos[1].ProfileMismatchReasons)
}

func TestUpdateUserRecipe(t *testing.T) {
	userID := uuid.New()
	newTitle := recipe.LocalizedText{"de": "Mein Gericht"}

	t.Run("EditingGlobalRecipeCreatesCopy", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		original := globalRecipe(recipe.CategoryDinner, 600, 50)

		m.recipes.On("FindByID", mock.Anything, original.ID).Return(&original, nil)
		m.userRecipes.On("Create", mock.Anything, mock.MatchedBy(func(rec *recipe.Recipe) bool {
			return rec.IsCustom &&
				rec.ID != original.ID &&
				rec.OriginalRecipeID != nil && *rec.OriginalRecipeID == original.ID &&
				rec.OwnerID != nil && *rec.OwnerID == userID
		})).Return(nil)
		m.cache.On("DeletePattern", mock.Anything, fmt.Sprintf("pool:%s:*", userID)).Return(nil)

		updated, err := svc.UpdateUserRecipe(context.Background(), inbound.UpdateRecipeCommand{
			UserID:   userID,
			RecipeID: original.ID,
			Title:    &newTitle,
		})

		require.NoError(t, err)
		assert.NotEqual(t, original.ID, updated.ID)
		assert.Equal(t, "Mein Gericht", updated.Title.Get("de"))
		m.userRecipes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("EditingOwnCustomCopyUpdatesInPlace", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		custom := globalRecipe(recipe.CategoryDinner, 600, 50)
		custom.IsCustom = true
		custom.OwnerID = &userID

		m.recipes.On("FindByID", mock.Anything, custom.ID).Return(nil, nil)
		m.userRecipes.On("FindByID", mock.Anything, custom.ID).Return(&custom, nil)
		m.userRecipes.On("Update", mock.Anything, mock.Anything).Return(nil)
		m.cache.On("DeletePattern", mock.Anything, mock.Anything).Return(nil)

		updated, err := svc.UpdateUserRecipe(context.Background(), inbound.UpdateRecipeCommand{
			UserID:   userID,
			RecipeID: custom.ID,
			Title:    &newTitle,
		})

		require.NoError(t, err)
		assert.Equal(t, custom.ID, updated.ID)
		m.userRecipes.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("EditingSomeoneElsesCopyCreatesOwnCopy", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		other := uuid.New()
		custom := globalRecipe(recipe.CategoryDinner, 600, 50)
		custom.IsCustom = true
		custom.OwnerID = &other

		m.recipes.On("FindByID", mock.Anything, custom.ID).Return(nil, nil)
		m.userRecipes.On("FindByID", mock.Anything, custom.ID).Return(&custom, nil)
		m.userRecipes.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.cache.On("DeletePattern", mock.Anything, mock.Anything).Return(nil)

		updated, err := svc.UpdateUserRecipe(context.Background(), inbound.UpdateRecipeCommand{
			UserID:   userID,
			RecipeID: custom.ID,
			Title:    &newTitle,
		})

		require.NoError(t, err)
		assert.NotEqual(t, custom.ID, updated.ID)
		require.NotNil(t, updated.OwnerID)
		assert.Equal(t, userID, *updated.OwnerID)
	})
}

func TestDeleteUserRecipe(t *testing.T) {
	userID := uuid.New()

	t.Run("OwnerCanDelete", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		rec := globalRecipe(recipe.CategoryDinner, 600, 50)
		rec.OwnerID = &userID

		m.userRecipes.On("FindByID", mock.Anything, rec.ID).Return(&rec, nil)
		m.userRecipes.On("Delete", mock.Anything, rec.ID).Return(nil)
		m.cache.On("DeletePattern", mock.Anything, mock.Anything).Return(nil)

		assert.NoError(t, svc.DeleteUserRecipe(context.Background(), userID, rec.ID))
	})

	t.Run("NonOwnerIsForbidden", func(t *testing.T) {
		svc, m := newServiceWithMocks()
		other := uuid.New()
		rec := globalRecipe(recipe.CategoryDinner, 600, 50)
		rec.OwnerID = &other

		m.userRecipes.On("FindByID", mock.Anything, rec.ID).Return(&rec, nil)

		err := svc.DeleteUserRecipe(context.Background(), userID, rec.ID)

		assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))
		m.userRecipes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCreateRecipe(t *testing.T) {
	svc, m := newServiceWithMocks()
	m.recipes.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec, err := svc.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{
		Title:    recipe.LocalizedText{"de": "Linsensalat"},
		Category: recipe.CategoryLunch,
		Macros:   recipe.Macros{Calories: 450, Carbs: 40},
		Ingredients: []recipe.Ingredient{
			{Name: recipe.LocalizedText{"de": "Linsen"}, Amount: 200, Unit: "g"},
		},
		HormoneFriendly: true,
	})

	require.NoError(t, err)
	assert.True(t, rec.HormoneFriendly)
	assert.Nil(t, rec.OwnerID)

	_, err = svc.CreateRecipe(context.Background(), inbound.CreateRecipeCommand{
		Category: recipe.CategoryLunch,
	})
	assert.True(t, apperrors.Is(err, apperrors.CodeValidationFailed))
}
