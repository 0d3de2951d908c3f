package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lunara/wellness/internal/domain/diary"
	"github.com/lunara/wellness/internal/domain/plan"
	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
)

// RepositoryTestSuite exercises the GORM repositories against an in-memory
// SQLite database
type RepositoryTestSuite struct {
	suite.Suite
	db  *gormlib.DB
	ctx context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)
	require.NoError(s.T(), AutoMigrate(db))
	s.db = db
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) newRecipe(title string, category recipe.Category) *recipe.Recipe {
	rec, err := recipe.NewRecipe(recipe.LocalizedText{"de": title, "en": title}, category)
	require.NoError(s.T(), err)
	rec.MacrosPerPortion = recipe.Macros{Calories: 520, Protein: 30, Fat: 20, Carbs: 45}
	rec.Ingredients = []recipe.Ingredient{
		{Name: recipe.LocalizedText{"de": "Spinat"}, Amount: 100, Unit: "g"},
		{Name: recipe.LocalizedText{"de": "Lachs"}, Amount: 150, Unit: "g"},
	}
	rec.Instructions = recipe.LocalizedSteps{"de": {"Lachs braten", "Spinat dazugeben"}}
	rec.Tags = []string{"schnell", "proteinreich"}
	rec.HormoneFriendly = true
	rec.ClearEvents()
	return rec
}

func (s *RepositoryTestSuite) TestRecipeRoundTrip() {
	repo := NewRecipeRepository(s.db)
	rec := s.newRecipe("Lachs mit Spinat", recipe.CategoryDinner)

	require.NoError(s.T(), repo.Create(s.ctx, rec))

	got, err := repo.FindByID(s.ctx, rec.ID)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), got)

	s.Equal(rec.Title, got.Title)
	s.Equal(rec.MacrosPerPortion, got.MacrosPerPortion)
	s.Equal(rec.Ingredients, got.Ingredients)
	s.Equal(rec.Instructions, got.Instructions)
	s.Equal(rec.Tags, got.Tags)
	s.True(got.HormoneFriendly)
}

func (s *RepositoryTestSuite) TestRecipeFindMissingReturnsNil() {
	repo := NewRecipeRepository(s.db)

	got, err := repo.FindByID(s.ctx, uuid.New())

	s.NoError(err)
	s.Nil(got)
}

func (s *RepositoryTestSuite) TestGlobalAndUserPoolsAreSeparate() {
	globalRepo := NewRecipeRepository(s.db)
	userRepo := NewUserRecipeRepository(s.db)
	userID := uuid.New()

	global := s.newRecipe("Globales Gericht", recipe.CategoryLunch)
	require.NoError(s.T(), globalRepo.Create(s.ctx, global))

	personal := s.newRecipe("Eigenes Gericht", recipe.CategoryLunch)
	personal.OwnerID = &userID
	personal.IsCustom = true
	require.NoError(s.T(), userRepo.Create(s.ctx, personal))

	// The global repository never surfaces owned rows and vice versa
	got, err := globalRepo.FindByID(s.ctx, personal.ID)
	s.NoError(err)
	s.Nil(got)

	got, err = userRepo.FindByID(s.ctx, global.ID)
	s.NoError(err)
	s.Nil(got)

	globals, err := globalRepo.List(s.ctx)
	s.NoError(err)
	s.Len(globals, 1)

	personals, err := userRepo.ListByUser(s.ctx, userID)
	s.NoError(err)
	s.Len(personals, 1)
}

func (s *RepositoryTestSuite) TestListByCategory() {
	repo := NewRecipeRepository(s.db)
	require.NoError(s.T(), repo.Create(s.ctx, s.newRecipe("Omelett", recipe.CategoryBreakfast)))
	require.NoError(s.T(), repo.Create(s.ctx, s.newRecipe("Salat", recipe.CategoryLunch)))

	breakfasts, err := repo.ListByCategory(s.ctx, recipe.CategoryBreakfast)

	s.NoError(err)
	require.Len(s.T(), breakfasts, 1)
	s.Equal("Omelett", breakfasts[0].Title.Get("de"))
}

func (s *RepositoryTestSuite) TestBulkCreateAndDeleteAIGenerated() {
	repo := NewUserRecipeRepository(s.db)
	userID := uuid.New()
	otherID := uuid.New()

	batch := make([]recipe.Recipe, 6)
	for i := range batch {
		rec := s.newRecipe("KI Gericht", recipe.CategoryDinner)
		rec.IsAIGenerated = true
		rec.OwnerID = &userID
		batch[i] = *rec
	}
	require.NoError(s.T(), repo.BulkCreate(s.ctx, batch))

	custom := s.newRecipe("Eigene Kopie", recipe.CategoryDinner)
	custom.IsCustom = true
	custom.OwnerID = &userID
	require.NoError(s.T(), repo.Create(s.ctx, custom))

	foreign := s.newRecipe("Fremdes KI Gericht", recipe.CategoryDinner)
	foreign.IsAIGenerated = true
	foreign.OwnerID = &otherID
	require.NoError(s.T(), repo.Create(s.ctx, foreign))

	removed, err := repo.DeleteAIGenerated(s.ctx, userID)
	s.NoError(err)
	s.Equal(6, removed)

	// The custom copy and the other user's pool survive
	remaining, err := repo.ListByUser(s.ctx, userID)
	s.NoError(err)
	s.Len(remaining, 1)

	foreignPool, err := repo.ListByUser(s.ctx, otherID)
	s.NoError(err)
	s.Len(foreignPool, 1)
}

func (s *RepositoryTestSuite) TestUserRecipeUpdate() {
	repo := NewUserRecipeRepository(s.db)
	userID := uuid.New()

	rec := s.newRecipe("Vorher", recipe.CategoryDinner)
	rec.IsCustom = true
	rec.OwnerID = &userID
	require.NoError(s.T(), repo.Create(s.ctx, rec))

	rec.Title = recipe.LocalizedText{"de": "Nachher"}
	require.NoError(s.T(), repo.Update(s.ctx, rec))

	got, err := repo.FindByID(s.ctx, rec.ID)
	s.NoError(err)
	require.NotNil(s.T(), got)
	s.Equal("Nachher", got.Title.Get("de"))
}

func (s *RepositoryTestSuite) TestQuestionnaireUpsert() {
	repo := NewQuestionnaireRepository(s.db)
	userID := uuid.New()

	missing, err := repo.FindByUser(s.ctx, userID)
	s.NoError(err)
	s.Nil(missing)

	q := &profile.Questionnaire{
		ID:     uuid.New(),
		UserID: userID,
		Nutrition: &profile.NutritionProfile{
			DailyCalories: 1800,
			CarbTarget:    profile.CarbTierLowCarb,
			MealsPerDay:   3,
			PreferredFoods: map[string][]string{
				"protein": {"Lachs", "Tofu"},
			},
		},
		RecoveryGoals: map[string]any{"sleep": "besser schlafen"},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(s.T(), repo.Save(s.ctx, q))

	// Saving again for the same user updates the existing row
	q.Nutrition.CarbTarget = profile.CarbTierKeto
	require.NoError(s.T(), repo.Save(s.ctx, q))

	got, err := repo.FindByUser(s.ctx, userID)
	s.NoError(err)
	require.NotNil(s.T(), got)
	require.NotNil(s.T(), got.Nutrition)
	s.Equal(profile.CarbTierKeto, got.Nutrition.CarbTarget)
	s.Equal([]string{"Lachs", "Tofu"}, got.Nutrition.PreferredFoods["protein"])

	var count int64
	s.db.Model(&QuestionnaireModel{}).Count(&count)
	s.Equal(int64(1), count)
}

func (s *RepositoryTestSuite) TestFavoriteLifecycle() {
	repo := NewFavoriteRepository(s.db)
	userID := uuid.New()

	rec := s.newRecipe("Lieblingsgericht", recipe.CategoryDinner)
	fav := recipe.NewFavorite(userID, rec)
	require.NoError(s.T(), repo.Create(s.ctx, fav))

	favorites, err := repo.ListByUser(s.ctx, userID, recipe.FavoriteItemTypeRecipe)
	s.NoError(err)
	require.Len(s.T(), favorites, 1)
	s.Equal(rec.ID, favorites[0].ItemID)
	require.NotNil(s.T(), favorites[0].ItemData)
	s.Equal("Lieblingsgericht", favorites[0].ItemData.Title.Get("de"))

	require.NoError(s.T(), repo.Delete(s.ctx, fav.ID))

	favorites, err = repo.ListByUser(s.ctx, userID, recipe.FavoriteItemTypeRecipe)
	s.NoError(err)
	s.Empty(favorites)
}

func (s *RepositoryTestSuite) TestPlanByWeek() {
	repo := NewPlanRepository(s.db)
	userID := uuid.New()
	week := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	rec := s.newRecipe("Wochengericht", recipe.CategoryDinner)
	p := &plan.Plan{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      "weekly",
		WeekStart: week,
		Meals: []plan.PlannedMeal{
			{
				ID:        "monday-meal1",
				DayOfWeek: "monday",
				Name:      "Frühstück",
				Type:      recipe.CategoryBreakfast,
				Calories:  450,
				RecipeID:  rec.ID,
				Portions:  1.2,
				Recipe:    rec,
			},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(s.T(), repo.Create(s.ctx, p))

	got, err := repo.FindByWeek(s.ctx, userID, week)
	s.NoError(err)
	require.NotNil(s.T(), got)
	require.Len(s.T(), got.Meals, 1)
	s.Equal(1.2, got.Meals[0].Portions)
	require.NotNil(s.T(), got.Meals[0].Recipe)

	none, err := repo.FindByWeek(s.ctx, userID, week.AddDate(0, 0, 7))
	s.NoError(err)
	s.Nil(none)

	require.NoError(s.T(), repo.Delete(s.ctx, p.ID))
	gone, err := repo.FindByWeek(s.ctx, userID, week)
	s.NoError(err)
	s.Nil(gone)
}

func (s *RepositoryTestSuite) TestDiaryEntries() {
	repo := NewDiaryRepository(s.db)
	userID := uuid.New()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entry, err := diary.NewEntry(userID, day, 6, 5, 7, []string{"Hitzewallungen"}, "ok")
	require.NoError(s.T(), err)
	require.NoError(s.T(), repo.Create(s.ctx, entry))

	entries, err := repo.ListByUser(s.ctx, userID, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	s.NoError(err)
	require.Len(s.T(), entries, 1)
	s.Equal([]string{"Hitzewallungen"}, entries[0].Symptoms)

	require.NoError(s.T(), entry.Apply(8, 8, 8, nil, "besser"))
	require.NoError(s.T(), repo.Update(s.ctx, entry))

	got, err := repo.FindByID(s.ctx, entry.ID)
	s.NoError(err)
	require.NotNil(s.T(), got)
	s.Equal(8, got.Mood)

	outside, err := repo.ListByUser(s.ctx, userID, day.AddDate(0, 0, 5), day.AddDate(0, 0, 10))
	s.NoError(err)
	s.Empty(outside)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
