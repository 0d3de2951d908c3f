// Package generation builds a user's personal AI recipe pool. A pool run
// replaces all previously generated recipes with a fresh set matching the
// current questionnaire.
package generation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/personalization"
	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
	"github.com/lunara/wellness/internal/ports/inbound"
	"github.com/lunara/wellness/internal/ports/outbound"
	"github.com/lunara/wellness/pkg/errors"
)

// Pool generation policy. The distribution favors main meals because plans
// draw three of them per day; batches stay small so a single malformed
// provider response costs little.
const (
	batchSize     = 4
	saveChunkSize = 10

	// minUsablePool is the floor below which a run counts as failed.
	// Weekly plans need at least this many recipes to fill a week.
	minUsablePool = 20
)

var poolDistribution = []struct {
	Category recipe.Category
	Count    int
}{
	{recipe.CategoryBreakfast, 22},
	{recipe.CategoryLunch, 25},
	{recipe.CategoryDinner, 25},
	{recipe.CategorySnack, 12},
	{recipe.CategoryDessert, 12},
}

// GenerationService implements the pool generation use cases
type GenerationService struct {
	userRecipeRepo outbound.UserRecipeRepository
	ai             outbound.AIService
	cache          outbound.CacheRepository
	logger         *zap.Logger
}

// NewGenerationService creates a new generation service
func NewGenerationService(
	userRecipeRepo outbound.UserRecipeRepository,
	ai outbound.AIService,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.GenerationService {
	return &GenerationService{
		userRecipeRepo: userRecipeRepo,
		ai:             ai,
		cache:          cache,
		logger:         logger.Named("generation-service"),
	}
}

// RegeneratePool replaces the user's AI-generated recipes with a fresh batch
// matching the questionnaire. The old pool is deleted up front so a partial
// run never mixes recipes from two different profiles.
func (s *GenerationService) RegeneratePool(ctx context.Context, userID uuid.UUID, q *profile.Questionnaire) (int, error) {
	prof := q.NutritionOrNil()
	if prof == nil {
		return 0, errors.NewQuestionnaireRequiredError()
	}

	s.logger.Info("Regenerating recipe pool",
		zap.String("user_id", userID.String()),
		zap.String("carb_target", string(prof.CarbTarget)),
	)

	removed, err := s.userRecipeRepo.DeleteAIGenerated(ctx, userID)
	if err != nil {
		return 0, errors.NewDatabaseError("delete old AI recipes", err)
	}
	if removed > 0 {
		s.logger.Info("Removed previous pool", zap.Int("count", removed))
	}

	var generated []recipe.Recipe
	var seenTitles []string

	for _, slot := range poolDistribution {
		recs, err := s.generateForCategory(ctx, userID, prof, slot.Category, slot.Count, &seenTitles)
		if err != nil {
			// A single failing category does not abort the run; the floor
			// check below decides whether the pool is usable.
			s.logger.Warn("Category generation failed",
				zap.String("category", string(slot.Category)),
				zap.Error(err),
			)
			continue
		}
		generated = append(generated, recs...)
	}

	if len(generated) <= minUsablePool {
		return len(generated), errors.NewPoolTooSmallError(len(generated), minUsablePool+1)
	}

	if err := s.saveInChunks(ctx, generated); err != nil {
		return 0, err
	}

	s.invalidatePool(ctx, userID)

	s.logger.Info("Recipe pool regenerated",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(generated)),
	)

	return len(generated), nil
}

// TopUp generates additional recipes for one meal slot and returns them
// already scored against the profile
func (s *GenerationService) TopUp(ctx context.Context, userID uuid.UUID, q *profile.Questionnaire, mealType recipe.Category, count int) ([]personalization.ScoredRecipe, error) {
	prof := q.NutritionOrNil()
	if prof == nil {
		return nil, errors.NewQuestionnaireRequiredError()
	}
	if count <= 0 {
		return nil, errors.NewInvalidArgumentError("top-up count must be positive")
	}

	var seenTitles []string
	recs, err := s.generateForCategory(ctx, userID, prof, mealType, count, &seenTitles)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.NewGenerationError("recipe provider", fmt.Errorf("no recipes produced for %s", mealType))
	}

	if err := s.saveInChunks(ctx, recs); err != nil {
		return nil, err
	}
	s.invalidatePool(ctx, userID)

	scored := make([]personalization.ScoredRecipe, 0, len(recs))
	for i := range recs {
		sr, err := personalization.Score(&recs[i], prof, 0)
		if err != nil {
			return nil, err
		}
		scored = append(scored, sr)
	}
	return scored, nil
}

// generateForCategory runs sequential small batches until the requested count
// is reached or the provider fails
func (s *GenerationService) generateForCategory(
	ctx context.Context,
	userID uuid.UUID,
	prof *profile.NutritionProfile,
	category recipe.Category,
	count int,
	seenTitles *[]string,
) ([]recipe.Recipe, error) {
	var out []recipe.Recipe

	for remaining := count; remaining > 0; remaining -= batchSize {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		n := batchSize
		if remaining < n {
			n = remaining
		}

		req := outbound.RecipeGenerationRequest{
			Count:                n,
			MealType:             category,
			TargetCalories:       targetCaloriesFor(prof, category),
			MaxCarbsGrams:        prof.CarbTarget.Range().MaxGrams,
			PreferredIngredients: flattenPreferred(prof.PreferredFoods),
			AvoidTitles:          *seenTitles,
		}

		batch, err := s.ai.GenerateRecipes(ctx, req)
		if err != nil {
			if len(out) > 0 {
				// Keep what we have from earlier batches.
				s.logger.Warn("Batch failed mid-category",
					zap.String("category", string(category)),
					zap.Int("have", len(out)),
					zap.Error(err),
				)
				return out, nil
			}
			return nil, errors.NewGenerationError("recipe provider", err)
		}

		for _, gen := range batch {
			rec, err := s.toRecipe(ctx, userID, category, gen)
			if err != nil {
				s.logger.Warn("Discarding malformed generated recipe",
					zap.String("category", string(category)),
					zap.Error(err),
				)
				continue
			}
			out = append(out, *rec)
			*seenTitles = append(*seenTitles, rec.Title.Get(recipe.DefaultLanguage))
		}
	}

	return out, nil
}

// toRecipe converts a provider result into a validated domain recipe and
// attaches a generated image. Image failures are not fatal; the recipe ships
// without a photo.
func (s *GenerationService) toRecipe(ctx context.Context, userID uuid.UUID, category recipe.Category, gen outbound.GeneratedRecipe) (*recipe.Recipe, error) {
	rec, err := recipe.NewRecipe(gen.Title, category)
	if err != nil {
		return nil, err
	}

	rec.MacrosPerPortion = gen.Macros
	rec.Ingredients = gen.Ingredients
	rec.Instructions = gen.Instructions
	rec.HormoneFriendly = gen.HormoneFriendly
	rec.HormoneBenefits = gen.HormoneBenefits
	rec.PrepTimeMinutes = gen.PrepTime
	rec.CookTimeMinutes = gen.CookTime
	if gen.DefaultPortions > 0 {
		rec.DefaultPortions = gen.DefaultPortions
	}
	rec.Tags = gen.Tags
	if d := recipe.DifficultyLevel(gen.Difficulty); d != "" {
		rec.Difficulty = d
	}
	rec.IsAIGenerated = true
	rec.OwnerID = &userID

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	imageURL, err := s.ai.GenerateImage(ctx, imagePrompt(rec))
	if err != nil {
		s.logger.Warn("Image generation failed",
			zap.String("title", rec.Title.Get(recipe.DefaultLanguage)),
			zap.Error(err),
		)
	} else {
		rec.ImageURL = imageURL
	}

	return rec, nil
}

func (s *GenerationService) saveInChunks(ctx context.Context, recs []recipe.Recipe) error {
	for start := 0; start < len(recs); start += saveChunkSize {
		end := start + saveChunkSize
		if end > len(recs) {
			end = len(recs)
		}
		if err := s.userRecipeRepo.BulkCreate(ctx, recs[start:end]); err != nil {
			return errors.NewDatabaseError("bulk save generated recipes", err)
		}
	}
	return nil
}

func (s *GenerationService) invalidatePool(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.DeletePattern(ctx, fmt.Sprintf("pool:%s:*", userID.String())); err != nil {
		s.logger.Warn("Failed to invalidate pool cache", zap.Error(err))
	}
}

// targetCaloriesFor derives the per-portion calorie target for a slot.
// Snacks and desserts aim at the snack default instead of a full meal share.
func targetCaloriesFor(prof *profile.NutritionProfile, category recipe.Category) float64 {
	switch category {
	case recipe.CategorySnack, recipe.CategoryDessert:
		return profile.DefaultSnackCalories
	default:
		return prof.CaloriesPerMeal()
	}
}

func flattenPreferred(preferred map[string][]string) []string {
	var out []string
	for _, foods := range preferred {
		out = append(out, foods...)
	}
	return out
}

func imagePrompt(rec *recipe.Recipe) string {
	return fmt.Sprintf("Professional food photography of %s, natural light, top-down view", rec.Title.Get(recipe.DefaultLanguage))
}
