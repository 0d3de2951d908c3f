// Package recipe provides the application layer for the recipe pool:
// browsing, personalized ranking, custom copies and favorites.
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/personalization"
	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
	"github.com/lunara/wellness/internal/ports/inbound"
	"github.com/lunara/wellness/internal/ports/outbound"
	"github.com/lunara/wellness/pkg/errors"
)

const poolCacheTTL = 15 * time.Minute

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo        outbound.RecipeRepository
	userRecipeRepo    outbound.UserRecipeRepository
	questionnaireRepo outbound.QuestionnaireRepository
	favoriteRepo      outbound.FavoriteRepository
	cache             outbound.CacheRepository
	logger            *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	userRecipeRepo outbound.UserRecipeRepository,
	questionnaireRepo outbound.QuestionnaireRepository,
	favoriteRepo outbound.FavoriteRepository,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		recipeRepo:        recipeRepo,
		userRecipeRepo:    userRecipeRepo,
		questionnaireRepo: questionnaireRepo,
		favoriteRepo:      favoriteRepo,
		cache:             cache,
		logger:            logger.Named("recipe-service"),
	}
}

// GetRecipe retrieves a single recipe from the global pool or, failing that,
// from the per-user pool
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	rec, err := s.findAnyRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.NewRecipeNotFoundError(id.String())
	}
	return rec, nil
}

// ListPersonalized returns the user's combined recipe pool ranked against
// their nutrition profile
func (s *RecipeService) ListPersonalized(ctx context.Context, query inbound.PersonalizedQuery) ([]personalization.ScoredRecipe, error) {
	if cached := s.getCachedPool(ctx, query); cached != nil {
		return cached, nil
	}

	prof, err := s.loadProfile(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	pool, err := s.loadPool(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	ranked := personalization.Rank(pool, prof, query.MealType)
	if query.Limit > 0 && len(ranked) > query.Limit {
		ranked = ranked[:query.Limit]
	}

	s.cachePool(ctx, query, ranked)

	s.logger.Debug("Personalized recipe list built",
		zap.String("user_id", query.UserID.String()),
		zap.String("meal_type", string(query.MealType)),
		zap.Int("pool_size", len(pool)),
		zap.Int("result_size", len(ranked)),
	)

	return ranked, nil
}

// ListFavorites returns favorites annotated with whether each snapshot still
// fits the user's current profile. Favorites never disappear when the profile
// changes; they are flagged instead.
func (s *RecipeService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]inbound.FavoriteDTO, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID, recipe.FavoriteItemTypeRecipe)
	if err != nil {
		return nil, errors.NewDatabaseError("list favorites", err)
	}

	prof, err := s.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]inbound.FavoriteDTO, len(favorites))
	for i, fav := range favorites {
		validation := personalization.Validate(fav.ItemData, prof)
		dtos[i] = inbound.FavoriteDTO{
			Favorite:               fav,
			IsProfileMatch:         validation.IsValid,
			ProfileMismatchReasons: validation.Reasons,
		}
	}
	return dtos, nil
}

// CreateRecipe adds a curated recipe to the global pool
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*recipe.Recipe, error) {
	s.logger.Info("Creating recipe",
		zap.String("title", cmd.Title.Get(recipe.DefaultLanguage)),
		zap.String("category", string(cmd.Category)),
	)

	rec, err := recipe.NewRecipe(cmd.Title, cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	rec.Difficulty = cmd.Difficulty
	rec.Tags = cmd.Tags
	rec.MacrosPerPortion = cmd.Macros
	rec.Ingredients = cmd.Ingredients
	rec.Instructions = cmd.Instructions
	rec.HormoneFriendly = cmd.HormoneFriendly
	rec.HormoneBenefits = cmd.HormoneBenefits
	rec.PrepTimeMinutes = cmd.PrepTimeMinutes
	rec.CookTimeMinutes = cmd.CookTimeMinutes
	if cmd.DefaultPortions > 0 {
		rec.DefaultPortions = cmd.DefaultPortions
	}
	rec.ImageURL = cmd.ImageURL

	if err := rec.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.recipeRepo.Create(ctx, rec); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	return rec, nil
}

// UpdateUserRecipe applies an edit on behalf of a user. Editing a recipe the
// user does not own as a custom copy (a global one, or an AI-generated pool
// entry) produces a fresh user-owned copy; the original is never touched.
func (s *RecipeService) UpdateUserRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*recipe.Recipe, error) {
	rec, err := s.findAnyRecipe(ctx, cmd.RecipeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.NewRecipeNotFoundError(cmd.RecipeID.String())
	}

	editable := rec.IsCustom && rec.OwnerID != nil && *rec.OwnerID == cmd.UserID
	if !editable {
		rec = rec.NewCustomCopy(cmd.UserID)
	}

	applyUpdates(rec, cmd)
	if err := rec.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if editable {
		err = s.userRecipeRepo.Update(ctx, rec)
	} else {
		err = s.userRecipeRepo.Create(ctx, rec)
	}
	if err != nil {
		return nil, errors.NewDatabaseError("save custom recipe", err)
	}

	s.invalidatePool(ctx, cmd.UserID)

	s.logger.Info("Recipe edit saved",
		zap.String("recipe_id", rec.ID.String()),
		zap.String("user_id", cmd.UserID.String()),
		zap.Bool("new_copy", !editable),
	)

	return rec, nil
}

// DeleteUserRecipe removes a recipe the user owns
func (s *RecipeService) DeleteUserRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	rec, err := s.userRecipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return errors.NewDatabaseError("find recipe", err)
	}
	if rec == nil {
		return errors.NewRecipeNotFoundError(recipeID.String())
	}
	if rec.OwnerID == nil || *rec.OwnerID != userID {
		return errors.NewForbiddenError("You can only delete your own recipes")
	}

	if err := s.userRecipeRepo.Delete(ctx, recipeID); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}

	s.invalidatePool(ctx, userID)
	return nil
}

// ToggleFavorite flips the favorite state of a recipe and reports the new
// state. Favoriting snapshots the recipe so later edits to the original do
// not alter the favorite.
func (s *RecipeService) ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID, recipe.FavoriteItemTypeRecipe)
	if err != nil {
		return false, errors.NewDatabaseError("list favorites", err)
	}

	for _, fav := range favorites {
		if fav.ItemID == recipeID {
			if err := s.favoriteRepo.Delete(ctx, fav.ID); err != nil {
				return false, errors.NewDatabaseError("delete favorite", err)
			}
			return false, nil
		}
	}

	rec, err := s.findAnyRecipe(ctx, recipeID)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, errors.NewRecipeNotFoundError(recipeID.String())
	}

	fav := recipe.NewFavorite(userID, rec)
	if err := s.favoriteRepo.Create(ctx, fav); err != nil {
		return false, errors.NewDatabaseError("create favorite", err)
	}
	return true, nil
}

// Helper methods

// findAnyRecipe checks the global pool first, then the per-user pool.
// Returns nil without error when the recipe does not exist.
func (s *RecipeService) findAnyRecipe(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	rec, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if rec != nil {
		return rec, nil
	}

	rec, err = s.userRecipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError("find user recipe", err)
	}
	return rec, nil
}

// loadProfile returns the user's normalized nutrition profile, or nil when
// no questionnaire (or no nutrition section) exists
func (s *RecipeService) loadProfile(ctx context.Context, userID uuid.UUID) (*profile.NutritionProfile, error) {
	q, err := s.questionnaireRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find questionnaire", err)
	}
	return q.NutritionOrNil(), nil
}

// loadPool combines the global pool with the user's own recipes
func (s *RecipeService) loadPool(ctx context.Context, userID uuid.UUID) ([]recipe.Recipe, error) {
	global, err := s.recipeRepo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}
	personal, err := s.userRecipeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list user recipes", err)
	}
	return append(global, personal...), nil
}

func applyUpdates(rec *recipe.Recipe, cmd inbound.UpdateRecipeCommand) {
	if cmd.Title != nil {
		rec.Title = *cmd.Title
	}
	if cmd.Macros != nil {
		rec.MacrosPerPortion = *cmd.Macros
	}
	if cmd.Ingredients != nil {
		rec.Ingredients = *cmd.Ingredients
	}
	if cmd.Instructions != nil {
		rec.Instructions = *cmd.Instructions
	}
	rec.UpdatedAt = time.Now()
}

// Cache operations

func poolCacheKey(query inbound.PersonalizedQuery) string {
	return fmt.Sprintf("pool:%s:%s:%d", query.UserID.String(), query.MealType, query.Limit)
}

func (s *RecipeService) getCachedPool(ctx context.Context, query inbound.PersonalizedQuery) []personalization.ScoredRecipe {
	data, err := s.cache.Get(ctx, poolCacheKey(query))
	if err != nil || data == nil {
		return nil
	}
	var ranked []personalization.ScoredRecipe
	if err := json.Unmarshal(data, &ranked); err != nil {
		return nil
	}
	return ranked
}

func (s *RecipeService) cachePool(ctx context.Context, query inbound.PersonalizedQuery, ranked []personalization.ScoredRecipe) {
	data, err := json.Marshal(ranked)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, poolCacheKey(query), data, poolCacheTTL); err != nil {
		s.logger.Warn("Failed to cache personalized pool", zap.Error(err))
	}
}

// invalidatePool drops every cached ranking for the user. Rankings are keyed
// per meal type and limit, so deletion works over a key set.
func (s *RecipeService) invalidatePool(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.DeletePattern(ctx, fmt.Sprintf("pool:%s:*", userID.String())); err != nil {
		s.logger.Warn("Failed to invalidate pool cache",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}
