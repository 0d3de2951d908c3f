// Package inbound defines the interfaces for inbound ports (primary/driving
// adapters). HTTP handlers depend on these, never on the application
// implementations directly.
package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/lunara/wellness/internal/domain/personalization"
	"github.com/lunara/wellness/internal/domain/recipe"
)

// RecipeService covers the recipe pool: browsing, personalization, custom
// copies and favorites
type RecipeService interface {
	// Queries
	GetRecipe(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	// ListPersonalized returns the user's recipe pool ranked against their
	// nutrition profile. Without a questionnaire the list degrades to a
	// plain category filter.
	ListPersonalized(ctx context.Context, query PersonalizedQuery) ([]personalization.ScoredRecipe, error)

	// ListFavorites returns the user's favorites annotated with whether
	// they still match the current profile.
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]FavoriteDTO, error)

	// Commands
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*recipe.Recipe, error)

	// UpdateUserRecipe applies an edit. Editing a global or AI recipe
	// produces a user-owned custom copy with a fresh identity; editing an
	// existing custom copy updates it in place.
	UpdateUserRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*recipe.Recipe, error)
	DeleteUserRecipe(ctx context.Context, userID, recipeID uuid.UUID) error

	// ToggleFavorite flips the favorite state and reports the new state
	ToggleFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
}

// PersonalizedQuery selects and ranks recipes for a user
type PersonalizedQuery struct {
	UserID   uuid.UUID
	MealType recipe.Category // empty means all categories
	Limit    int             // 0 means no extra cap beyond the ranking policy
}

// CreateRecipeCommand creates a curated global recipe (admin surface)
type CreateRecipeCommand struct {
	Title           recipe.LocalizedText
	Category        recipe.Category
	Macros          recipe.Macros
	Ingredients     []recipe.Ingredient
	Instructions    recipe.LocalizedSteps
	HormoneFriendly bool
	HormoneBenefits recipe.LocalizedText
	PrepTimeMinutes int
	CookTimeMinutes int
	DefaultPortions int
	ImageURL        string
	Tags            []string
	Difficulty      recipe.DifficultyLevel
}

// UpdateRecipeCommand edits a recipe on behalf of a user. Nil fields keep
// their current value.
type UpdateRecipeCommand struct {
	UserID   uuid.UUID
	RecipeID uuid.UUID

	Title        *recipe.LocalizedText
	Macros       *recipe.Macros
	Ingredients  *[]recipe.Ingredient
	Instructions *recipe.LocalizedSteps
}

// FavoriteDTO is a favorite enriched with profile compatibility info
type FavoriteDTO struct {
	Favorite recipe.Favorite `json:"favorite"`

	IsProfileMatch         bool     `json:"is_profile_match"`
	ProfileMismatchReasons []string `json:"profile_mismatch_reasons,omitempty"`
}
