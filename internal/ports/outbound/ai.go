package outbound

import (
	"context"

	"github.com/lunara/wellness/internal/domain/recipe"
)

// AIService is the generative provider boundary. Implementations talk to an
// OpenAI-compatible chat and image API; the application never assumes retries
// or timeouts beyond what the provider enforces.
type AIService interface {
	// GenerateRecipes asks the provider for a batch of recipes matching the
	// request. The provider decides how strictly it honors the constraints;
	// callers validate the result.
	GenerateRecipes(ctx context.Context, req RecipeGenerationRequest) ([]GeneratedRecipe, error)

	// GenerateImage produces a food photo for the prompt and returns its URL
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// RecipeGenerationRequest describes one LLM recipe batch
type RecipeGenerationRequest struct {
	Count                int
	MealType             recipe.Category
	TargetCalories       float64
	MaxCarbsGrams        float64
	PreferredIngredients []string
	AvoidTitles          []string
}

// GeneratedRecipe mirrors the JSON shape the provider returns for one recipe
type GeneratedRecipe struct {
	Title           recipe.LocalizedText  `json:"title"`
	Category        string                `json:"category"`
	PrepTime        int                   `json:"prep_time"`
	CookTime        int                   `json:"cook_time"`
	DefaultPortions int                   `json:"default_portions"`
	Macros          recipe.Macros         `json:"macros_per_portion"`
	Ingredients     []recipe.Ingredient   `json:"ingredients"`
	Instructions    recipe.LocalizedSteps `json:"instructions"`
	HormoneBenefits recipe.LocalizedText  `json:"hormone_benefits"`
	HormoneFriendly bool                  `json:"hormone_friendly"`
	Difficulty      string                `json:"difficulty"`
	Tags            []string              `json:"tags"`
}
