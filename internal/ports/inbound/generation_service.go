package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/lunara/wellness/internal/domain/personalization"
	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
)

// GenerationService produces AI recipes for a user's personal pool
type GenerationService interface {
	// RegeneratePool replaces the user's AI-generated recipes with a fresh
	// batch matching the questionnaire. Batches run sequentially to respect
	// provider rate limits; callers surface progress to the user. A run
	// that yields too few recipes fails hard and is not retried here.
	RegeneratePool(ctx context.Context, userID uuid.UUID, q *profile.Questionnaire) (int, error)

	// TopUp generates additional recipes for one meal slot when the ranked
	// pool comes up short, returning them already scored.
	TopUp(ctx context.Context, userID uuid.UUID, q *profile.Questionnaire, mealType recipe.Category, count int) ([]personalization.ScoredRecipe, error)
}
