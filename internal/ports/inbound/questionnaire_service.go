package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/lunara/wellness/internal/domain/profile"
)

// QuestionnaireService stores the questionnaire and kicks off recipe pool
// regeneration when the nutrition section changes
type QuestionnaireService interface {
	Get(ctx context.Context, userID uuid.UUID) (*profile.Questionnaire, error)

	// Save creates or updates the user's questionnaire. When the nutrition
	// section is present, the personalized recipe pool is regenerated
	// before Save returns; generation failure fails the whole operation so
	// the user is never left with a stale pool silently.
	Save(ctx context.Context, cmd SaveQuestionnaireCommand) (*profile.Questionnaire, error)
}

// SaveQuestionnaireCommand carries a full questionnaire snapshot
type SaveQuestionnaireCommand struct {
	UserID        uuid.UUID
	Nutrition     *profile.NutritionProfile
	RecoveryGoals map[string]any
	Movement      map[string]any
}
