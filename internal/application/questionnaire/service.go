// Package questionnaire provides the application layer for questionnaire
// storage. Saving a questionnaire with a nutrition section triggers a full
// recipe pool regeneration so the pool and the profile never diverge.
package questionnaire

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/ports/inbound"
	"github.com/lunara/wellness/internal/ports/outbound"
	"github.com/lunara/wellness/pkg/errors"
)

// QuestionnaireService implements the questionnaire use cases
type QuestionnaireService struct {
	questionnaireRepo outbound.QuestionnaireRepository
	generation        inbound.GenerationService
	logger            *zap.Logger
}

// NewQuestionnaireService creates a new questionnaire service
func NewQuestionnaireService(
	questionnaireRepo outbound.QuestionnaireRepository,
	generation inbound.GenerationService,
	logger *zap.Logger,
) inbound.QuestionnaireService {
	return &QuestionnaireService{
		questionnaireRepo: questionnaireRepo,
		generation:        generation,
		logger:            logger.Named("questionnaire-service"),
	}
}

// Get returns the user's questionnaire, or nil when none exists
func (s *QuestionnaireService) Get(ctx context.Context, userID uuid.UUID) (*profile.Questionnaire, error) {
	q, err := s.questionnaireRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find questionnaire", err)
	}
	return q, nil
}

// Save creates or updates the user's questionnaire. With a nutrition section
// present, the personalized recipe pool is regenerated before Save returns;
// a generation failure fails the whole save so the user never ends up with a
// profile the pool does not reflect.
func (s *QuestionnaireService) Save(ctx context.Context, cmd inbound.SaveQuestionnaireCommand) (*profile.Questionnaire, error) {
	existing, err := s.questionnaireRepo.FindByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("find questionnaire", err)
	}

	now := time.Now()
	q := existing
	if q == nil {
		q = &profile.Questionnaire{
			ID:        uuid.New(),
			UserID:    cmd.UserID,
			CreatedAt: now,
		}
	}
	q.Nutrition = cmd.Nutrition
	q.RecoveryGoals = cmd.RecoveryGoals
	q.Movement = cmd.Movement
	q.UpdatedAt = now

	if err := s.questionnaireRepo.Save(ctx, q); err != nil {
		return nil, errors.NewDatabaseError("save questionnaire", err)
	}

	if q.Nutrition != nil {
		count, err := s.generation.RegeneratePool(ctx, cmd.UserID, q)
		if err != nil {
			s.logger.Error("Pool regeneration failed after questionnaire save",
				zap.String("user_id", cmd.UserID.String()),
				zap.Error(err),
			)
			return nil, err
		}
		s.logger.Info("Questionnaire saved and pool regenerated",
			zap.String("user_id", cmd.UserID.String()),
			zap.Int("pool_size", count),
		)
	}

	return q, nil
}
