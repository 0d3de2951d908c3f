package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/ports/outbound"
)

// QuestionnaireRepository implements questionnaire storage, one row per user
type QuestionnaireRepository struct {
	db *gorm.DB
}

// NewQuestionnaireRepository creates a new questionnaire repository
func NewQuestionnaireRepository(db *gorm.DB) outbound.QuestionnaireRepository {
	return &QuestionnaireRepository{db: db}
}

// FindByUser returns the user's questionnaire, or nil when none exists
func (r *QuestionnaireRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*profile.Questionnaire, error) {
	var model QuestionnaireModel
	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ModelToQuestionnaire(&model)
}

// Save upserts the questionnaire keyed by user
func (r *QuestionnaireRepository) Save(ctx context.Context, q *profile.Questionnaire) error {
	model, err := QuestionnaireToModel(q)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}
