package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunara/wellness/internal/domain/plan"
	"github.com/lunara/wellness/internal/ports/outbound"
)

// PlanRepository implements weekly plan storage
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) outbound.PlanRepository {
	return &PlanRepository{db: db}
}

// Create stores a plan
func (r *PlanRepository) Create(ctx context.Context, p *plan.Plan) error {
	model, err := PlanToModel(p)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete removes a plan
func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PlanModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("plan not found")
	}
	return nil
}

// FindByWeek returns the user's plan for one week, or nil when none exists
func (r *PlanRepository) FindByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*plan.Plan, error) {
	var model PlanModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ModelToPlan(&model)
}
