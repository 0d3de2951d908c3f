package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lunara/wellness/internal/domain/plan"
)

// PlanService builds and serves weekly meal plans
type PlanService interface {
	// GetCurrentPlan returns the plan covering the week of now, or nil
	GetCurrentPlan(ctx context.Context, userID uuid.UUID, now time.Time) (*plan.Plan, error)

	// GenerateWeeklyPlan replaces the current week's plan with a new one
	// drawn from the user's personalized pool. Requires a sufficiently
	// large AI-generated pool.
	GenerateWeeklyPlan(ctx context.Context, userID uuid.UUID, now time.Time) (*plan.Plan, error)

	// ShoppingList aggregates the plan's ingredients per store aisle
	ShoppingList(ctx context.Context, userID uuid.UUID, now time.Time, lang string) ([]plan.ShoppingCategory, error)
}
