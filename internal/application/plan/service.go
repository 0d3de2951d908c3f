// Package plan provides the application layer for weekly meal plans and
// shopping lists.
package plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/personalization"
	"github.com/lunara/wellness/internal/domain/plan"
	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
	"github.com/lunara/wellness/internal/ports/inbound"
	"github.com/lunara/wellness/internal/ports/outbound"
	"github.com/lunara/wellness/pkg/errors"
)

// minPlanPool is how many AI-generated recipes a user needs before a weekly
// plan can be built. Below this the plan would repeat the same few recipes.
const minPlanPool = 20

// PlanService implements the weekly plan use cases
type PlanService struct {
	planRepo          outbound.PlanRepository
	userRecipeRepo    outbound.UserRecipeRepository
	questionnaireRepo outbound.QuestionnaireRepository
	logger            *zap.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(
	planRepo outbound.PlanRepository,
	userRecipeRepo outbound.UserRecipeRepository,
	questionnaireRepo outbound.QuestionnaireRepository,
	logger *zap.Logger,
) inbound.PlanService {
	return &PlanService{
		planRepo:          planRepo,
		userRecipeRepo:    userRecipeRepo,
		questionnaireRepo: questionnaireRepo,
		logger:            logger.Named("plan-service"),
	}
}

// GetCurrentPlan returns the plan covering the week of now, or nil
func (s *PlanService) GetCurrentPlan(ctx context.Context, userID uuid.UUID, now time.Time) (*plan.Plan, error) {
	p, err := s.planRepo.FindByWeek(ctx, userID, WeekStart(now))
	if err != nil {
		return nil, errors.NewDatabaseError("find plan", err)
	}
	return p, nil
}

// GenerateWeeklyPlan replaces the current week's plan with a new one drawn
// from the user's AI-generated pool
func (s *PlanService) GenerateWeeklyPlan(ctx context.Context, userID uuid.UUID, now time.Time) (*plan.Plan, error) {
	q, err := s.questionnaireRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find questionnaire", err)
	}
	prof := q.NutritionOrNil()
	if prof == nil {
		return nil, errors.NewQuestionnaireRequiredError()
	}

	pool, err := s.loadGeneratedPool(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(pool) < minPlanPool {
		return nil, errors.NewPoolTooSmallError(len(pool), minPlanPool)
	}

	weekStart := WeekStart(now)
	if existing, err := s.planRepo.FindByWeek(ctx, userID, weekStart); err != nil {
		return nil, errors.NewDatabaseError("find plan", err)
	} else if existing != nil {
		if err := s.planRepo.Delete(ctx, existing.ID); err != nil {
			return nil, errors.NewDatabaseError("delete old plan", err)
		}
	}

	p := s.buildPlan(userID, weekStart, *prof, pool)
	if err := s.planRepo.Create(ctx, p); err != nil {
		return nil, errors.NewDatabaseError("create plan", err)
	}

	s.logger.Info("Weekly plan generated",
		zap.String("user_id", userID.String()),
		zap.Time("week_start", weekStart),
		zap.Int("meals", len(p.Meals)),
	)

	return p, nil
}

// ShoppingList aggregates the current plan's ingredients per store aisle
func (s *PlanService) ShoppingList(ctx context.Context, userID uuid.UUID, now time.Time, lang string) ([]plan.ShoppingCategory, error) {
	p, err := s.GetCurrentPlan(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NewNotFoundError("plan")
	}
	return plan.BuildShoppingList(p.Meals, lang), nil
}

// buildPlan fills every slot of the week. Per category the ranked pool is
// consumed round-robin across days so consecutive days do not repeat the
// same recipe until the category runs out of candidates.
func (s *PlanService) buildPlan(userID uuid.UUID, weekStart time.Time, prof profile.NutritionProfile, pool []recipe.Recipe) *plan.Plan {
	prof = prof.Normalize()

	picker := newRoundRobinPicker(pool, &prof)
	now := time.Now()

	p := &plan.Plan{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      "weekly",
		WeekStart: weekStart,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, day := range plan.Weekdays {
		for i := 1; i <= prof.MealsPerDay; i++ {
			category := mealCategoryFor(i)
			target := prof.SlotCalories(fmt.Sprintf("meal%d", i))
			if meal := picker.pick(day, category, target); meal != nil {
				p.Meals = append(p.Meals, *meal)
			}
		}
		for i := 1; i <= prof.SnacksPerDay; i++ {
			target := prof.SlotCalories(fmt.Sprintf("snack%d", i))
			if meal := picker.pick(day, recipe.CategorySnack, target); meal != nil {
				p.Meals = append(p.Meals, *meal)
			}
		}
	}

	return p
}

// mealCategoryFor maps a main meal slot index to its category. The first
// meal of the day is breakfast, the second lunch, everything after dinner.
func mealCategoryFor(slot int) recipe.Category {
	switch slot {
	case 1:
		return recipe.CategoryBreakfast
	case 2:
		return recipe.CategoryLunch
	default:
		return recipe.CategoryDinner
	}
}

func (s *PlanService) loadGeneratedPool(ctx context.Context, userID uuid.UUID) ([]recipe.Recipe, error) {
	all, err := s.userRecipeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list user recipes", err)
	}
	pool := make([]recipe.Recipe, 0, len(all))
	for _, r := range all {
		if r.IsAIGenerated {
			pool = append(pool, r)
		}
	}
	return pool, nil
}

// roundRobinPicker hands out ranked recipes per category, cycling when a
// category is exhausted
type roundRobinPicker struct {
	ranked map[recipe.Category][]personalization.ScoredRecipe
	index  map[recipe.Category]int
}

func newRoundRobinPicker(pool []recipe.Recipe, prof *profile.NutritionProfile) *roundRobinPicker {
	ranked := make(map[recipe.Category][]personalization.ScoredRecipe)
	for _, c := range recipe.Categories() {
		ranked[c] = personalization.Rank(pool, prof, c)
	}
	return &roundRobinPicker{ranked: ranked, index: make(map[recipe.Category]int)}
}

func (rr *roundRobinPicker) pick(day string, category recipe.Category, targetCalories float64) *plan.PlannedMeal {
	candidates := rr.ranked[category]
	if len(candidates) == 0 {
		return nil
	}
	chosen := candidates[rr.index[category]%len(candidates)]
	rr.index[category]++

	rec := chosen.Recipe
	return &plan.PlannedMeal{
		ID:        uuid.NewString(),
		DayOfWeek: day,
		Name:      rec.Title.Get(recipe.DefaultLanguage),
		Type:      category,
		Calories:  targetCalories,
		RecipeID:  rec.ID,
		Portions:  plan.ScalePortions(rec.MacrosPerPortion.Calories, targetCalories),
		Recipe:    &rec,
	}
}

// WeekStart returns Monday 00:00 UTC of the week containing t
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -offset)
}
