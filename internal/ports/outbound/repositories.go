// Package outbound defines the interfaces for outbound ports (secondary/driven
// adapters). These are the interfaces the application uses to reach the
// document store, the cache and the generative providers.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lunara/wellness/internal/domain/diary"
	"github.com/lunara/wellness/internal/domain/knowledge"
	"github.com/lunara/wellness/internal/domain/plan"
	"github.com/lunara/wellness/internal/domain/profile"
	"github.com/lunara/wellness/internal/domain/recipe"
)

// RecipeRepository persists the curated global recipe pool
type RecipeRepository interface {
	Create(ctx context.Context, rec *recipe.Recipe) error
	Update(ctx context.Context, rec *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	// List returns all global recipes, newest first
	List(ctx context.Context) ([]recipe.Recipe, error)
	ListByCategory(ctx context.Context, category recipe.Category) ([]recipe.Recipe, error)
}

// UserRecipeRepository persists per-user recipes: custom copies from edits
// and AI-generated pool entries
type UserRecipeRepository interface {
	Create(ctx context.Context, rec *recipe.Recipe) error
	BulkCreate(ctx context.Context, recs []recipe.Recipe) error
	Update(ctx context.Context, rec *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]recipe.Recipe, error)

	// DeleteAIGenerated removes a user's AI-generated recipes ahead of a
	// pool regeneration and reports how many were removed.
	DeleteAIGenerated(ctx context.Context, userID uuid.UUID) (int, error)
}

// QuestionnaireRepository persists questionnaires, one per user
type QuestionnaireRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*profile.Questionnaire, error)
	Save(ctx context.Context, q *profile.Questionnaire) error
}

// FavoriteRepository persists recipe favorites
type FavoriteRepository interface {
	Create(ctx context.Context, fav *recipe.Favorite) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, itemType string) ([]recipe.Favorite, error)
}

// PlanRepository persists weekly plans
type PlanRepository interface {
	Create(ctx context.Context, p *plan.Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByWeek(ctx context.Context, userID uuid.UUID, weekStart time.Time) (*plan.Plan, error)
}

// DiaryRepository persists diary entries
type DiaryRepository interface {
	Create(ctx context.Context, e *diary.Entry) error
	Update(ctx context.Context, e *diary.Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*diary.Entry, error)
	ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]diary.Entry, error)
}

// ArticleRepository serves the knowledge library
type ArticleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*knowledge.Article, error)
	ListPublished(ctx context.Context) ([]knowledge.Article, error)
}

// CacheRepository is the byte-level cache used for personalized pools
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching a glob pattern, e.g.
	// "pool:<user>:*" when a user's recipe pool changes
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, key string) (bool, error)
}
