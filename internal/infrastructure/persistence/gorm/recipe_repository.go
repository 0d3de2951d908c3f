package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunara/wellness/internal/domain/recipe"
	"github.com/lunara/wellness/internal/ports/outbound"
)

// RecipeRepository implements the global recipe pool over the shared recipes
// table. Global rows are the ones without an owner.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new global recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new global recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model, err := RecipeToModel(rec)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing global recipe
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	model, err := RecipeToModel(rec)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("recipe not found")
	}
	return nil
}

// Delete soft-deletes a global recipe
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("owner_id IS NULL").
		Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("recipe not found")
	}
	return nil
}

// FindByID finds a global recipe by ID. Returns nil without error when no
// such recipe exists.
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).
		Where("owner_id IS NULL").
		First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ModelToRecipe(&model)
}

// List returns all global recipes, newest first
func (r *RecipeRepository) List(ctx context.Context) ([]recipe.Recipe, error) {
	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Where("owner_id IS NULL").
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToRecipes(models)
}

// ListByCategory returns global recipes in one category, newest first
func (r *RecipeRepository) ListByCategory(ctx context.Context, category recipe.Category) ([]recipe.Recipe, error) {
	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Where("owner_id IS NULL AND category = ?", string(category)).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToRecipes(models)
}

// UserRecipeRepository implements the per-user recipe pool: custom copies
// and AI-generated batches
type UserRecipeRepository struct {
	db *gorm.DB
}

// NewUserRecipeRepository creates a new user recipe repository
func NewUserRecipeRepository(db *gorm.DB) outbound.UserRecipeRepository {
	return &UserRecipeRepository{db: db}
}

// Create creates a new user recipe
func (r *UserRecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model, err := RecipeToModel(rec)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// BulkCreate inserts a batch of user recipes in one statement
func (r *UserRecipeRepository) BulkCreate(ctx context.Context, recs []recipe.Recipe) error {
	if len(recs) == 0 {
		return nil
	}
	models := make([]*RecipeModel, len(recs))
	for i := range recs {
		model, err := RecipeToModel(&recs[i])
		if err != nil {
			return err
		}
		models[i] = model
	}
	return r.db.WithContext(ctx).Create(models).Error
}

// Update updates an existing user recipe
func (r *UserRecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	model, err := RecipeToModel(rec)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("recipe not found")
	}
	return nil
}

// Delete soft-deletes a user recipe
func (r *UserRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("owner_id IS NOT NULL").
		Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("recipe not found")
	}
	return nil
}

// FindByID finds a user recipe by ID. Returns nil without error when no such
// recipe exists.
func (r *UserRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).
		Where("owner_id IS NOT NULL").
		First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ModelToRecipe(&model)
}

// ListByUser returns all of a user's recipes, newest first
func (r *UserRecipeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]recipe.Recipe, error) {
	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToRecipes(models)
}

// DeleteAIGenerated removes a user's AI-generated recipes ahead of a pool
// regeneration and reports how many were removed
func (r *UserRecipeRepository) DeleteAIGenerated(ctx context.Context, userID uuid.UUID) (int, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_ai_generated = ?", userID, true).
		Delete(&RecipeModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func modelsToRecipes(models []RecipeModel) ([]recipe.Recipe, error) {
	recipes := make([]recipe.Recipe, len(models))
	for i := range models {
		rec, err := ModelToRecipe(&models[i])
		if err != nil {
			return nil, err
		}
		recipes[i] = *rec
	}
	return recipes, nil
}
