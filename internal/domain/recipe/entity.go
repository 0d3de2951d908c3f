// Package recipe contains the core domain logic for recipe content.
// Recipes come from three sources: the curated global pool, AI generation
// batches, and user edits (which produce custom copies).
package recipe

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunara/wellness/internal/domain/shared"
)

// Recipe represents a single recipe content item. Fields map one-to-one to
// the stored document; scoring never mutates a Recipe, it produces a new
// annotated copy in the personalization package.
type Recipe struct {
	shared.AggregateRoot `json:"-"`

	ID    uuid.UUID     `json:"id"`
	Title LocalizedText `json:"title"`

	Category        Category        `json:"category"`
	Difficulty      DifficultyLevel `json:"difficulty,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
	MacrosPerPortion Macros         `json:"macros_per_portion"`
	Ingredients     []Ingredient    `json:"ingredients"`
	Instructions    LocalizedSteps  `json:"instructions"`

	HormoneFriendly bool          `json:"hormone_friendly"`
	HormoneBenefits LocalizedText `json:"hormone_benefits,omitempty"`

	PrepTimeMinutes int     `json:"prep_time,omitempty"`
	CookTimeMinutes int     `json:"cook_time,omitempty"`
	DefaultPortions int     `json:"default_portions,omitempty"`
	ImageURL        string  `json:"image_url,omitempty"`

	// Provenance. Custom copies reference the recipe they were edited from.
	IsCustom         bool       `json:"is_custom"`
	IsAIGenerated    bool       `json:"is_ai_generated"`
	OriginalRecipeID *uuid.UUID `json:"original_recipe_id,omitempty"`
	OwnerID          *uuid.UUID `json:"owner_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRecipe creates a new recipe with validation
func NewRecipe(title LocalizedText, category Category) (*Recipe, error) {
	if title.Get(DefaultLanguage) == "" {
		return nil, ErrTitleMissing
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &Recipe{
		ID:        uuid.New(),
		Title:     title,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.AddEvent(CreatedEvent{
		RecipeID:  r.ID,
		Title:     title.Get(DefaultLanguage),
		Category:  category,
		CreatedAt: now,
	})

	return r, nil
}

// Validate checks the invariants a stored recipe must hold
func (r *Recipe) Validate() error {
	if r.Title.Get(DefaultLanguage) == "" {
		return ErrTitleMissing
	}
	if _, err := ParseCategory(string(r.Category)); err != nil {
		return err
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// NewCustomCopy derives a user-owned editable copy of this recipe. The copy
// gets a fresh identity and remembers where it came from; the source recipe
// is left untouched.
func (r *Recipe) NewCustomCopy(ownerID uuid.UUID) *Recipe {
	now := time.Now()
	originalID := r.ID

	copy := *r
	copy.AggregateRoot = shared.AggregateRoot{}
	copy.ID = uuid.New()
	copy.IsCustom = true
	copy.OriginalRecipeID = &originalID
	copy.OwnerID = &ownerID
	copy.CreatedAt = now
	copy.UpdatedAt = now

	copy.AddEvent(CustomizedEvent{
		RecipeID:   copy.ID,
		OriginalID: originalID,
		OwnerID:    ownerID,
		OccurredOn: now,
	})

	return &copy
}

// IngredientNames returns the normalized (lowercase German) ingredient names.
// Ingredients without a name contribute an empty string, which never matches.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.NormalizedName()
	}
	return names
}
