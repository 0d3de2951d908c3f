package recipe

import (
	"errors"
	"strings"
)

// Value Objects - Immutable objects that describe aspects of the domain

// LocalizedText holds per-language variants of a user-facing string.
// German is the product's primary language and acts as the fallback.
type LocalizedText map[string]string

// DefaultLanguage is used when a requested language has no entry
const DefaultLanguage = "de"

// Get returns the text for lang, falling back to German, then to any entry
func (t LocalizedText) Get(lang string) string {
	if t == nil {
		return ""
	}
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	if s, ok := t[DefaultLanguage]; ok {
		return s
	}
	for _, s := range t {
		return s
	}
	return ""
}

// LocalizedSteps holds per-language instruction lists
type LocalizedSteps map[string][]string

// Get returns the steps for lang, falling back to German
func (s LocalizedSteps) Get(lang string) []string {
	if s == nil {
		return nil
	}
	if steps, ok := s[lang]; ok && len(steps) > 0 {
		return steps
	}
	return s[DefaultLanguage]
}

// Ingredient represents an ingredient in a recipe
type Ingredient struct {
	Name     LocalizedText `json:"name"`
	Amount   float64       `json:"amount"`
	Unit     string        `json:"unit"`
	Optional bool          `json:"optional,omitempty"`
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if i.Name.Get(DefaultLanguage) == "" {
		return errors.New("ingredient name is required")
	}
	if i.Amount < 0 {
		return errors.New("ingredient amount cannot be negative")
	}
	return nil
}

// NormalizedName returns the lowercased German ingredient name used for
// preference and exclusion matching. Missing names match nothing.
func (i Ingredient) NormalizedName() string {
	return strings.ToLower(i.Name.Get(DefaultLanguage))
}

// Macros contains the nutritional values of a single portion.
// Absent values are zero and are scored as zero, never as an error.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber,omitempty"`
}

// Category represents the meal slot a recipe belongs to
type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategorySnack     Category = "snack"
	CategoryDessert   Category = "dessert"
)

// Categories lists all meal categories in plan order
func Categories() []Category {
	return []Category{CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack, CategoryDessert}
}

// ParseCategory normalizes a raw category string
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack, CategoryDessert:
		return c, nil
	}
	return "", ErrInvalidCategory
}

// DifficultyLevel represents recipe difficulty
type DifficultyLevel string

const (
	DifficultyLevelEasy   DifficultyLevel = "easy"
	DifficultyLevelMedium DifficultyLevel = "medium"
	DifficultyLevelHard   DifficultyLevel = "hard"
)
