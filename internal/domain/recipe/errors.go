package recipe

import "errors"

// Domain errors for recipe operations

var (
	ErrTitleMissing    = errors.New("recipe title is required")
	ErrInvalidCategory = errors.New("invalid recipe category")
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrNotRecipeOwner  = errors.New("only the recipe owner can perform this action")
)
