package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the recipe domain

// CreatedEvent is raised when a new recipe is created
type CreatedEvent struct {
	RecipeID  uuid.UUID
	Title     string
	Category  Category
	CreatedAt time.Time
}

func (e CreatedEvent) EventName() string {
	return "recipe.created"
}

func (e CreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// CustomizedEvent is raised when a user edit produces a custom copy
type CustomizedEvent struct {
	RecipeID   uuid.UUID
	OriginalID uuid.UUID
	OwnerID    uuid.UUID
	OccurredOn time.Time
}

func (e CustomizedEvent) EventName() string {
	return "recipe.customized"
}

func (e CustomizedEvent) OccurredAt() time.Time {
	return e.OccurredOn
}
