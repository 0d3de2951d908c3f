// Package knowledge contains the editorial article library.
package knowledge

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunara/wellness/internal/domain/recipe"
)

// Article is a published knowledge-base item
type Article struct {
	ID          uuid.UUID            `json:"id"`
	Title       recipe.LocalizedText `json:"title"`
	Summary     recipe.LocalizedText `json:"summary,omitempty"`
	Content     recipe.LocalizedText `json:"content"`
	Category    string               `json:"category"`
	Tags        []string             `json:"tags,omitempty"`
	ImageURL    string               `json:"image_url,omitempty"`
	PublishedAt *time.Time           `json:"published_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// IsPublished reports whether the article is visible to users
func (a *Article) IsPublished() bool {
	return a.PublishedAt != nil && !a.PublishedAt.After(time.Now())
}
