package recipe

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunara/wellness/internal/domain/shared"
)

// Favorite is a user's saved recipe. The recipe is snapshotted at save time
// so the favorite stays meaningful even if the source recipe disappears.
type Favorite struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ItemID    uuid.UUID `json:"item_id"`
	ItemType  string    `json:"item_type"`
	ItemData  *Recipe   `json:"item_data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteItemTypeRecipe is currently the only favoritable item type
const FavoriteItemTypeRecipe = "recipe"

// NewFavorite snapshots a recipe as a user favorite
func NewFavorite(userID uuid.UUID, rec *Recipe) *Favorite {
	snapshot := *rec
	snapshot.AggregateRoot = shared.AggregateRoot{}
	return &Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		ItemID:    rec.ID,
		ItemType:  FavoriteItemTypeRecipe,
		ItemData:  &snapshot,
		CreatedAt: time.Now(),
	}
}
