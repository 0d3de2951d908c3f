package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunara/wellness/internal/domain/recipe"
	"github.com/lunara/wellness/internal/ports/outbound"
)

// FavoriteRepository implements favorite storage
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) outbound.FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create stores a favorite with its recipe snapshot
func (r *FavoriteRepository) Create(ctx context.Context, fav *recipe.Favorite) error {
	model, err := FavoriteToModel(fav)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Delete removes a favorite
func (r *FavoriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&FavoriteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("favorite not found")
	}
	return nil
}

// ListByUser returns the user's favorites of one item type, newest first
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID, itemType string) ([]recipe.Favorite, error) {
	var models []FavoriteModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND item_type = ?", userID, itemType).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	favorites := make([]recipe.Favorite, len(models))
	for i := range models {
		fav, err := ModelToFavorite(&models[i])
		if err != nil {
			return nil, err
		}
		favorites[i] = *fav
	}
	return favorites, nil
}
