package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunara/wellness/internal/domain/knowledge"
	"github.com/lunara/wellness/internal/ports/outbound"
)

// ArticleRepository implements the knowledge article store
type ArticleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *gorm.DB) outbound.ArticleRepository {
	return &ArticleRepository{db: db}
}

// FindByID returns one article, or nil when it does not exist
func (r *ArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*knowledge.Article, error) {
	var model ArticleModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ModelToArticle(&model)
}

// ListPublished returns all currently published articles, newest first
func (r *ArticleRepository) ListPublished(ctx context.Context) ([]knowledge.Article, error) {
	var models []ArticleModel
	result := r.db.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_at <= ?", time.Now()).
		Order("published_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	articles := make([]knowledge.Article, len(models))
	for i := range models {
		a, err := ModelToArticle(&models[i])
		if err != nil {
			return nil, err
		}
		articles[i] = *a
	}
	return articles, nil
}
