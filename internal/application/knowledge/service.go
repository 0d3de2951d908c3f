// Package knowledge provides the application layer for the article library
package knowledge

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/knowledge"
	"github.com/lunara/wellness/internal/ports/inbound"
	"github.com/lunara/wellness/internal/ports/outbound"
	"github.com/lunara/wellness/pkg/errors"
)

// KnowledgeService implements the article use cases
type KnowledgeService struct {
	articleRepo outbound.ArticleRepository
	logger      *zap.Logger
}

// NewKnowledgeService creates a new knowledge service
func NewKnowledgeService(articleRepo outbound.ArticleRepository, logger *zap.Logger) inbound.KnowledgeService {
	return &KnowledgeService{
		articleRepo: articleRepo,
		logger:      logger.Named("knowledge-service"),
	}
}

// GetArticle returns a published article
func (s *KnowledgeService) GetArticle(ctx context.Context, id uuid.UUID) (*knowledge.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabaseError("find article", err)
	}
	if article == nil || !article.IsPublished() {
		return nil, errors.NewNotFoundError("article")
	}
	return article, nil
}

// ListArticles returns all published articles
func (s *KnowledgeService) ListArticles(ctx context.Context) ([]knowledge.Article, error) {
	articles, err := s.articleRepo.ListPublished(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list articles", err)
	}
	return articles, nil
}
