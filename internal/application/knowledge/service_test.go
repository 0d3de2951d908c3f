package knowledge

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lunara/wellness/internal/domain/knowledge"
	"github.com/lunara/wellness/internal/domain/recipe"
	apperrors "github.com/lunara/wellness/pkg/errors"
)

// MockArticleRepository is a mock implementation of the article repository
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*knowledge.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*knowledge.Article), args.Error(1)
}

func (m *MockArticleRepository) ListPublished(ctx context.Context) ([]knowledge.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]knowledge.Article), args.Error(1)
}

func publishedArticle() *knowledge.Article {
	published := time.Now().Add(-24 * time.Hour)
	return &knowledge.Article{
		ID:          uuid.New(),
		Title:       recipe.LocalizedText{"de": "Hormone verstehen"},
		Content:     recipe.LocalizedText{"de": "..."},
		Category:    "hormones",
		PublishedAt: &published,
	}
}

func TestGetArticle(t *testing.T) {
	article := publishedArticle()
	repo := &MockArticleRepository{}
	repo.On("FindByID", mock.Anything, article.ID).Return(article, nil)

	svc := NewKnowledgeService(repo, zap.NewNop())
	got, err := svc.GetArticle(context.Background(), article.ID)

	require.NoError(t, err)
	assert.Equal(t, article.ID, got.ID)
}

func TestGetArticleMissing(t *testing.T) {
	repo := &MockArticleRepository{}
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	svc := NewKnowledgeService(repo, zap.NewNop())
	_, err := svc.GetArticle(context.Background(), uuid.New())

	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestGetArticleHidesUnpublished(t *testing.T) {
	article := publishedArticle()
	future := time.Now().Add(48 * time.Hour)
	article.PublishedAt = &future

	repo := &MockArticleRepository{}
	repo.On("FindByID", mock.Anything, article.ID).Return(article, nil)

	svc := NewKnowledgeService(repo, zap.NewNop())
	_, err := svc.GetArticle(context.Background(), article.ID)

	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestListArticles(t *testing.T) {
	repo := &MockArticleRepository{}
	repo.On("ListPublished", mock.Anything).
		Return([]knowledge.Article{*publishedArticle(), *publishedArticle()}, nil)

	svc := NewKnowledgeService(repo, zap.NewNop())
	articles, err := svc.ListArticles(context.Background())

	require.NoError(t, err)
	assert.Len(t, articles, 2)
}
