package service

import (
	"context"
	"testing"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockArticleRepository is a mock implementation of ArticleRepositoryInterface
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(ctx context.Context, a *domain.KnowledgeArticle) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*domain.KnowledgeArticle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KnowledgeArticle), args.Error(1)
}

func (m *MockArticleRepository) List(ctx context.Context, filter ListArticlesFilter) (*ArticlePage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ArticlePage), args.Error(1)
}

func (m *MockArticleRepository) IncrementViews(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockArticleRepository) Update(ctx context.Context, a *domain.KnowledgeArticle) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestArticleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("applies category and type defaults", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		service := NewArticleServiceWithClock(mockRepo, fixedClock(testNow))

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.KnowledgeArticle) bool {
			return a.Category == "Strategy" && a.Type == "Article" && a.Views == 0
		})).Return(nil)

		article, err := service.Create(ctx, CreateArticleInput{
			Title:   "Programmatic Buying Basics",
			Content: "Programmatic buying automates media placement.",
			Author:  "Amanda Smith",
			Rating:  4.5,
		})

		require.NoError(t, err)
		assert.Equal(t, "Strategy", article.Category)
		assert.Equal(t, 0, article.Views)
		assert.Equal(t, testNow, article.CreatedAt)
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		service := NewArticleServiceWithClock(mockRepo, fixedClock(testNow))

		_, err := service.Create(ctx, CreateArticleInput{
			Title:   "Bad Rating",
			Content: "Some content.",
			Rating:  7.2,
		})

		var derr *domain.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, domain.ErrCodeValidation, derr.Code)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestArticleService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("bumps views on read", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		service := NewArticleServiceWithClock(mockRepo, fixedClock(testNow))

		stored := &domain.KnowledgeArticle{ID: 4, Title: "CTV Trends", Views: 11}
		mockRepo.On("GetByID", mock.Anything, 4).Return(stored, nil)
		mockRepo.On("IncrementViews", mock.Anything, 4).Return(12, nil)

		article, err := service.GetByID(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 12, article.Views)
		mockRepo.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		mockRepo := new(MockArticleRepository)
		service := NewArticleServiceWithClock(mockRepo, fixedClock(testNow))

		mockRepo.On("GetByID", mock.Anything, 99).Return(nil, domain.ErrArticleNotFound)

		_, err := service.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrArticleNotFound)
		mockRepo.AssertNotCalled(t, "IncrementViews")
	})
}

func TestArticleService_Update(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockArticleRepository)
	service := NewArticleServiceWithClock(mockRepo, fixedClock(testNow))

	stored := &domain.KnowledgeArticle{ID: 4, Title: "CTV Trends", Category: "Trends", Content: "Connected TV keeps growing.", Rating: 4.0}
	mockRepo.On("GetByID", mock.Anything, 4).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	title := "CTV Trends 2025"
	article, err := service.Update(ctx, UpdateArticleInput{ID: 4, Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "CTV Trends 2025", article.Title)
	assert.Equal(t, "Trends", article.Category)
	assert.Equal(t, testNow, article.UpdatedAt)
}
