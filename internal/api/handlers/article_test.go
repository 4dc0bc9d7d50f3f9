package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/service"
)

type MockArticleService struct {
	mock.Mock
}

func (m *MockArticleService) Create(ctx context.Context, input service.CreateArticleInput) (*domain.KnowledgeArticle, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KnowledgeArticle), args.Error(1)
}

func (m *MockArticleService) GetByID(ctx context.Context, id int) (*domain.KnowledgeArticle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KnowledgeArticle), args.Error(1)
}

func (m *MockArticleService) List(ctx context.Context, filter service.ListArticlesFilter) (*service.ArticlePage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticlePage), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, input service.UpdateArticleInput) (*domain.KnowledgeArticle, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KnowledgeArticle), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestArticle() *domain.KnowledgeArticle {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &domain.KnowledgeArticle{
		ID:        1,
		Title:     "Programmatic Buying Basics",
		Category:  "Strategy",
		Type:      "Article",
		Content:   "Programmatic buying automates media placement.",
		Tags:      []string{"programmatic", "dsp"},
		Author:    "Amanda Smith",
		Views:     12,
		Rating:    4.5,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestArticleHandler_List(t *testing.T) {
	mockSvc := new(MockArticleService)
	handler := NewArticleHandler(mockSvc)

	mockSvc.On("List", mock.Anything, service.ListArticlesFilter{
		Search: "programmatic", Category: "Strategy",
	}).Return(&service.ArticlePage{
		Items:       []*domain.KnowledgeArticle{newTestArticle()},
		Total:       1,
		Pages:       1,
		CurrentPage: 1,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/knowledge-base/articles?search=programmatic&category=Strategy", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	articles := body["articles"].([]interface{})
	require.Len(t, articles, 1)
	first := articles[0].(map[string]interface{})
	assert.Equal(t, "Programmatic Buying Basics", first["title"])
	assert.Equal(t, float64(12), first["views"])
}

func TestArticleHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockSvc := new(MockArticleService)
		handler := NewArticleHandler(mockSvc)

		mockSvc.On("GetByID", mock.Anything, 1).Return(newTestArticle(), nil)

		req := requestWithID(http.MethodGet, "/api/knowledge-base/articles/1", nil, map[string]string{"id": "1"})
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc := new(MockArticleService)
		handler := NewArticleHandler(mockSvc)

		mockSvc.On("GetByID", mock.Anything, 99).Return(nil, domain.ErrArticleNotFound)

		req := requestWithID(http.MethodGet, "/api/knowledge-base/articles/99", nil, map[string]string{"id": "99"})
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestArticleHandler_Create(t *testing.T) {
	mockSvc := new(MockArticleService)
	handler := NewArticleHandler(mockSvc)

	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(input service.CreateArticleInput) bool {
		return input.Title == "Programmatic Buying Basics" && input.Rating == 4.5
	})).Return(newTestArticle(), nil)

	body := `{"title":"Programmatic Buying Basics","content":"Programmatic buying automates media placement.","rating":4.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/knowledge-base/articles", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestArticleHandler_Update(t *testing.T) {
	mockSvc := new(MockArticleService)
	handler := NewArticleHandler(mockSvc)

	mockSvc.On("Update", mock.Anything, mock.MatchedBy(func(input service.UpdateArticleInput) bool {
		return input.ID == 1 &&
			input.Rating != nil && *input.Rating == 4.8 &&
			input.Title == nil
	})).Return(newTestArticle(), nil)

	body := `{"rating":4.8}`
	req := requestWithID(http.MethodPut, "/api/knowledge-base/articles/1", []byte(body), map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestArticleHandler_Delete(t *testing.T) {
	mockSvc := new(MockArticleService)
	handler := NewArticleHandler(mockSvc)

	mockSvc.On("Delete", mock.Anything, 1).Return(nil)

	req := requestWithID(http.MethodDelete, "/api/knowledge-base/articles/1", nil, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	handler.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "article deleted", body["message"])
}
