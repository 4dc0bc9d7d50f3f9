package service

import (
	"context"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/telemetry"
)

// ListArticlesFilter narrows and paginates an article listing.
type ListArticlesFilter struct {
	Search   string
	Category string
	Page     int
	PerPage  int
}

// ArticlePage is one page of a filtered article listing.
type ArticlePage struct {
	Items       []*domain.KnowledgeArticle
	Total       int
	Pages       int
	CurrentPage int
}

// ArticleRepositoryInterface defines the repository interface for
// knowledge article persistence
type ArticleRepositoryInterface interface {
	Create(ctx context.Context, a *domain.KnowledgeArticle) error
	GetByID(ctx context.Context, id int) (*domain.KnowledgeArticle, error)
	List(ctx context.Context, filter ListArticlesFilter) (*ArticlePage, error)
	IncrementViews(ctx context.Context, id int) (int, error)
	Update(ctx context.Context, a *domain.KnowledgeArticle) error
	Delete(ctx context.Context, id int) error
}

// ArticleService handles business logic for knowledge-base articles
type ArticleService struct {
	articleRepo ArticleRepositoryInterface
	clock       Clock
}

// NewArticleService creates a new ArticleService instance
func NewArticleService(articleRepo ArticleRepositoryInterface) *ArticleService {
	return &ArticleService{articleRepo: articleRepo, clock: DefaultClock}
}

// NewArticleServiceWithClock creates a new ArticleService with a
// custom clock (for testing)
func NewArticleServiceWithClock(articleRepo ArticleRepositoryInterface, clock Clock) *ArticleService {
	return &ArticleService{articleRepo: articleRepo, clock: clock}
}

// CreateArticleInput represents the input for creating an article
type CreateArticleInput struct {
	Title    string
	Category string
	Type     string
	Content  string
	Tags     []string
	Author   string
	Rating   float64
}

// UpdateArticleInput represents a partial article update. Nil fields
// are left unchanged.
type UpdateArticleInput struct {
	ID       int
	Title    *string
	Category *string
	Type     *string
	Content  *string
	Tags     *[]string
	Author   *string
	Rating   *float64
}

// Create creates a new knowledge article with zero views
func (s *ArticleService) Create(ctx context.Context, input CreateArticleInput) (*domain.KnowledgeArticle, error) {
	ctx, span := telemetry.StartSpan(ctx, "ArticleService.Create", telemetry.SpanAttributes{
		Operation: "create",
	})
	defer span.End()

	now := s.clock()
	article := &domain.KnowledgeArticle{
		Title:     input.Title,
		Category:  input.Category,
		Type:      input.Type,
		Content:   input.Content,
		Tags:      input.Tags,
		Author:    input.Author,
		Views:     0,
		Rating:    input.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if article.Category == "" {
		article.Category = "Strategy"
	}
	if article.Type == "" {
		article.Type = "Article"
	}

	if err := domain.ValidateKnowledgeArticle(article); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid article", err)
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// GetByID retrieves an article and bumps its view counter. The
// returned article reflects the incremented count.
func (s *ArticleService) GetByID(ctx context.Context, id int) (*domain.KnowledgeArticle, error) {
	ctx, span := telemetry.StartSpan(ctx, "ArticleService.GetByID", telemetry.SpanAttributes{
		ArticleID: id,
		Operation: "get",
	})
	defer span.End()

	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.articleRepo.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	article.Views = views

	return article, nil
}

// List retrieves a filtered, paginated article listing
func (s *ArticleService) List(ctx context.Context, filter ListArticlesFilter) (*ArticlePage, error) {
	ctx, span := telemetry.StartSpan(ctx, "ArticleService.List", telemetry.SpanAttributes{
		Operation: "list",
	})
	defer span.End()

	return s.articleRepo.List(ctx, filter)
}

// Update applies a partial update and bumps updated_at
func (s *ArticleService) Update(ctx context.Context, input UpdateArticleInput) (*domain.KnowledgeArticle, error) {
	ctx, span := telemetry.StartSpan(ctx, "ArticleService.Update", telemetry.SpanAttributes{
		ArticleID: input.ID,
		Operation: "update",
	})
	defer span.End()

	article, err := s.articleRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Category != nil {
		article.Category = *input.Category
	}
	if input.Type != nil {
		article.Type = *input.Type
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	if input.Tags != nil {
		article.Tags = *input.Tags
	}
	if input.Author != nil {
		article.Author = *input.Author
	}
	if input.Rating != nil {
		article.Rating = *input.Rating
	}

	article.UpdatedAt = s.clock()

	if err := domain.ValidateKnowledgeArticle(article); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid article", err)
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// Delete removes an article
func (s *ArticleService) Delete(ctx context.Context, id int) error {
	ctx, span := telemetry.StartSpan(ctx, "ArticleService.Delete", telemetry.SpanAttributes{
		ArticleID: id,
		Operation: "delete",
	})
	defer span.End()

	return s.articleRepo.Delete(ctx, id)
}
