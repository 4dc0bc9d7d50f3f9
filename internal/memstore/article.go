package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/query"
	"github.com/adresponse/adresponse/internal/service"
)

// ArticleStore is an in-memory knowledge article repository.
type ArticleStore struct {
	mu       sync.RWMutex
	articles map[int]*domain.KnowledgeArticle
}

// NewArticleStore creates an empty ArticleStore.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		articles: make(map[int]*domain.KnowledgeArticle),
	}
}

// Create assigns the highest existing ID plus one and stores a copy of
// the article.
func (s *ArticleStore) Create(ctx context.Context, a *domain.KnowledgeArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = nextMapID(s.articles)
	s.articles[a.ID] = cloneArticle(a)
	return nil
}

// GetByID returns a copy of the article or ErrArticleNotFound.
func (s *ArticleStore) GetByID(ctx context.Context, id int) (*domain.KnowledgeArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

// List returns a filtered page ordered by updated_at descending.
// Search covers title, content and tags.
func (s *ArticleStore) List(ctx context.Context, filter service.ListArticlesFilter) (*service.ArticlePage, error) {
	s.mu.RLock()
	all := make([]*domain.KnowledgeArticle, 0, len(s.articles))
	for _, a := range s.articles {
		all = append(all, cloneArticle(a))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].UpdatedAt.Equal(all[j].UpdatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})

	matched := query.Filter(all, func(a *domain.KnowledgeArticle) bool {
		fields := append([]string{a.Title, a.Content}, a.Tags...)
		return query.MatchesSearch(filter.Search, fields...) &&
			query.MatchesFilter(filter.Category, a.Category, query.AllCategories)
	})

	page := query.Paginate(matched, query.Page{Number: filter.Page, PerPage: filter.PerPage})
	return &service.ArticlePage{
		Items:       page.Items,
		Total:       page.Total,
		Pages:       page.Pages,
		CurrentPage: page.CurrentPage,
	}, nil
}

// IncrementViews bumps the view counter and returns the new count.
func (s *ArticleStore) IncrementViews(ctx context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return 0, domain.ErrArticleNotFound
	}
	a.Views++
	return a.Views, nil
}

// Update replaces the stored article or returns ErrArticleNotFound.
// The stored view counter wins over the caller's copy so concurrent
// reads are never undone.
func (s *ArticleStore) Update(ctx context.Context, a *domain.KnowledgeArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.articles[a.ID]
	if !ok {
		return domain.ErrArticleNotFound
	}
	updated := cloneArticle(a)
	if current.Views > updated.Views {
		updated.Views = current.Views
	}
	s.articles[a.ID] = updated
	return nil
}

// Delete removes the article or returns ErrArticleNotFound.
func (s *ArticleStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(s.articles, id)
	return nil
}

func cloneArticle(a *domain.KnowledgeArticle) *domain.KnowledgeArticle {
	c := *a
	if a.Tags != nil {
		c.Tags = append([]string(nil), a.Tags...)
	}
	return &c
}
