package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/adresponse/adresponse/internal/api"
	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/service"
)

type ArticleService interface {
	Create(ctx context.Context, input service.CreateArticleInput) (*domain.KnowledgeArticle, error)
	GetByID(ctx context.Context, id int) (*domain.KnowledgeArticle, error)
	List(ctx context.Context, filter service.ListArticlesFilter) (*service.ArticlePage, error)
	Update(ctx context.Context, input service.UpdateArticleInput) (*domain.KnowledgeArticle, error)
	Delete(ctx context.Context, id int) error
}

type ArticleHandler struct {
	svc ArticleService
}

func NewArticleHandler(svc ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

type CreateArticleRequest struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Type     string   `json:"type"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Author   string   `json:"author"`
	Rating   float64  `json:"rating"`
}

// UpdateArticleRequest is the mutable-field whitelist. Unknown body
// fields are ignored; absent fields are left unchanged.
type UpdateArticleRequest struct {
	Title    *string   `json:"title"`
	Category *string   `json:"category"`
	Type     *string   `json:"type"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	Author   *string   `json:"author"`
	Rating   *float64  `json:"rating"`
}

type ArticleResponse struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Type      string   `json:"type"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	Author    string   `json:"author"`
	Views     int      `json:"views"`
	Rating    float64  `json:"rating"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func articleToResponse(a *domain.KnowledgeArticle) *ArticleResponse {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return &ArticleResponse{
		ID:        a.ID,
		Title:     a.Title,
		Category:  a.Category,
		Type:      a.Type,
		Content:   a.Content,
		Tags:      tags,
		Author:    a.Author,
		Views:     a.Views,
		Rating:    a.Rating,
		CreatedAt: a.CreatedAt.UTC().Format(timestampFormat),
		UpdatedAt: a.UpdatedAt.UTC().Format(timestampFormat),
	}
}

func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := service.ListArticlesFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if perPage, err := strconv.Atoi(q.Get("per_page")); err == nil {
		filter.PerPage = perPage
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	articles := make([]*ArticleResponse, len(page.Items))
	for i, a := range page.Items {
		articles[i] = articleToResponse(a)
	}

	api.Success(w, http.StatusOK, api.Payload{
		"articles":     articles,
		"total":        page.Total,
		"pages":        page.Pages,
		"current_page": page.CurrentPage,
	})
}

func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}

	article, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"article": articleToResponse(article)})
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.svc.Create(r.Context(), service.CreateArticleInput{
		Title:    req.Title,
		Category: req.Category,
		Type:     req.Type,
		Content:  req.Content,
		Tags:     req.Tags,
		Author:   req.Author,
		Rating:   req.Rating,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusCreated, api.Payload{"article": articleToResponse(article)})
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}

	var req UpdateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	article, err := h.svc.Update(r.Context(), service.UpdateArticleInput{
		ID:       id,
		Title:    req.Title,
		Category: req.Category,
		Type:     req.Type,
		Content:  req.Content,
		Tags:     req.Tags,
		Author:   req.Author,
		Rating:   req.Rating,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"article": articleToResponse(article)})
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		api.Error(w, http.StatusBadRequest, "invalid article id")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, api.Payload{"message": "article deleted"})
}
