package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/adresponse/adresponse/internal/query"
	"github.com/adresponse/adresponse/internal/service"
)

// ArticleRepository is the Postgres-backed knowledge article repository.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

const articleColumns = `id, title, category, type, content, tags, author,
	views, rating, created_at, updated_at`

func (r *ArticleRepository) Create(ctx context.Context, a *domain.KnowledgeArticle) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO knowledge_articles (title, category, type, content, tags, author,
			views, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		a.Title, a.Category, a.Type, a.Content, a.Tags, a.Author,
		a.Views, a.Rating, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int) (*domain.KnowledgeArticle, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+articleColumns+` FROM knowledge_articles WHERE id = $1`, id)

	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return a, nil
}

// List returns one page ordered by updated_at descending. Search is a
// case-insensitive substring match on title, content and tags; the
// sentinel category value disables the category filter.
func (r *ArticleRepository) List(ctx context.Context, filter service.ListArticlesFilter) (*service.ArticlePage, error) {
	page := filter.Page
	if page <= 0 {
		page = query.DefaultPage
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = query.DefaultPerPage
	}

	where := `WHERE ($1 = '' OR title ILIKE '%' || $1 || '%'
			OR content ILIKE '%' || $1 || '%'
			OR EXISTS (SELECT 1 FROM unnest(tags) tag WHERE tag ILIKE '%' || $1 || '%'))
		AND ($2 = '' OR category = $2)`

	category := filter.Category
	if category == query.AllCategories {
		category = ""
	}

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM knowledge_articles `+where, filter.Search, category,
	).Scan(&total)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+articleColumns+` FROM knowledge_articles `+where+`
		ORDER BY updated_at DESC, id DESC
		LIMIT $3 OFFSET $4`,
		filter.Search, category, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.KnowledgeArticle
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &service.ArticlePage{
		Items:       items,
		Total:       total,
		Pages:       (total + perPage - 1) / perPage,
		CurrentPage: page,
	}, nil
}

// IncrementViews bumps the view counter atomically and returns the
// new count.
func (r *ArticleRepository) IncrementViews(ctx context.Context, id int) (int, error) {
	var views int
	err := r.pool.QueryRow(ctx,
		`UPDATE knowledge_articles SET views = views + 1 WHERE id = $1 RETURNING views`, id,
	).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrArticleNotFound
		}
		return 0, err
	}
	return views, nil
}

// Update replaces the article's editable fields. Views is deliberately
// excluded so concurrent reads are never undone.
func (r *ArticleRepository) Update(ctx context.Context, a *domain.KnowledgeArticle) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE knowledge_articles SET title = $1, category = $2, type = $3,
			content = $4, tags = $5, author = $6, rating = $7, updated_at = $8
		WHERE id = $9`,
		a.Title, a.Category, a.Type, a.Content, a.Tags, a.Author, a.Rating, a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM knowledge_articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func scanArticle(row rowScanner) (*domain.KnowledgeArticle, error) {
	var a domain.KnowledgeArticle
	err := row.Scan(
		&a.ID, &a.Title, &a.Category, &a.Type, &a.Content, &a.Tags, &a.Author,
		&a.Views, &a.Rating, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
