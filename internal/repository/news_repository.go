package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/eduhub-backend/internal/model"
)

const newsColumns = `id, title, content, thumbnail_url, author, created_by, created_at, updated_at`

type NewsRepository struct {
	pool *pgxpool.Pool
}

func NewNewsRepository(pool *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{pool: pool}
}

func (r *NewsRepository) Create(ctx context.Context, n *model.News) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO news (title, content, thumbnail_url, author, created_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		n.Title, n.Content, n.ThumbnailURL, n.Author, n.CreatedBy,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (r *NewsRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.News, error) {
	n := &model.News{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = $1`, id,
	).Scan(&n.ID, &n.Title, &n.Content, &n.ThumbnailURL, &n.Author, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NewsRepository) List(ctx context.Context, page, perPage int) ([]model.News, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM news`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+newsColumns+` FROM news ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []model.News
	for rows.Next() {
		var n model.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.ThumbnailURL, &n.Author, &n.CreatedBy, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, err
		}
		posts = append(posts, n)
	}
	return posts, total, rows.Err()
}

func (r *NewsRepository) Update(ctx context.Context, n *model.News) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE news SET title = $1, content = $2, thumbnail_url = $3, author = $4, updated_at = NOW()
		 WHERE id = $5`,
		n.Title, n.Content, n.ThumbnailURL, n.Author, n.ID)
	return err
}

func (r *NewsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	return err
}
