package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/eduhub-backend/internal/model"
)

type ChapterRepository struct {
	pool *pgxpool.Pool
}

func NewChapterRepository(pool *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{pool: pool}
}

func (r *ChapterRepository) Create(ctx context.Context, ch *model.Chapter) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO chapters (subject_id, name, order_num)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		ch.SubjectID, ch.Name, ch.OrderNum,
	).Scan(&ch.ID, &ch.CreatedAt, &ch.UpdatedAt)
}

func (r *ChapterRepository) GetByID(ctx context.Context, id int) (*model.Chapter, error) {
	ch := &model.Chapter{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, subject_id, name, order_num, created_at, updated_at
		 FROM chapters WHERE id = $1`, id,
	).Scan(&ch.ID, &ch.SubjectID, &ch.Name, &ch.OrderNum, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (r *ChapterRepository) ListBySubject(ctx context.Context, subjectID int) ([]model.Chapter, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, subject_id, name, order_num, created_at, updated_at
		 FROM chapters WHERE subject_id = $1 ORDER BY order_num ASC, name ASC`, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []model.Chapter
	for rows.Next() {
		var ch model.Chapter
		if err := rows.Scan(&ch.ID, &ch.SubjectID, &ch.Name, &ch.OrderNum, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// BelongsToSubject reports whether the chapter is a child of the subject.
func (r *ChapterRepository) BelongsToSubject(ctx context.Context, chapterID, subjectID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM chapters WHERE id = $1 AND subject_id = $2)`,
		chapterID, subjectID).Scan(&exists)
	return exists, err
}

func (r *ChapterRepository) Update(ctx context.Context, ch *model.Chapter) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE chapters SET name = $1, order_num = $2, updated_at = NOW() WHERE id = $3`,
		ch.Name, ch.OrderNum, ch.ID)
	return err
}

func (r *ChapterRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	return err
}
