package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/eduhub-backend/internal/model"
)

const materialColumns = `id, subject_id, chapter_id, name, description, resource_url, created_by, created_at, updated_at`

type MaterialRepository struct {
	pool *pgxpool.Pool
}

func NewMaterialRepository(pool *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{pool: pool}
}

func (r *MaterialRepository) Create(ctx context.Context, m *model.Material) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO materials (subject_id, chapter_id, name, description, resource_url, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		m.SubjectID, m.ChapterID, m.Name, m.Description, m.ResourceURL, m.CreatedBy,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *MaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	m := &model.Material{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+materialColumns+` FROM materials WHERE id = $1`, id,
	).Scan(&m.ID, &m.SubjectID, &m.ChapterID, &m.Name, &m.Description, &m.ResourceURL, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List retrieves materials with optional subject/chapter filters.
func (r *MaterialRepository) List(ctx context.Context, subjectID, chapterID *int, page, perPage int) ([]model.Material, int64, error) {
	where := `WHERE TRUE`
	args := []any{}
	if subjectID != nil {
		args = append(args, *subjectID)
		where += fmt.Sprintf(" AND subject_id = $%d", len(args))
	}
	if chapterID != nil {
		args = append(args, *chapterID)
		where += fmt.Sprintf(" AND chapter_id = $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM materials `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, perPage, (page-1)*perPage)
	rows, err := r.pool.Query(ctx,
		`SELECT `+materialColumns+` FROM materials `+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var materials []model.Material
	for rows.Next() {
		var m model.Material
		if err := rows.Scan(&m.ID, &m.SubjectID, &m.ChapterID, &m.Name, &m.Description, &m.ResourceURL, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		materials = append(materials, m)
	}
	return materials, total, rows.Err()
}

func (r *MaterialRepository) Update(ctx context.Context, m *model.Material) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE materials SET name = $1, description = $2, resource_url = $3, updated_at = NOW()
		 WHERE id = $4`,
		m.Name, m.Description, m.ResourceURL, m.ID)
	return err
}

func (r *MaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	return err
}
