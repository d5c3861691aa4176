package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/eduhub-backend/internal/model"
)

const previousExamColumns = `id, subject_id, name, semester, type, resource_url, created_by, created_at, updated_at`

type PreviousExamRepository struct {
	pool *pgxpool.Pool
}

func NewPreviousExamRepository(pool *pgxpool.Pool) *PreviousExamRepository {
	return &PreviousExamRepository{pool: pool}
}

func (r *PreviousExamRepository) Create(ctx context.Context, pe *model.PreviousExam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO previous_exams (subject_id, name, semester, type, resource_url, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		pe.SubjectID, pe.Name, pe.Semester, pe.Type, pe.ResourceURL, pe.CreatedBy,
	).Scan(&pe.ID, &pe.CreatedAt, &pe.UpdatedAt)
}

func (r *PreviousExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.PreviousExam, error) {
	pe := &model.PreviousExam{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+previousExamColumns+` FROM previous_exams WHERE id = $1`, id,
	).Scan(&pe.ID, &pe.SubjectID, &pe.Name, &pe.Semester, &pe.Type, &pe.ResourceURL, &pe.CreatedBy, &pe.CreatedAt, &pe.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return pe, nil
}

// List retrieves previous exams with an optional subject filter.
func (r *PreviousExamRepository) List(ctx context.Context, subjectID *int, page, perPage int) ([]model.PreviousExam, int64, error) {
	where := `WHERE TRUE`
	args := []any{}
	if subjectID != nil {
		args = append(args, *subjectID)
		where += fmt.Sprintf(" AND subject_id = $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM previous_exams `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, perPage, (page-1)*perPage)
	rows, err := r.pool.Query(ctx,
		`SELECT `+previousExamColumns+` FROM previous_exams `+where+
			fmt.Sprintf(` ORDER BY semester DESC, name ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.PreviousExam
	for rows.Next() {
		var pe model.PreviousExam
		if err := rows.Scan(&pe.ID, &pe.SubjectID, &pe.Name, &pe.Semester, &pe.Type, &pe.ResourceURL, &pe.CreatedBy, &pe.CreatedAt, &pe.UpdatedAt); err != nil {
			return nil, 0, err
		}
		exams = append(exams, pe)
	}
	return exams, total, rows.Err()
}

func (r *PreviousExamRepository) Update(ctx context.Context, pe *model.PreviousExam) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE previous_exams SET name = $1, semester = $2, type = $3, resource_url = $4, updated_at = NOW()
		 WHERE id = $5`,
		pe.Name, pe.Semester, pe.Type, pe.ResourceURL, pe.ID)
	return err
}

func (r *PreviousExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM previous_exams WHERE id = $1`, id)
	return err
}
