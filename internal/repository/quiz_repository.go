package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/eduhub-backend/internal/model"
)

const quizColumns = `q.id, q.name, q.description, q.subject_id, q.chapter_id, q.duration_seconds, q.sample_size, q.is_open, q.created_by, q.created_at, q.updated_at`

// QuizRepository handles quiz definition data access. The question pool
// lives in the quiz_questions join table.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// Create inserts a quiz and its question pool in one transaction.
func (r *QuizRepository) Create(ctx context.Context, q *model.Quiz) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO quizzes (name, description, subject_id, chapter_id, duration_seconds, sample_size, is_open, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		q.Name, q.Description, q.SubjectID, q.ChapterID, q.DurationSeconds, q.SampleSize, q.IsOpen, q.CreatedBy,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return err
	}

	if err := r.insertPool(ctx, tx, q.ID, q.QuestionIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a quiz and its question pool ids.
func (r *QuizRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	q := &model.Quiz{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+quizColumns+`,
		        COALESCE(ARRAY_AGG(qq.question_id ORDER BY qq.question_id) FILTER (WHERE qq.question_id IS NOT NULL), '{}')
		 FROM quizzes q
		 LEFT JOIN quiz_questions qq ON qq.quiz_id = q.id
		 WHERE q.id = $1
		 GROUP BY q.id`, id,
	).Scan(&q.ID, &q.Name, &q.Description, &q.SubjectID, &q.ChapterID, &q.DurationSeconds,
		&q.SampleSize, &q.IsOpen, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt, &q.QuestionIDs)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetPoolQuestions retrieves the full question rows of a quiz's pool.
func (r *QuizRepository) GetPoolQuestions(ctx context.Context, quizID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT qs.id, qs.subject_id, qs.chapter_id, qs.text, qs.options, qs.correct_option, qs.created_by, qs.created_at, qs.updated_at
		 FROM quiz_questions qq
		 JOIN questions qs ON qs.id = qq.question_id
		 WHERE qq.quiz_id = $1`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.SubjectID, &q.ChapterID, &q.Text, &q.Options, &q.CorrectOption, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// List retrieves quizzes with optional subject/chapter filters.
func (r *QuizRepository) List(ctx context.Context, subjectID, chapterID *int, page, perPage int) ([]model.Quiz, int64, error) {
	where := `WHERE TRUE`
	args := []any{}
	if subjectID != nil {
		args = append(args, *subjectID)
		where += fmt.Sprintf(" AND q.subject_id = $%d", len(args))
	}
	if chapterID != nil {
		args = append(args, *chapterID)
		where += fmt.Sprintf(" AND q.chapter_id = $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quizzes q `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, perPage, (page-1)*perPage)
	rows, err := r.pool.Query(ctx,
		`SELECT `+quizColumns+` FROM quizzes q `+where+
			fmt.Sprintf(` ORDER BY q.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Name, &q.Description, &q.SubjectID, &q.ChapterID, &q.DurationSeconds,
			&q.SampleSize, &q.IsOpen, &q.CreatedBy, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, 0, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, total, rows.Err()
}

// Update rewrites the quiz row and, if QuestionIDs is non-nil, replaces
// the question pool.
func (r *QuizRepository) Update(ctx context.Context, q *model.Quiz) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE quizzes SET name = $1, description = $2, duration_seconds = $3, sample_size = $4, is_open = $5, updated_at = NOW()
		 WHERE id = $6`,
		q.Name, q.Description, q.DurationSeconds, q.SampleSize, q.IsOpen, q.ID)
	if err != nil {
		return err
	}

	if q.QuestionIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM quiz_questions WHERE quiz_id = $1`, q.ID); err != nil {
			return err
		}
		if err := r.insertPool(ctx, tx, q.ID, q.QuestionIDs); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *QuizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	return err
}

func (r *QuizRepository) insertPool(ctx context.Context, tx pgx.Tx, quizID uuid.UUID, questionIDs []uuid.UUID) error {
	for _, qid := range questionIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO quiz_questions (quiz_id, question_id) VALUES ($1, $2)`,
			quizID, qid); err != nil {
			return err
		}
	}
	return nil
}
