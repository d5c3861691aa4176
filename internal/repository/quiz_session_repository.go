package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/eduhub-backend/internal/model"
)

const sessionColumns = `id, user_id, quiz_id, status, start_time, duration_seconds, questions, answers, score, created_at, finished_at, end_job_id`

// QuizSessionRepository is the durable store for quiz sessions. Both the
// one-ongoing-session invariant and the close-exactly-once guarantee live
// here, in the SQL, so they hold across concurrent server instances.
type QuizSessionRepository struct {
	pool *pgxpool.Pool
}

// NewQuizSessionRepository creates a new QuizSessionRepository.
func NewQuizSessionRepository(pool *pgxpool.Pool) *QuizSessionRepository {
	return &QuizSessionRepository{pool: pool}
}

// Create inserts a new ONGOING session. The partial unique index on
// (user_id, quiz_id) WHERE status = 'ONGOING' rejects a second concurrent
// attempt; that case surfaces as pgx.ErrNoRows via DO NOTHING.
func (r *QuizSessionRepository) Create(ctx context.Context, s *model.QuizSession) error {
	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	if s.Answers == nil {
		s.Answers = model.AnswerMap{}
	}
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	s.Status = model.SessionStatusOngoing
	return r.pool.QueryRow(ctx,
		`INSERT INTO quiz_sessions (user_id, quiz_id, status, start_time, duration_seconds, questions, answers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, quiz_id) WHERE status = 'ONGOING' DO NOTHING
		 RETURNING id, created_at`,
		s.UserID, s.QuizID, s.Status, s.StartTime, s.DurationSeconds, questions, answers,
	).Scan(&s.ID, &s.CreatedAt)
}

// SetEndJob records the scheduled end job for a session so a manual
// submission can cancel it.
func (r *QuizSessionRepository) SetEndJob(ctx context.Context, id, jobID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE quiz_sessions SET end_job_id = $2 WHERE id = $1`, id, jobID)
	return err
}

// GetByID retrieves a session with its full question snapshot.
func (r *QuizSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.QuizSession, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM quiz_sessions WHERE id = $1`, id)
	return scanSession(row)
}

// Finalize atomically transitions a session from ONGOING to FINISHED.
// The status guard in the WHERE clause is the compare-and-swap that makes
// concurrent manual submission and scheduled expiry safe: exactly one
// caller applies the update. The loser gets the stored row back with
// applied=false and must discard its own computed score.
func (r *QuizSessionRepository) Finalize(ctx context.Context, id uuid.UUID, answers model.AnswerMap, score float64, finishedAt time.Time) (*model.QuizSession, bool, error) {
	if answers == nil {
		answers = model.AnswerMap{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, false, fmt.Errorf("marshal answers: %w", err)
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE quiz_sessions
		 SET status = $2, answers = $3, score = $4, finished_at = $5
		 WHERE id = $1 AND status = $6
		 RETURNING `+sessionColumns,
		id, model.SessionStatusFinished, raw, score, finishedAt, model.SessionStatusOngoing)

	sess, err := scanSession(row)
	if err == nil {
		return sess, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	// Lost the race (or the session never existed). Return whatever is
	// stored so the caller can serve the winning result.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// ListByUser retrieves a user's sessions, newest first, optionally
// filtered by quiz.
func (r *QuizSessionRepository) ListByUser(ctx context.Context, userID int, quizID *uuid.UUID, page, perPage int) ([]model.QuizSession, int64, error) {
	where := `WHERE user_id = $1`
	args := []any{userID}
	if quizID != nil {
		args = append(args, *quizID)
		where += fmt.Sprintf(" AND quiz_id = $%d", len(args))
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM quiz_sessions `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, perPage, (page-1)*perPage)
	rows, err := r.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM quiz_sessions `+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sessions []model.QuizSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, total, rows.Err()
}

func scanSession(row pgx.Row) (*model.QuizSession, error) {
	s := &model.QuizSession{}
	var questions, answers []byte
	err := row.Scan(&s.ID, &s.UserID, &s.QuizID, &s.Status, &s.StartTime,
		&s.DurationSeconds, &questions, &answers, &s.Score, &s.CreatedAt, &s.FinishedAt, &s.EndJobID)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &s.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	if err := json.Unmarshal(answers, &s.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return s, nil
}
