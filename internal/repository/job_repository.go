package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/eduhub-backend/internal/model"
)

// JobRepository is the durable store behind the scheduler. Jobs are rows,
// not in-memory timers, so pending work survives restarts and the claim
// update keeps two instances from executing the same job.
type JobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// Enqueue inserts a PENDING job due at job.RunAt.
func (r *JobRepository) Enqueue(ctx context.Context, job *model.ScheduledJob) error {
	job.Status = model.JobStatusPending
	return r.pool.QueryRow(ctx,
		`INSERT INTO scheduled_jobs (task_type, payload, run_at, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		job.TaskType, job.Payload, job.RunAt, job.Status,
	).Scan(&job.ID, &job.CreatedAt)
}

// ClaimDue atomically claims up to limit due PENDING jobs, transitioning
// them to RUNNING. FOR UPDATE SKIP LOCKED lets concurrent pollers claim
// disjoint sets without blocking each other.
func (r *JobRepository) ClaimDue(ctx context.Context, limit int) ([]model.ScheduledJob, error) {
	rows, err := r.pool.Query(ctx,
		`UPDATE scheduled_jobs
		 SET status = $1, claimed_at = NOW()
		 WHERE id IN (
			SELECT id FROM scheduled_jobs
			WHERE status = $2 AND run_at <= NOW()
			ORDER BY run_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING id, task_type, payload, run_at, status, claimed_at, created_at`,
		model.JobStatusRunning, model.JobStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []model.ScheduledJob
	for rows.Next() {
		var j model.ScheduledJob
		if err := rows.Scan(&j.ID, &j.TaskType, &j.Payload, &j.RunAt, &j.Status, &j.ClaimedAt, &j.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// MarkDone records successful completion of a RUNNING job.
func (r *JobRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE scheduled_jobs SET status = $1, finished_at = $2
		 WHERE id = $3 AND status = $4`,
		model.JobStatusDone, time.Now(), id, model.JobStatusRunning)
	return err
}

// MarkFailed records a handler failure. The job is not retried; FAILED
// rows are the operator-visible record of a missed execution.
func (r *JobRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE scheduled_jobs SET status = $1, finished_at = $2, last_error = $3
		 WHERE id = $4 AND status = $5`,
		model.JobStatusFailed, time.Now(), errMsg, id, model.JobStatusRunning)
	return err
}

// Cancel marks a PENDING job CANCELLED. A job that already fired or is
// mid-flight is left untouched; callers treat that as a harmless no-op.
func (r *JobRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE scheduled_jobs SET status = $1, finished_at = $2
		 WHERE id = $3 AND status = $4`,
		model.JobStatusCancelled, time.Now(), id, model.JobStatusPending)
	return err
}
