package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/model"
)

// JobStore is the persistence surface the scheduler runs against.
type JobStore interface {
	Enqueue(ctx context.Context, job *model.ScheduledJob) error
	ClaimDue(ctx context.Context, limit int) ([]model.ScheduledJob, error)
	MarkDone(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

// Handler executes one claimed job. A non-nil error marks the job FAILED.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Scheduler persists one-shot jobs and executes them once due. Jobs
// survive restarts; a crash mid-run leaves the job RUNNING and it is
// not retried automatically.
type Scheduler struct {
	store        JobStore
	handlers     map[string]Handler
	pollInterval time.Duration
	batchSize    int
	log          zerolog.Logger
}

func NewScheduler(store JobStore, pollInterval time.Duration, batchSize int, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		store:        store,
		handlers:     make(map[string]Handler),
		pollInterval: pollInterval,
		batchSize:    batchSize,
		log:          log.With().Str("component", "scheduler").Logger(),
	}
}

// Register binds a handler to a task type. Must be called before Start.
func (s *Scheduler) Register(taskType string, h Handler) {
	s.handlers[taskType] = h
}

// ScheduleAt enqueues a job to run at or after runAt and returns its id.
func (s *Scheduler) ScheduleAt(ctx context.Context, taskType string, payload any, runAt time.Time) (uuid.UUID, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return uuid.Nil, err
	}

	job := &model.ScheduledJob{
		TaskType: taskType,
		Payload:  raw,
		RunAt:    runAt,
		Status:   model.JobStatusPending,
	}
	if err := s.store.Enqueue(ctx, job); err != nil {
		return uuid.Nil, err
	}

	s.log.Debug().
		Str("task", taskType).
		Str("job_id", job.ID.String()).
		Time("run_at", runAt).
		Msg("job scheduled")
	return job.ID, nil
}

// Cancel cancels a pending job. Jobs already claimed or finished are
// left untouched.
func (s *Scheduler) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.store.Cancel(ctx, id)
}

// ─── Worker loop ────────────────────────────────────────────────────

// Start polls for due jobs until ctx is cancelled. Run it in its own
// goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.log.Info().
		Dur("poll_interval", s.pollInterval).
		Int("batch_size", s.batchSize).
		Msg("Scheduler started")

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("Shutdown requested. Scheduler stopping")
			return
		case <-ticker.C:
			s.runDue(ctx)
		}
	}
}

// runDue claims a batch of due jobs and executes them sequentially.
// Execution order among simultaneously due jobs is not guaranteed.
func (s *Scheduler) runDue(ctx context.Context) {
	jobs, err := s.store.ClaimDue(ctx, s.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error().Err(err).Msg("claim failed")
		}
		return
	}

	for i := range jobs {
		s.execute(ctx, &jobs[i])
	}
}

func (s *Scheduler) execute(ctx context.Context, job *model.ScheduledJob) {
	handler, ok := s.handlers[job.TaskType]
	if !ok {
		s.log.Error().Str("task", job.TaskType).Str("job_id", job.ID.String()).Msg("no handler registered")
		s.markFailed(ctx, job, "no handler registered for task type")
		return
	}

	if err := s.runSafe(ctx, handler, job.Payload); err != nil {
		s.log.Error().Err(err).Str("task", job.TaskType).Str("job_id", job.ID.String()).Msg("job failed")
		s.markFailed(ctx, job, err.Error())
		return
	}

	if err := s.store.MarkDone(ctx, job.ID); err != nil {
		s.log.Error().Err(err).Str("job_id", job.ID.String()).Msg("mark done failed")
	}
}

// runSafe converts a handler panic into an error so one bad job cannot
// take the worker down.
func (s *Scheduler) runSafe(ctx context.Context, handler Handler, payload json.RawMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, payload)
}

func (s *Scheduler) markFailed(ctx context.Context, job *model.ScheduledJob, reason string) {
	if err := s.store.MarkFailed(ctx, job.ID, reason); err != nil {
		s.log.Error().Err(err).Str("job_id", job.ID.String()).Msg("mark failed failed")
	}
}
