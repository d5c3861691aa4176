package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/eduhub-backend/internal/model"
)

// fakeJobStore keeps jobs in memory and applies the same status
// transitions the SQL store does.
type fakeJobStore struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*model.ScheduledJob
	now  time.Time

	claimErr error
}

func newFakeJobStore(now time.Time) *fakeJobStore {
	return &fakeJobStore{jobs: make(map[uuid.UUID]*model.ScheduledJob), now: now}
}

func (f *fakeJobStore) Enqueue(ctx context.Context, job *model.ScheduledJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	job.ID = uuid.New()
	job.Status = model.JobStatusPending
	job.CreatedAt = f.now
	clone := *job
	f.jobs[job.ID] = &clone
	return nil
}

func (f *fakeJobStore) ClaimDue(ctx context.Context, limit int) ([]model.ScheduledJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.claimErr != nil {
		return nil, f.claimErr
	}

	var claimed []model.ScheduledJob
	for _, job := range f.jobs {
		if len(claimed) >= limit {
			break
		}
		if job.Status == model.JobStatusPending && !job.RunAt.After(f.now) {
			job.Status = model.JobStatusRunning
			claimedAt := f.now
			job.ClaimedAt = &claimedAt
			claimed = append(claimed, *job)
		}
	}
	return claimed, nil
}

func (f *fakeJobStore) MarkDone(ctx context.Context, id uuid.UUID) error {
	return f.finish(id, model.JobStatusDone, nil)
}

func (f *fakeJobStore) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return f.finish(id, model.JobStatusFailed, &reason)
}

func (f *fakeJobStore) Cancel(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	job, ok := f.jobs[id]
	if !ok || job.Status != model.JobStatusPending {
		return nil
	}
	job.Status = model.JobStatusCancelled
	return nil
}

func (f *fakeJobStore) finish(id uuid.UUID, status model.JobStatus, lastError *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	job, ok := f.jobs[id]
	if !ok {
		return errors.New("job not found")
	}
	job.Status = status
	finishedAt := f.now
	job.FinishedAt = &finishedAt
	job.LastError = lastError
	return nil
}

func (f *fakeJobStore) get(id uuid.UUID) *model.ScheduledJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *f.jobs[id]
	return &clone
}

func newTestScheduler(store JobStore) *Scheduler {
	return NewScheduler(store, time.Second, 10, zerolog.Nop())
}

func TestScheduleAtPersistsPendingJob(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeJobStore(now)
	s := newTestScheduler(store)

	id, err := s.ScheduleAt(context.Background(), "SOME_TASK", map[string]string{"k": "v"}, now.Add(time.Minute))
	require.NoError(t, err)

	job := store.get(id)
	assert.Equal(t, model.JobStatusPending, job.Status)
	assert.Equal(t, "SOME_TASK", job.TaskType)
	assert.Equal(t, now.Add(time.Minute), job.RunAt)
	assert.JSONEq(t, `{"k":"v"}`, string(job.Payload))
}

func TestRunDueExecutesAndMarksDone(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeJobStore(now)
	s := newTestScheduler(store)

	var got json.RawMessage
	s.Register("SOME_TASK", func(ctx context.Context, payload json.RawMessage) error {
		got = payload
		return nil
	})

	id, err := s.ScheduleAt(context.Background(), "SOME_TASK", map[string]int{"n": 42}, now.Add(-time.Second))
	require.NoError(t, err)

	s.runDue(context.Background())

	assert.JSONEq(t, `{"n":42}`, string(got))
	assert.Equal(t, model.JobStatusDone, store.get(id).Status)
}

func TestRunDueSkipsFutureJobs(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeJobStore(now)
	s := newTestScheduler(store)

	ran := false
	s.Register("SOME_TASK", func(ctx context.Context, payload json.RawMessage) error {
		ran = true
		return nil
	})

	id, err := s.ScheduleAt(context.Background(), "SOME_TASK", nil, now.Add(time.Hour))
	require.NoError(t, err)

	s.runDue(context.Background())

	assert.False(t, ran)
	assert.Equal(t, model.JobStatusPending, store.get(id).Status)
}

func TestHandlerErrorMarksFailed(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeJobStore(now)
	s := newTestScheduler(store)

	s.Register("SOME_TASK", func(ctx context.Context, payload json.RawMessage) error {
		return errors.New("boom")
	})

	id, err := s.ScheduleAt(context.Background(), "SOME_TASK", nil, now)
	require.NoError(t, err)

	s.runDue(context.Background())

	job := store.get(id)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	require.NotNil(t, job.LastError)
	assert.Equal(t, "boom", *job.LastError)
}

func TestHandlerPanicMarksFailed(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeJobStore(now)
	s := newTestScheduler(store)

	s.Register("SOME_TASK", func(ctx context.Context, payload json.RawMessage) error {
		panic("unexpected state")
	})

	id, err := s.ScheduleAt(context.Background(), "SOME_TASK", nil, now)
	require.NoError(t, err)

	require.NotPanics(t, func() { s.runDue(context.Background()) })

	job := store.get(id)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	require.NotNil(t, job.LastError)
	assert.Contains(t, *job.LastError, "handler panic")
}

func TestUnknownTaskTypeMarksFailed(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeJobStore(now)
	s := newTestScheduler(store)

	id, err := s.ScheduleAt(context.Background(), "NOBODY_HANDLES_THIS", nil, now)
	require.NoError(t, err)

	s.runDue(context.Background())

	job := store.get(id)
	assert.Equal(t, model.JobStatusFailed, job.Status)
	require.NotNil(t, job.LastError)
	assert.Contains(t, *job.LastError, "no handler")
}

func TestCancelPendingJob(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	store := newFakeJobStore(now)
	s := newTestScheduler(store)

	ran := false
	s.Register("SOME_TASK", func(ctx context.Context, payload json.RawMessage) error {
		ran = true
		return nil
	})

	id, err := s.ScheduleAt(context.Background(), "SOME_TASK", nil, now)
	require.NoError(t, err)
	require.NoError(t, s.Cancel(context.Background(), id))

	s.runDue(context.Background())

	assert.False(t, ran)
	assert.Equal(t, model.JobStatusCancelled, store.get(id).Status)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	store := newFakeJobStore(time.Now())
	s := NewScheduler(store, 5*time.Millisecond, 10, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}
