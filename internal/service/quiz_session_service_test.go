package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/notifier"
)

// ─── Fakes ──────────────────────────────────────────────────────────

// fakeSessionStore mimics the repository's guarded insert and
// conditional finalize, mutex-guarded so race tests are meaningful.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*model.QuizSession
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*model.QuizSession)}
}

func (f *fakeSessionStore) Create(ctx context.Context, s *model.QuizSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.sessions {
		if existing.UserID == s.UserID && existing.QuizID == s.QuizID &&
			existing.Status == model.SessionStatusOngoing {
			return pgx.ErrNoRows
		}
	}

	s.ID = uuid.New()
	s.Status = model.SessionStatusOngoing
	s.CreatedAt = s.StartTime
	clone := *s
	f.sessions[s.ID] = &clone
	return nil
}

func (f *fakeSessionStore) SetEndJob(ctx context.Context, id, jobID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if s, ok := f.sessions[id]; ok {
		s.EndJobID = &jobID
	}
	return nil
}

func (f *fakeSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*model.QuizSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSessionStore) Finalize(ctx context.Context, id uuid.UUID, answers model.AnswerMap, score float64, finishedAt time.Time) (*model.QuizSession, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[id]
	if !ok {
		return nil, false, pgx.ErrNoRows
	}
	if s.Status != model.SessionStatusOngoing {
		clone := *s
		return &clone, false, nil
	}

	s.Status = model.SessionStatusFinished
	s.Answers = answers
	s.Score = &score
	s.FinishedAt = &finishedAt
	clone := *s
	return &clone, true, nil
}

func (f *fakeSessionStore) ListByUser(ctx context.Context, userID int, quizID *uuid.UUID, page, perPage int) ([]model.QuizSession, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.QuizSession
	for _, s := range f.sessions {
		if s.UserID != userID {
			continue
		}
		if quizID != nil && s.QuizID != *quizID {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeCatalog struct {
	quiz      *model.Quiz
	questions []model.ConcreteQuestion
}

func (f *fakeCatalog) GetSource(ctx context.Context, quizID uuid.UUID) (*model.Quiz, error) {
	if f.quiz == nil || f.quiz.ID != quizID {
		return nil, ErrQuizNotFound
	}
	return f.quiz, nil
}

func (f *fakeCatalog) SampleQuestions(ctx context.Context, quizID uuid.UUID, n int) ([]model.ConcreteQuestion, error) {
	if n > len(f.questions) {
		return nil, ErrQuizPoolExhausted
	}
	return f.questions[:n], nil
}

type scheduledCall struct {
	taskType string
	payload  any
	runAt    time.Time
}

type fakeScheduler struct {
	mu        sync.Mutex
	calls     []scheduledCall
	cancelled []uuid.UUID
	err       error
}

func (f *fakeScheduler) ScheduleAt(ctx context.Context, taskType string, payload any, runAt time.Time) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return uuid.Nil, f.err
	}
	f.calls = append(f.calls, scheduledCall{taskType: taskType, payload: payload, runAt: runAt})
	return uuid.New(), nil
}

func (f *fakeScheduler) Cancel(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
	return nil
}

type sentNotification struct {
	userID int
	n      notifier.Notification
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (f *fakeNotifier) Notify(ctx context.Context, userID int, n notifier.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotification{userID: userID, n: n})
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// ─── Harness ────────────────────────────────────────────────────────

func questionSet() []model.ConcreteQuestion {
	opts := json.RawMessage(`["1","2","3","4"]`)
	return []model.ConcreteQuestion{
		{QuestionID: uuid.New(), Text: "q0", Options: opts, CorrectOption: "0"},
		{QuestionID: uuid.New(), Text: "q1", Options: opts, CorrectOption: "1"},
		{QuestionID: uuid.New(), Text: "q2", Options: opts, CorrectOption: "2"},
	}
}

type sessionFixture struct {
	svc   *QuizSessionService
	store *fakeSessionStore
	sched *fakeScheduler
	notif *fakeNotifier
	quiz  *model.Quiz
	now   time.Time
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	quiz := &model.Quiz{
		ID:              uuid.New(),
		Name:            "Algebra basics",
		SubjectID:       1,
		ChapterID:       1,
		DurationSeconds: 600,
		SampleSize:      3,
		IsOpen:          true,
	}
	f := &sessionFixture{
		store: newFakeSessionStore(),
		sched: &fakeScheduler{},
		notif: &fakeNotifier{},
		quiz:  quiz,
		now:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	catalog := &fakeCatalog{quiz: quiz, questions: questionSet()}
	f.svc = NewQuizSessionService(f.store, catalog, f.sched, f.notif, zerolog.Nop())
	f.svc.now = func() time.Time { return f.now }
	return f
}

// ─── Scoring ────────────────────────────────────────────────────────

func TestScore(t *testing.T) {
	questions := questionSet()

	tests := []struct {
		name    string
		answers model.AnswerMap
		want    float64
	}{
		{"all correct", model.AnswerMap{0: "0", 1: "1", 2: "2"}, 100},
		{"one of three", model.AnswerMap{0: "0", 1: "3", 2: "3"}, 100.0 / 3},
		{"unanswered count as wrong", model.AnswerMap{0: "0"}, 100.0 / 3},
		{"all wrong", model.AnswerMap{0: "9", 1: "9", 2: "9"}, 0},
		{"empty answers", model.AnswerMap{}, 0},
		{"nil answers", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(questions, tt.answers), 1e-9)
		})
	}
}

func TestScoreEmptySnapshot(t *testing.T) {
	assert.Equal(t, float64(0), Score(nil, model.AnswerMap{0: "0"}))
}

// ─── Start ──────────────────────────────────────────────────────────

func TestStartSessionSchedulesEndAtDeadline(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusOngoing, session.Status)
	assert.Len(t, session.Questions, f.quiz.SampleSize)
	assert.Equal(t, f.now, session.StartTime)

	require.Len(t, f.sched.calls, 1)
	call := f.sched.calls[0]
	assert.Equal(t, model.TaskEndQuizSession, call.taskType)
	assert.Equal(t, f.now.Add(600*time.Second), call.runAt)
	assert.Equal(t, model.EndQuizSessionPayload{SessionID: session.ID}, call.payload)
}

func TestStartSessionClosedQuiz(t *testing.T) {
	f := newSessionFixture(t)
	f.quiz.IsOpen = false

	_, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	assert.ErrorIs(t, err, ErrQuizClosed)
	assert.Empty(t, f.sched.calls)
}

func TestStartSessionSecondOngoingRejected(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	_, err = f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	assert.ErrorIs(t, err, ErrSessionOngoing)
}

func TestStartSessionAfterFinishAllowed(t *testing.T) {
	f := newSessionFixture(t)

	first, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswers(context.Background(), 7, first.ID, model.AnswerMap{})
	require.NoError(t, err)

	_, err = f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	assert.NoError(t, err)
}

func TestStartSessionSurvivesScheduleFailure(t *testing.T) {
	f := newSessionFixture(t)
	f.sched.err = context.DeadlineExceeded

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusOngoing, session.Status)
}

// ─── Submit ─────────────────────────────────────────────────────────

func TestSubmitAnswersGradesAndCloses(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	f.now = f.now.Add(5 * time.Minute)
	final, err := f.svc.SubmitAnswers(context.Background(), 7, session.ID, model.AnswerMap{0: "0", 1: "1", 2: "9"})
	require.NoError(t, err)

	assert.Equal(t, model.SessionStatusFinished, final.Status)
	require.NotNil(t, final.Score)
	assert.InDelta(t, 200.0/3, *final.Score, 1e-9)
	require.NotNil(t, final.FinishedAt)
	assert.Equal(t, f.now, *final.FinishedAt)

	// Closing via submit is its own acknowledgement; no push goes out.
	assert.Equal(t, 0, f.notif.count())

	// The pending end job is cancelled once the submit wins.
	assert.Len(t, f.sched.cancelled, 1)
}

func TestSubmitAnswersAtDeadlineAccepted(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	f.now = session.Deadline()
	final, err := f.svc.SubmitAnswers(context.Background(), 7, session.ID, model.AnswerMap{0: "0"})
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusFinished, final.Status)
}

func TestSubmitAnswersAfterDeadlineRejected(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	f.now = session.Deadline().Add(3 * time.Second)
	_, err = f.svc.SubmitAnswers(context.Background(), 7, session.ID, model.AnswerMap{0: "0"})
	assert.ErrorIs(t, err, ErrDeadlineExceeded)

	// The session is left for the scheduled end to close.
	stored, err := f.store.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusOngoing, stored.Status)
	assert.Equal(t, 0, f.notif.count())
}

func TestSubmitAnswersAlreadyFinishedReturnsStoredResult(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswers(context.Background(), 7, session.ID, model.AnswerMap{0: "0", 1: "1", 2: "2"})
	require.NoError(t, err)

	final, err := f.svc.SubmitAnswers(context.Background(), 7, session.ID, model.AnswerMap{})
	assert.ErrorIs(t, err, ErrSessionFinished)
	require.NotNil(t, final)
	require.NotNil(t, final.Score)
	assert.Equal(t, float64(100), *final.Score)
	assert.Equal(t, 0, f.notif.count())
}

func TestSubmitAnswersOwnership(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswers(context.Background(), 8, session.ID, model.AnswerMap{})
	assert.ErrorIs(t, err, ErrNotSessionOwner)

	_, err = f.svc.SubmitAnswers(context.Background(), 7, uuid.New(), model.AnswerMap{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

// ─── Scheduled end ──────────────────────────────────────────────────

func endPayload(t *testing.T, sessionID uuid.UUID) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(model.EndQuizSessionPayload{SessionID: sessionID})
	require.NoError(t, err)
	return raw
}

func TestHandleScheduledEndClosesSession(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	err = f.svc.HandleScheduledEnd(context.Background(), endPayload(t, session.ID))
	require.NoError(t, err)

	stored, err := f.store.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusFinished, stored.Status)
	require.NotNil(t, stored.Score)
	assert.Equal(t, float64(0), *stored.Score)
	require.NotNil(t, stored.FinishedAt)
	assert.Equal(t, session.Deadline(), *stored.FinishedAt)

	require.Equal(t, 1, f.notif.count())
	payload := f.notif.sent[0].n.Payload.(notifier.SessionClosedPayload)
	assert.Equal(t, "time_expired", payload.Reason)
}

func TestHandleScheduledEndIsIdempotent(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.HandleScheduledEnd(context.Background(), endPayload(t, session.ID)))
	require.NoError(t, f.svc.HandleScheduledEnd(context.Background(), endPayload(t, session.ID)))

	assert.Equal(t, 1, f.notif.count())
}

func TestHandleScheduledEndMissingSession(t *testing.T) {
	f := newSessionFixture(t)
	assert.NoError(t, f.svc.HandleScheduledEnd(context.Background(), endPayload(t, uuid.New())))
	assert.Equal(t, 0, f.notif.count())
}

func TestHandleScheduledEndAfterSubmitLeavesResult(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	_, err = f.svc.SubmitAnswers(context.Background(), 7, session.ID, model.AnswerMap{0: "0", 1: "1", 2: "2"})
	require.NoError(t, err)

	require.NoError(t, f.svc.HandleScheduledEnd(context.Background(), endPayload(t, session.ID)))

	stored, err := f.store.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Score)
	assert.Equal(t, float64(100), *stored.Score)
	assert.Equal(t, 0, f.notif.count())
}

func TestSubmitRacesScheduledEndExactlyOneWins(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.StartSession(context.Background(), 7, f.quiz.ID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		f.svc.SubmitAnswers(context.Background(), 7, session.ID, model.AnswerMap{0: "0", 1: "1", 2: "2"})
	}()
	go func() {
		defer wg.Done()
		f.svc.HandleScheduledEnd(context.Background(), endPayload(t, session.ID))
	}()
	wg.Wait()

	stored, err := f.store.GetByID(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionStatusFinished, stored.Status)

	// At most one notification, and only when the scheduled end won.
	require.LessOrEqual(t, f.notif.count(), 1)
	if f.notif.count() == 1 {
		payload := f.notif.sent[0].n.Payload.(notifier.SessionClosedPayload)
		assert.Equal(t, "time_expired", payload.Reason)
	}
}
