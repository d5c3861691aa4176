package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/notifier"
)

// SessionStore is the durable session persistence surface.
type SessionStore interface {
	Create(ctx context.Context, s *model.QuizSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.QuizSession, error)
	SetEndJob(ctx context.Context, id, jobID uuid.UUID) error
	Finalize(ctx context.Context, id uuid.UUID, answers model.AnswerMap, score float64, finishedAt time.Time) (*model.QuizSession, bool, error)
	ListByUser(ctx context.Context, userID int, quizID *uuid.UUID, page, perPage int) ([]model.QuizSession, int64, error)
}

// SourceCatalog provides quiz definitions and question sampling.
type SourceCatalog interface {
	GetSource(ctx context.Context, quizID uuid.UUID) (*model.Quiz, error)
	SampleQuestions(ctx context.Context, quizID uuid.UUID, n int) ([]model.ConcreteQuestion, error)
}

// TaskScheduler enqueues durable one-shot jobs.
type TaskScheduler interface {
	ScheduleAt(ctx context.Context, taskType string, payload any, runAt time.Time) (uuid.UUID, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

// SessionNotifier pushes best-effort notifications to users.
type SessionNotifier interface {
	Notify(ctx context.Context, userID int, n notifier.Notification)
}

// QuizSessionService owns the timed session lifecycle: start, manual
// submission, and scheduled expiry. A session closes exactly once; the
// store's conditional Finalize decides the winner when submission and
// expiry race, and only the winner emits side effects.
type QuizSessionService struct {
	store     SessionStore
	catalog   SourceCatalog
	scheduler TaskScheduler
	notif     SessionNotifier
	now       func() time.Time
	log       zerolog.Logger
}

// NewQuizSessionService creates a new QuizSessionService.
func NewQuizSessionService(
	store SessionStore,
	catalog SourceCatalog,
	scheduler TaskScheduler,
	notif SessionNotifier,
	log zerolog.Logger,
) *QuizSessionService {
	return &QuizSessionService{
		store:     store,
		catalog:   catalog,
		scheduler: scheduler,
		notif:     notif,
		now:       time.Now,
		log:       log.With().Str("component", "quiz_session_service").Logger(),
	}
}

// StartSession creates an ONGOING session for the user with a frozen
// random sample of the quiz's questions, and schedules the end job at
// the deadline.
func (s *QuizSessionService) StartSession(ctx context.Context, userID int, quizID uuid.UUID) (*model.QuizSession, error) {
	quiz, err := s.catalog.GetSource(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsOpen {
		return nil, ErrQuizClosed
	}

	questions, err := s.catalog.SampleQuestions(ctx, quizID, quiz.SampleSize)
	if err != nil {
		return nil, err
	}

	session := &model.QuizSession{
		UserID:          userID,
		QuizID:          quizID,
		StartTime:       s.now(),
		DurationSeconds: quiz.DurationSeconds,
		Questions:       questions,
		Answers:         model.AnswerMap{},
	}
	if err := s.store.Create(ctx, session); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionOngoing
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	payload := model.EndQuizSessionPayload{SessionID: session.ID}
	jobID, err := s.scheduler.ScheduleAt(ctx, model.TaskEndQuizSession, payload, session.Deadline())
	if err != nil {
		// The session stands; the deadline is still enforced on submit
		// and the missed job is visible in the job table.
		s.log.Error().Err(err).Str("session_id", session.ID.String()).Msg("schedule end job failed")
	} else {
		session.EndJobID = &jobID
		if err := s.store.SetEndJob(ctx, session.ID, jobID); err != nil {
			s.log.Error().Err(err).Str("session_id", session.ID.String()).Msg("record end job failed")
		}
	}

	s.log.Info().
		Int("user_id", userID).
		Str("quiz_id", quizID.String()).
		Str("session_id", session.ID.String()).
		Time("deadline", session.Deadline()).
		Msg("session started")
	return session, nil
}

// SubmitAnswers grades and closes the caller's ongoing session. If the
// scheduled end already closed it, the stored result is returned with
// ErrSessionFinished so the client can render the expiry outcome.
func (s *QuizSessionService) SubmitAnswers(ctx context.Context, userID int, sessionID uuid.UUID, answers model.AnswerMap) (*model.QuizSession, error) {
	session, err := s.getOwned(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.SessionStatusFinished {
		return session, ErrSessionFinished
	}

	// Past the deadline the scheduled close owns the session; the manual
	// path never stamps a finished_at later than the deadline itself.
	now := s.now()
	if now.After(session.Deadline()) {
		return nil, ErrDeadlineExceeded
	}

	score := Score(session.Questions, answers)
	final, applied, err := s.store.Finalize(ctx, sessionID, answers, score, now)
	if err != nil {
		return nil, fmt.Errorf("finalize session: %w", err)
	}
	if !applied {
		return final, ErrSessionFinished
	}

	// The end job is now a no-op; cancelling it just keeps the job table
	// tidy, so a failure here is not worth surfacing.
	if final.EndJobID != nil {
		if err := s.scheduler.Cancel(ctx, *final.EndJobID); err != nil {
			s.log.Debug().Err(err).Str("session_id", sessionID.String()).Msg("cancel end job failed")
		}
	}

	s.log.Info().
		Int("user_id", userID).
		Str("session_id", sessionID.String()).
		Float64("score", score).
		Msg("session submitted")
	return final, nil
}

// GetSession returns a session to its owner, answer keys hidden while
// it is still ongoing.
func (s *QuizSessionService) GetSession(ctx context.Context, userID int, sessionID uuid.UUID) (*model.QuizSession, error) {
	return s.getOwned(ctx, userID, sessionID)
}

// ListSessions returns a user's sessions, optionally filtered by quiz.
func (s *QuizSessionService) ListSessions(ctx context.Context, userID int, quizID *uuid.UUID, page, perPage int) ([]model.QuizSession, int64, error) {
	return s.store.ListByUser(ctx, userID, quizID, page, perPage)
}

// HandleScheduledEnd is the job handler that force-closes a session at
// its deadline. It grades whatever answers are stored, which is an empty
// map unless the user submitted first. Safe to run more than once: a
// session already FINISHED is left alone.
func (s *QuizSessionService) HandleScheduledEnd(ctx context.Context, payload json.RawMessage) error {
	var p model.EndQuizSessionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	session, err := s.store.GetByID(ctx, p.SessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Session gone; nothing to close.
			return nil
		}
		return fmt.Errorf("get session: %w", err)
	}
	if session.Status == model.SessionStatusFinished {
		return nil
	}

	score := Score(session.Questions, session.Answers)
	final, applied, err := s.store.Finalize(ctx, p.SessionID, session.Answers, score, session.Deadline())
	if err != nil {
		return fmt.Errorf("finalize session: %w", err)
	}
	if !applied {
		// A submission won the race between our read and the update.
		return nil
	}

	s.notifyClosed(ctx, final)
	s.log.Info().
		Str("session_id", p.SessionID.String()).
		Float64("score", score).
		Msg("session expired")
	return nil
}

func (s *QuizSessionService) getOwned(ctx context.Context, userID int, sessionID uuid.UUID) (*model.QuizSession, error) {
	session, err := s.store.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrNotSessionOwner
	}
	return session, nil
}

// notifyClosed tells the owner their session was force-closed at the
// deadline. A manual submission is its own acknowledgement, so only the
// scheduled-end path notifies.
func (s *QuizSessionService) notifyClosed(ctx context.Context, session *model.QuizSession) {
	s.notif.Notify(ctx, session.UserID, notifier.Notification{
		Kind: notifier.KindSessionClosed,
		Payload: notifier.SessionClosedPayload{
			SessionID: session.ID.String(),
			QuizID:    session.QuizID.String(),
			Reason:    "time_expired",
			Score:     session.Score,
		},
	})
}

// Score grades answers against the session's question snapshot and
// returns the percentage correct, 0 to 100. Unanswered questions count
// as wrong. An empty snapshot scores 0.
func Score(questions []model.ConcreteQuestion, answers model.AnswerMap) float64 {
	if len(questions) == 0 {
		return 0
	}

	correct := 0
	for i, q := range questions {
		if answers[i] == q.CorrectOption {
			correct++
		}
	}
	return float64(correct) / float64(len(questions)) * 100
}
