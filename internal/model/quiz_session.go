package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus enumerates quiz session states. The only legal transition
// is ONGOING → FINISHED, applied exactly once by the store's Finalize.
type SessionStatus string

const (
	SessionStatusOngoing  SessionStatus = "ONGOING"
	SessionStatusFinished SessionStatus = "FINISHED"
)

// AnswerMap maps a question's index within the session snapshot to the
// submitted option. Absent entries are treated as unanswered.
type AnswerMap map[int]string

// QuizSession is one user's timed attempt at a quiz.
type QuizSession struct {
	ID              uuid.UUID          `json:"id"`
	UserID          int                `json:"user_id"`
	QuizID          uuid.UUID          `json:"quiz_id"`
	Status          SessionStatus      `json:"status"`
	StartTime       time.Time          `json:"start_time"`
	DurationSeconds int                `json:"duration_seconds"`
	Questions       []ConcreteQuestion `json:"-"`
	Answers         AnswerMap          `json:"answers,omitempty"`
	Score           *float64           `json:"score,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	FinishedAt      *time.Time         `json:"finished_at,omitempty"`
	EndJobID        *uuid.UUID         `json:"-"`
}

// Deadline returns the hard end instant of the session.
func (s *QuizSession) Deadline() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationSeconds) * time.Second)
}

// QuizSessionView is the client-facing shape of a session. While the
// session is ongoing the answer keys are stripped from the questions;
// once finished the keys are included so clients can review the attempt.
type QuizSessionView struct {
	ID              uuid.UUID     `json:"id"`
	QuizID          uuid.UUID     `json:"quiz_id"`
	Status          SessionStatus `json:"status"`
	StartTime       time.Time     `json:"start_time"`
	DurationSeconds int           `json:"duration_seconds"`
	Questions       interface{}   `json:"questions"`
	Answers         AnswerMap     `json:"answers,omitempty"`
	Score           *float64      `json:"score,omitempty"`
	FinishedAt      *time.Time    `json:"finished_at,omitempty"`
}

// View renders the session for its owner, hiding answer keys while the
// session is ongoing.
func (s *QuizSession) View() *QuizSessionView {
	v := &QuizSessionView{
		ID:              s.ID,
		QuizID:          s.QuizID,
		Status:          s.Status,
		StartTime:       s.StartTime,
		DurationSeconds: s.DurationSeconds,
		Answers:         s.Answers,
		Score:           s.Score,
		FinishedAt:      s.FinishedAt,
	}

	if s.Status == SessionStatusOngoing {
		stripped := make([]ClientQuestion, len(s.Questions))
		for i, q := range s.Questions {
			stripped[i] = ClientQuestion{Index: i, Text: q.Text, Options: q.Options}
		}
		v.Questions = stripped
	} else {
		v.Questions = s.Questions
	}

	return v
}

// StartSessionRequest is the payload for starting a quiz session.
type StartSessionRequest struct {
	QuizID uuid.UUID `json:"quiz_id" binding:"required"`
}

// SubmitAnswersRequest is the payload for submitting session answers.
type SubmitAnswersRequest struct {
	Answers AnswerMap `json:"answers" binding:"required"`
}
