package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Question is a bank question that quizzes draw from.
type Question struct {
	ID            uuid.UUID       `json:"id"`
	SubjectID     int             `json:"subject_id"`
	ChapterID     *int            `json:"chapter_id,omitempty"`
	Text          string          `json:"text"`
	Options       json.RawMessage `json:"options"`
	CorrectOption string          `json:"correct_option"`
	CreatedBy     int             `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ConcreteQuestion is the immutable per-session copy of a question. It is
// snapshotted into the session at creation time so scoring is unaffected by
// later edits or deletion of the bank question.
type ConcreteQuestion struct {
	QuestionID    uuid.UUID       `json:"question_id"`
	Text          string          `json:"text"`
	Options       json.RawMessage `json:"options"`
	CorrectOption string          `json:"correct_option"`
}

// ClientQuestion is a concrete question with the answer key stripped,
// safe to return while the session is ongoing.
type ClientQuestion struct {
	Index   int             `json:"index"`
	Text    string          `json:"text"`
	Options json.RawMessage `json:"options"`
}

// CreateQuestionRequest is the payload for adding a bank question.
type CreateQuestionRequest struct {
	SubjectID     int             `json:"subject_id" binding:"required,min=1"`
	ChapterID     *int            `json:"chapter_id" binding:"omitempty,min=1"`
	Text          string          `json:"text" binding:"required,min=1,max=2000"`
	Options       json.RawMessage `json:"options" binding:"required"`
	CorrectOption string          `json:"correct_option" binding:"required,max=10"`
}

// UpdateQuestionRequest is the payload for editing a bank question.
type UpdateQuestionRequest struct {
	Text          string          `json:"text" binding:"omitempty,min=1,max=2000"`
	Options       json.RawMessage `json:"options" binding:"omitempty"`
	CorrectOption string          `json:"correct_option" binding:"omitempty,max=10"`
}
