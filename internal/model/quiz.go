package model

import (
	"time"

	"github.com/google/uuid"
)

// Quiz is the definition a timed session is generated from. Each session
// samples SampleSize questions from the quiz's question pool.
type Quiz struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	SubjectID       int         `json:"subject_id"`
	ChapterID       int         `json:"chapter_id"`
	DurationSeconds int         `json:"duration_seconds"`
	SampleSize      int         `json:"sample_size"`
	IsOpen          bool        `json:"is_open"`
	QuestionIDs     []uuid.UUID `json:"question_ids,omitempty"`
	CreatedBy       int         `json:"created_by"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// CreateQuizRequest is the payload for creating a quiz definition.
type CreateQuizRequest struct {
	Name            string      `json:"name" binding:"required,min=2,max=255"`
	Description     string      `json:"description" binding:"omitempty,max=2000"`
	SubjectID       int         `json:"subject_id" binding:"required,min=1"`
	ChapterID       int         `json:"chapter_id" binding:"required,min=1"`
	DurationSeconds int         `json:"duration_seconds" binding:"required,min=60,max=28800"`
	SampleSize      int         `json:"sample_size" binding:"required,min=1"`
	QuestionIDs     []uuid.UUID `json:"question_ids" binding:"required,min=1"`
}

// UpdateQuizRequest is the payload for updating a quiz definition.
type UpdateQuizRequest struct {
	Name            string      `json:"name" binding:"omitempty,min=2,max=255"`
	Description     string      `json:"description" binding:"omitempty,max=2000"`
	DurationSeconds int         `json:"duration_seconds" binding:"omitempty,min=60,max=28800"`
	SampleSize      int         `json:"sample_size" binding:"omitempty,min=1"`
	IsOpen          *bool       `json:"is_open" binding:"omitempty"`
	QuestionIDs     []uuid.UUID `json:"question_ids" binding:"omitempty,min=1"`
}
