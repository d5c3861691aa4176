package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamType distinguishes midterm and final previous exam papers.
type ExamType string

const (
	ExamTypeMidterm ExamType = "MIDTERM"
	ExamTypeFinal   ExamType = "FINAL"
)

// PreviousExam is the metadata record for an archived exam paper.
type PreviousExam struct {
	ID          uuid.UUID `json:"id"`
	SubjectID   int       `json:"subject_id"`
	Name        string    `json:"name"`
	Semester    string    `json:"semester"`
	Type        ExamType  `json:"type"`
	ResourceURL string    `json:"resource_url"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePreviousExamRequest is the payload for archiving an exam paper.
type CreatePreviousExamRequest struct {
	SubjectID   int    `json:"subject_id" binding:"required,min=1"`
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Semester    string `json:"semester" binding:"required,min=2,max=50"`
	Type        string `json:"type" binding:"required,oneof=MIDTERM FINAL"`
	ResourceURL string `json:"resource_url" binding:"required,url"`
}

// UpdatePreviousExamRequest is the payload for updating an exam paper record.
type UpdatePreviousExamRequest struct {
	Name        string `json:"name" binding:"omitempty,min=2,max=255"`
	Semester    string `json:"semester" binding:"omitempty,min=2,max=50"`
	Type        string `json:"type" binding:"omitempty,oneof=MIDTERM FINAL"`
	ResourceURL string `json:"resource_url" binding:"omitempty,url"`
}
