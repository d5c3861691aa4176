package model

import (
	"time"

	"github.com/google/uuid"
)

// Material is the metadata record for a study material. The binary itself
// lives in external storage; only the resource URL is kept here.
type Material struct {
	ID          uuid.UUID `json:"id"`
	SubjectID   int       `json:"subject_id"`
	ChapterID   *int      `json:"chapter_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ResourceURL string    `json:"resource_url"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateMaterialRequest is the payload for creating a material record.
type CreateMaterialRequest struct {
	SubjectID   int    `json:"subject_id" binding:"required,min=1"`
	ChapterID   *int   `json:"chapter_id" binding:"omitempty,min=1"`
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	ResourceURL string `json:"resource_url" binding:"required,url"`
}

// UpdateMaterialRequest is the payload for updating a material record.
type UpdateMaterialRequest struct {
	Name        string `json:"name" binding:"omitempty,min=2,max=255"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	ResourceURL string `json:"resource_url" binding:"omitempty,url"`
}
