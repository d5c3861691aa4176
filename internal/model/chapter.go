package model

import "time"

// Chapter is a unit of a subject's curriculum. Quizzes, materials and
// questions hang off chapters.
type Chapter struct {
	ID        int       `json:"id"`
	SubjectID int       `json:"subject_id"`
	Name      string    `json:"name"`
	OrderNum  int       `json:"order_num"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateChapterRequest is the payload for creating a chapter.
type CreateChapterRequest struct {
	SubjectID int    `json:"subject_id" binding:"required,min=1"`
	Name      string `json:"name" binding:"required,min=2,max=255"`
	OrderNum  int    `json:"order_num" binding:"min=0"`
}

// UpdateChapterRequest is the payload for updating a chapter.
type UpdateChapterRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=255"`
	OrderNum *int   `json:"order_num" binding:"omitempty,min=0"`
}
