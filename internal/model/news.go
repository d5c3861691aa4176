package model

import (
	"time"

	"github.com/google/uuid"
)

// News is a platform announcement post.
type News struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Author       string    `json:"author"`
	CreatedBy    int       `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateNewsRequest is the payload for publishing a news post.
type CreateNewsRequest struct {
	Title        string `json:"title" binding:"required,min=2,max=255"`
	Content      string `json:"content" binding:"required,min=1"`
	ThumbnailURL string `json:"thumbnail_url" binding:"omitempty,url"`
	Author       string `json:"author" binding:"required,min=2,max=255"`
}

// UpdateNewsRequest is the payload for editing a news post.
type UpdateNewsRequest struct {
	Title        string `json:"title" binding:"omitempty,min=2,max=255"`
	Content      string `json:"content" binding:"omitempty,min=1"`
	ThumbnailURL string `json:"thumbnail_url" binding:"omitempty,url"`
	Author       string `json:"author" binding:"omitempty,min=2,max=255"`
}
