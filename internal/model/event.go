package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates the kinds of community events.
type EventType string

const (
	EventTypeSeminar  EventType = "SEMINAR"
	EventTypeWorkshop EventType = "WORKSHOP"
	EventTypeContest  EventType = "CONTEST"
	EventTypeOther    EventType = "OTHER"
)

// Event is a community event users can register for and check in to.
type Event struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        EventType `json:"type"`
	Venue       string    `json:"venue"`
	Capacity    int       `json:"capacity"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
	CreatedBy   int       `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRegistration ties a user to an event. CheckedInAt is set at most
// once, when the user's QR code is scanned at the venue.
type EventRegistration struct {
	ID           uuid.UUID  `json:"id"`
	EventID      uuid.UUID  `json:"event_id"`
	UserID       int        `json:"user_id"`
	RegisteredAt time.Time  `json:"registered_at"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
}

// CheckInPayload is the plaintext sealed into a registration QR code.
type CheckInPayload struct {
	EventID uuid.UUID `json:"event_id"`
	UserID  int       `json:"user_id"`
}

// CreateEventRequest is the payload for creating an event.
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=2,max=255"`
	Description string    `json:"description" binding:"omitempty,max=5000"`
	Type        string    `json:"type" binding:"required,oneof=SEMINAR WORKSHOP CONTEST OTHER"`
	Venue       string    `json:"venue" binding:"required,min=2,max=255"`
	Capacity    int       `json:"capacity" binding:"required,min=1"`
	StartedAt   time.Time `json:"started_at" binding:"required"`
	EndedAt     time.Time `json:"ended_at" binding:"required,gtfield=StartedAt"`
}

// UpdateEventRequest is the payload for updating an event.
type UpdateEventRequest struct {
	Title       string     `json:"title" binding:"omitempty,min=2,max=255"`
	Description string     `json:"description" binding:"omitempty,max=5000"`
	Venue       string     `json:"venue" binding:"omitempty,min=2,max=255"`
	Capacity    *int       `json:"capacity" binding:"omitempty,min=1"`
	StartedAt   *time.Time `json:"started_at" binding:"omitempty"`
	EndedAt     *time.Time `json:"ended_at" binding:"omitempty"`
}

// CheckInRequest carries the scanned QR code content.
type CheckInRequest struct {
	Code string `json:"code" binding:"required"`
}
