package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/eduhub/eduhub-backend/internal/model"
	"github.com/eduhub/eduhub-backend/internal/repository"
)

// EventService manages events, registrations, and QR check-in. Check-in
// codes are the registration payload sealed with AES-256-GCM, so a code
// cannot be forged or redirected to another event without the key.
type EventService struct {
	repo *repository.EventRepository
	aead cipher.AEAD
	log  zerolog.Logger
}

// NewEventService creates a new EventService. key must be 32 bytes.
func NewEventService(repo *repository.EventRepository, key []byte, log zerolog.Logger) (*EventService, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init check-in cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init check-in cipher: %w", err)
	}

	return &EventService{
		repo: repo,
		aead: aead,
		log:  log.With().Str("component", "event_service").Logger(),
	}, nil
}

func (s *EventService) Create(ctx context.Context, req *model.CreateEventRequest, createdBy int) (*model.Event, error) {
	e := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Type:        model.EventType(req.Type),
		Venue:       req.Venue,
		Capacity:    req.Capacity,
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
		CreatedBy:   createdBy,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context, page, perPage int) ([]model.Event, int64, error) {
	return s.repo.List(ctx, page, perPage)
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateEventRequest) (*model.Event, error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		e.Title = req.Title
	}
	if req.Description != "" {
		e.Description = req.Description
	}
	if req.Venue != "" {
		e.Venue = req.Venue
	}
	if req.Capacity != nil {
		e.Capacity = *req.Capacity
	}
	if req.StartedAt != nil {
		e.StartedAt = *req.StartedAt
	}
	if req.EndedAt != nil {
		e.EndedAt = *req.EndedAt
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ─── Registration and check-in ──────────────────────────────────────

// Register signs a user up for an event while seats remain.
func (s *EventService) Register(ctx context.Context, eventID uuid.UUID, userID int) (*model.EventRegistration, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	reg := &model.EventRegistration{EventID: eventID, UserID: userID}
	if err := s.repo.Register(ctx, reg); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("register: %w", err)
		}
		// The guarded insert produced no row: either a duplicate or a
		// full event. Distinguish by looking for an existing row.
		if _, lookupErr := s.repo.GetRegistration(ctx, eventID, userID); lookupErr == nil {
			return nil, ErrAlreadyRegistered
		}
		return nil, ErrEventFull
	}

	s.log.Info().Str("event_id", eventID.String()).Int("user_id", userID).Str("title", event.Title).Msg("event registration")
	return reg, nil
}

// CheckInCode returns the sealed QR payload for a user's registration.
func (s *EventService) CheckInCode(ctx context.Context, eventID uuid.UUID, userID int) (string, error) {
	if _, err := s.repo.GetRegistration(ctx, eventID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotRegistered
		}
		return "", fmt.Errorf("get registration: %w", err)
	}

	return s.seal(model.CheckInPayload{EventID: eventID, UserID: userID})
}

// CheckIn unseals a scanned code and marks the registration checked in.
// The code must belong to the event being scanned at.
func (s *EventService) CheckIn(ctx context.Context, eventID uuid.UUID, code string) (*model.EventRegistration, error) {
	payload, err := s.open(code)
	if err != nil {
		return nil, ErrInvalidCheckInCode
	}
	if payload.EventID != eventID {
		return nil, ErrInvalidCheckInCode
	}

	reg, err := s.repo.CheckIn(ctx, eventID, payload.UserID, time.Now())
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("check in: %w", err)
		}
		if existing, lookupErr := s.repo.GetRegistration(ctx, eventID, payload.UserID); lookupErr == nil && existing.CheckedInAt != nil {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, ErrNotRegistered
	}

	s.log.Info().Str("event_id", eventID.String()).Int("user_id", payload.UserID).Msg("event check-in")
	return reg, nil
}

// ListRegistrations lists an event's registrations for organizers.
func (s *EventService) ListRegistrations(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistration, error) {
	return s.repo.ListRegistrations(ctx, eventID)
}

func (s *EventService) seal(payload model.CheckInPayload) (string, error) {
	plain, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := s.aead.Seal(nonce, nonce, plain, nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

func (s *EventService) open(code string) (*model.CheckInPayload, error) {
	sealed, err := base64.URLEncoding.DecodeString(code)
	if err != nil {
		return nil, err
	}
	if len(sealed) < s.aead.NonceSize() {
		return nil, errors.New("code too short")
	}

	nonce, ciphertext := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, err
	}

	var payload model.CheckInPayload
	if err := json.Unmarshal(plain, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
