package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduhub/eduhub-backend/internal/model"
)

const eventColumns = `id, title, description, type, venue, capacity, started_at, ended_at, created_by, created_at, updated_at`

// EventRepository handles event and registration data access.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO events (title, description, type, venue, capacity, started_at, ended_at, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		e.Title, e.Description, e.Type, e.Venue, e.Capacity, e.StartedAt, e.EndedAt, e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	e := &model.Event{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.Description, &e.Type, &e.Venue, &e.Capacity, &e.StartedAt, &e.EndedAt, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List retrieves events newest-start-first.
func (r *EventRepository) List(ctx context.Context, page, perPage int) ([]model.Event, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY started_at DESC LIMIT $1 OFFSET $2`,
		perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Type, &e.Venue, &e.Capacity, &e.StartedAt, &e.EndedAt, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, e *model.Event) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE events SET title = $1, description = $2, venue = $3, capacity = $4, started_at = $5, ended_at = $6, updated_at = NOW()
		 WHERE id = $7`,
		e.Title, e.Description, e.Venue, e.Capacity, e.StartedAt, e.EndedAt, e.ID)
	return err
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}

// Register inserts a registration if the event still has capacity and the
// user is not already registered. Both checks happen inside the INSERT so
// concurrent registrations cannot oversell the event; a no-row result via
// DO NOTHING / failed guard surfaces as pgx.ErrNoRows.
func (r *EventRepository) Register(ctx context.Context, reg *model.EventRegistration) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO event_registrations (event_id, user_id)
		 SELECT $1, $2
		 WHERE (SELECT COUNT(*) FROM event_registrations WHERE event_id = $1)
		       < (SELECT capacity FROM events WHERE id = $1)
		 ON CONFLICT (event_id, user_id) DO NOTHING
		 RETURNING id, registered_at`,
		reg.EventID, reg.UserID,
	).Scan(&reg.ID, &reg.RegisteredAt)
}

// GetRegistration retrieves a single registration row.
func (r *EventRepository) GetRegistration(ctx context.Context, eventID uuid.UUID, userID int) (*model.EventRegistration, error) {
	reg := &model.EventRegistration{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, event_id, user_id, registered_at, checked_in_at
		 FROM event_registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.RegisteredAt, &reg.CheckedInAt)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// CheckIn marks a registration checked in, once. A second scan of the
// same QR code finds checked_in_at already set and gets pgx.ErrNoRows.
func (r *EventRepository) CheckIn(ctx context.Context, eventID uuid.UUID, userID int, at time.Time) (*model.EventRegistration, error) {
	reg := &model.EventRegistration{}
	err := r.pool.QueryRow(ctx,
		`UPDATE event_registrations SET checked_in_at = $3
		 WHERE event_id = $1 AND user_id = $2 AND checked_in_at IS NULL
		 RETURNING id, event_id, user_id, registered_at, checked_in_at`,
		eventID, userID, at,
	).Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.RegisteredAt, &reg.CheckedInAt)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// ListRegistrations retrieves all registrations of an event.
func (r *EventRepository) ListRegistrations(ctx context.Context, eventID uuid.UUID) ([]model.EventRegistration, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, event_id, user_id, registered_at, checked_in_at
		 FROM event_registrations WHERE event_id = $1 ORDER BY registered_at ASC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []model.EventRegistration
	for rows.Next() {
		var reg model.EventRegistration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.RegisteredAt, &reg.CheckedInAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
