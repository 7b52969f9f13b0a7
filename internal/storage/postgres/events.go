package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/ticketcore/internal/domain"
	"github.com/jackc/pgx/v5"
)

const eventColumns = `id, organizer_id, name, description, venue, starts_at, ends_at,
refund_policy, refund_window_hours, identity_required, max_tickets_per_buyer,
sales_start_at, sales_end_at, image_url, status, created_at`

func (s *Store) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, organizer_id, name, description, venue, starts_at, ends_at,
	refund_policy, refund_window_hours, identity_required, max_tickets_per_buyer,
	sales_start_at, sales_end_at, image_url, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := s.exec(ctx, stmt,
		event.ID,
		event.OrganizerID,
		event.Name,
		event.Description,
		event.Venue,
		event.StartsAt,
		event.EndsAt,
		event.RefundPolicy,
		event.RefundWindowHours,
		event.IdentityRequired,
		event.MaxTicketsPerBuyer,
		event.SalesStartAt,
		event.SalesEndAt,
		event.ImageURL,
		event.Status,
		event.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrOrganizerNotFound
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	return s.getEvent(ctx, id, false)
}

func (s *Store) GetEventForUpdate(ctx context.Context, id string) (domain.Event, error) {
	return s.getEvent(ctx, id, true)
}

func (s *Store) getEvent(ctx context.Context, id string, forUpdate bool) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		event  domain.Event
		status string
	)
	err := s.queryRow(ctx, query, id).Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Name,
		&event.Description,
		&event.Venue,
		&event.StartsAt,
		&event.EndsAt,
		&event.RefundPolicy,
		&event.RefundWindowHours,
		&event.IdentityRequired,
		&event.MaxTicketsPerBuyer,
		&event.SalesStartAt,
		&event.SalesEndAt,
		&event.ImageURL,
		&status,
		&event.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	event.Status = domain.EventStatus(status)
	return event, nil
}

func (s *Store) UpdateEventStatus(ctx context.Context, id string, status domain.EventStatus) error {
	const stmt = `UPDATE events SET status = $2 WHERE id = $1`

	tag, err := s.exec(ctx, stmt, id, status)
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
