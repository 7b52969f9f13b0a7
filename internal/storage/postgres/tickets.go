package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/ticketcore/internal/domain"
	"github.com/jackc/pgx/v5"
)

const ticketColumns = `id, class_id, event_id, owner_principal, status, price_paid,
purchased_at, verification_seed`

func (s *Store) CreateTicket(ctx context.Context, ticket domain.Ticket) error {
	const stmt = `
INSERT INTO tickets (id, class_id, event_id, owner_principal, status, price_paid,
	purchased_at, verification_seed)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.exec(ctx, stmt,
		ticket.ID,
		ticket.ClassID,
		ticket.EventID,
		ticket.Owner,
		ticket.Status,
		ticket.PricePaid,
		ticket.PurchasedAt,
		ticket.VerificationSeed,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrClassNotFound
		}
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (s *Store) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	return s.getTicket(ctx, id, false)
}

func (s *Store) GetTicketForUpdate(ctx context.Context, id string) (domain.Ticket, error) {
	return s.getTicket(ctx, id, true)
}

func (s *Store) getTicket(ctx context.Context, id string, forUpdate bool) (domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		ticket domain.Ticket
		status string
	)
	err := s.queryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.ClassID,
		&ticket.EventID,
		&ticket.Owner,
		&status,
		&ticket.PricePaid,
		&ticket.PurchasedAt,
		&ticket.VerificationSeed,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Ticket{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Ticket{}, domain.ErrTicketNotFound
		}
		return domain.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}
	ticket.Status = domain.TicketStatus(status)
	return ticket, nil
}

// CountActiveTickets counts the owner's non-refunded tickets for an
// event. Used, listed and valid tickets all consume the per-buyer limit;
// only a refund releases it.
func (s *Store) CountActiveTickets(ctx context.Context, eventID, owner string) (int, error) {
	const query = `
SELECT COUNT(*)
FROM tickets
WHERE event_id = $1 AND owner_principal = $2 AND status <> 'refunded'`

	var total int
	if err := s.queryRow(ctx, query, eventID, owner).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count active tickets: %w", err)
	}
	return total, nil
}

func (s *Store) UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	const stmt = `UPDATE tickets SET status = $2 WHERE id = $1`

	tag, err := s.exec(ctx, stmt, id, status)
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

func (s *Store) TransferTicket(ctx context.Context, id, owner string, status domain.TicketStatus) error {
	const stmt = `UPDATE tickets SET owner_principal = $2, status = $3 WHERE id = $1`

	tag, err := s.exec(ctx, stmt, id, owner, status)
	if err != nil {
		return fmt.Errorf("transfer ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}
