package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/ticketcore/internal/domain"
	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateOrganizer(ctx context.Context, org domain.Organizer) error {
	const stmt = `
INSERT INTO organizers (id, principal, name, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := s.exec(ctx, stmt, org.ID, org.Principal, org.Name, org.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return fmt.Errorf("create organizer: %w", err)
	}
	return nil
}

func (s *Store) GetOrganizer(ctx context.Context, id string) (domain.Organizer, error) {
	const query = `SELECT id, principal, name, created_at FROM organizers WHERE id = $1`

	var org domain.Organizer
	err := s.queryRow(ctx, query, id).Scan(&org.ID, &org.Principal, &org.Name, &org.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Organizer{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Organizer{}, domain.ErrOrganizerNotFound
		}
		return domain.Organizer{}, fmt.Errorf("get organizer: %w", err)
	}
	return org, nil
}
