package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/ticketcore/internal/domain"
	"github.com/jackc/pgx/v5"
)

const listingColumns = `id, ticket_id, seller_principal, price, expires_at, status, created_at`

func (s *Store) CreateListing(ctx context.Context, listing domain.Listing) error {
	const stmt = `
INSERT INTO listings (id, ticket_id, seller_principal, price, expires_at, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.exec(ctx, stmt,
		listing.ID,
		listing.TicketID,
		listing.Seller,
		listing.Price,
		listing.ExpiresAt,
		listing.Status,
		listing.CreatedAt,
	)
	if err != nil {
		// Partial unique index on (ticket_id) WHERE status = 'active'.
		if isUniqueViolation(err) {
			return domain.ErrAlreadyListed
		}
		if isForeignKeyViolation(err) {
			return domain.ErrTicketNotFound
		}
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (s *Store) GetListing(ctx context.Context, id string) (domain.Listing, error) {
	return s.getListing(ctx, id, false)
}

func (s *Store) GetListingForUpdate(ctx context.Context, id string) (domain.Listing, error) {
	return s.getListing(ctx, id, true)
}

func (s *Store) getListing(ctx context.Context, id string, forUpdate bool) (domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		listing domain.Listing
		status  string
	)
	err := s.queryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.TicketID,
		&listing.Seller,
		&listing.Price,
		&listing.ExpiresAt,
		&status,
		&listing.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Listing{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Listing{}, domain.ErrListingNotFound
		}
		return domain.Listing{}, fmt.Errorf("get listing: %w", err)
	}
	listing.Status = domain.ListingStatus(status)
	return listing, nil
}

func (s *Store) UpdateListingStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	const stmt = `UPDATE listings SET status = $2 WHERE id = $1`

	tag, err := s.exec(ctx, stmt, id, status)
	if err != nil {
		return fmt.Errorf("update listing status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}
