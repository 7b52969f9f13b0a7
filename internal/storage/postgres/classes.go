package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/ticketcore/internal/domain"
	"github.com/jackc/pgx/v5"
)

const classColumns = `id, event_id, name, description, base_price, total_supply, sold_count,
resalable, price_model, max_resale_pct, dynamic_markups, created_at`

func (s *Store) CreateClass(ctx context.Context, class domain.TicketClass) error {
	const stmt = `
INSERT INTO ticket_classes (id, event_id, name, description, base_price, total_supply,
	sold_count, resalable, price_model, max_resale_pct, dynamic_markups, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.exec(ctx, stmt,
		class.ID,
		class.EventID,
		class.Name,
		class.Description,
		class.BasePrice,
		class.TotalSupply,
		class.SoldCount,
		class.Resalable,
		class.PriceModel,
		class.MaxResalePct,
		class.DynamicMarkups,
		class.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("create ticket class: %w", err)
	}
	return nil
}

func (s *Store) GetClass(ctx context.Context, id string) (domain.TicketClass, error) {
	return s.getClass(ctx, id, false)
}

func (s *Store) GetClassForUpdate(ctx context.Context, id string) (domain.TicketClass, error) {
	return s.getClass(ctx, id, true)
}

func (s *Store) getClass(ctx context.Context, id string, forUpdate bool) (domain.TicketClass, error) {
	query := `SELECT ` + classColumns + ` FROM ticket_classes WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		class domain.TicketClass
		model string
	)
	err := s.queryRow(ctx, query, id).Scan(
		&class.ID,
		&class.EventID,
		&class.Name,
		&class.Description,
		&class.BasePrice,
		&class.TotalSupply,
		&class.SoldCount,
		&class.Resalable,
		&model,
		&class.MaxResalePct,
		&class.DynamicMarkups,
		&class.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.TicketClass{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.TicketClass{}, domain.ErrClassNotFound
		}
		return domain.TicketClass{}, fmt.Errorf("get ticket class: %w", err)
	}
	class.PriceModel = domain.PriceModel(model)
	return class, nil
}

// AdjustSoldCount moves the sold counter by delta. The row's CHECK
// constraints reject a move outside [0, total_supply]; the service has
// already verified the bound under the row lock, so tripping the check
// means a competing path slipped through and the caller's error stands.
func (s *Store) AdjustSoldCount(ctx context.Context, classID string, delta int) error {
	const stmt = `UPDATE ticket_classes SET sold_count = sold_count + $2 WHERE id = $1`

	tag, err := s.exec(ctx, stmt, classID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrSoldOut
		}
		return fmt.Errorf("adjust sold count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClassNotFound
	}
	return nil
}
