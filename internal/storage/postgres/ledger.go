package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Charge appends a transfer instruction to the journal. It implements
// the app.Ledger port: the row commits atomically with the state change
// that caused it, and an external settlement process drains the table.
func (s *Store) Charge(ctx context.Context, payer, payee string, amount int64, memo string) error {
	const stmt = `
INSERT INTO transfers (id, payer, payee, amount, memo, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())`

	if _, err := s.exec(ctx, stmt, uuid.NewString(), payer, payee, amount, memo); err != nil {
		return fmt.Errorf("record transfer: %w", err)
	}
	return nil
}
