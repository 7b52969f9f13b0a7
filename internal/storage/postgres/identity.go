package postgres

import (
	"context"
	"fmt"

	"github.com/cimillas/ticketcore/internal/domain"
)

func (s *Store) UpsertVerification(ctx context.Context, v domain.IdentityVerification) error {
	const stmt = `
INSERT INTO identity_verifications (principal, hash, verified_at)
VALUES ($1, $2, $3)
ON CONFLICT (principal) DO UPDATE SET hash = EXCLUDED.hash, verified_at = EXCLUDED.verified_at`

	if _, err := s.exec(ctx, stmt, v.Principal, v.Hash, v.VerifiedAt); err != nil {
		return fmt.Errorf("upsert verification: %w", err)
	}
	return nil
}

func (s *Store) IsVerified(ctx context.Context, principal string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM identity_verifications WHERE principal = $1)`

	var verified bool
	if err := s.queryRow(ctx, query, principal).Scan(&verified); err != nil {
		return false, fmt.Errorf("check verification: %w", err)
	}
	return verified, nil
}
