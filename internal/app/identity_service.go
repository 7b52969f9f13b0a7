package app

import (
	"context"

	"github.com/cimillas/ticketcore/internal/clock"
	"github.com/cimillas/ticketcore/internal/domain"
)

type IdentityRepository interface {
	UpsertVerification(ctx context.Context, v domain.IdentityVerification) error
	IsVerified(ctx context.Context, principal string) (bool, error)
}

type IdentityService struct {
	repo  IdentityRepository
	clock clock.Clock
}

func NewIdentityService(repo IdentityRepository, clk clock.Clock) *IdentityService {
	return &IdentityService{
		repo:  repo,
		clock: clk,
	}
}

// Verify records the caller's verification hash. Re-verification
// overwrites the hash; the record itself is never removed.
func (s *IdentityService) Verify(ctx context.Context, principal, hash string) error {
	if principal == "" {
		return domain.ErrPrincipalRequired
	}
	if hash == "" {
		return domain.ErrVerificationHashRequired
	}
	return s.repo.UpsertVerification(ctx, domain.IdentityVerification{
		Principal:  principal,
		Hash:       hash,
		VerifiedAt: s.clock.Now(),
	})
}

func (s *IdentityService) IsVerified(ctx context.Context, principal string) (bool, error) {
	if principal == "" {
		return false, domain.ErrPrincipalRequired
	}
	return s.repo.IsVerified(ctx, principal)
}
