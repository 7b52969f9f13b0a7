package app

import (
	"context"

	"github.com/cimillas/ticketcore/internal/clock"
	"github.com/cimillas/ticketcore/internal/domain"
)

type OrganizerRepository interface {
	CreateOrganizer(ctx context.Context, org domain.Organizer) error
	GetOrganizer(ctx context.Context, id string) (domain.Organizer, error)
}

type OrganizerService struct {
	repo  OrganizerRepository
	clock clock.Clock
}

func NewOrganizerService(repo OrganizerRepository, clk clock.Clock) *OrganizerService {
	return &OrganizerService{
		repo:  repo,
		clock: clk,
	}
}

// Register creates an organizer record for the principal. A principal may
// register once; a second call fails rather than upserting.
func (s *OrganizerService) Register(ctx context.Context, principal, name string) (domain.Organizer, error) {
	if principal == "" {
		return domain.Organizer{}, domain.ErrPrincipalRequired
	}
	if name == "" {
		return domain.Organizer{}, domain.ErrNameRequired
	}

	org := domain.Organizer{
		ID:        newID(),
		Principal: principal,
		Name:      name,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.CreateOrganizer(ctx, org); err != nil {
		return domain.Organizer{}, err
	}
	return org, nil
}

func (s *OrganizerService) Get(ctx context.Context, id string) (domain.Organizer, error) {
	if id == "" {
		return domain.Organizer{}, domain.ErrInvalidID
	}
	return s.repo.GetOrganizer(ctx, id)
}
