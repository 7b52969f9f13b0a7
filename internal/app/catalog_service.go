package app

import (
	"context"
	"time"

	"github.com/cimillas/ticketcore/internal/clock"
	"github.com/cimillas/ticketcore/internal/domain"
)

type CatalogRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetOrganizer(ctx context.Context, id string) (domain.Organizer, error)
	CreateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	GetEventForUpdate(ctx context.Context, id string) (domain.Event, error)
	UpdateEventStatus(ctx context.Context, id string, status domain.EventStatus) error
}

type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

type CreateEventInput struct {
	OrganizerID        string
	Principal          string
	Name               string
	Description        string
	Venue              string
	StartsAt           time.Time
	EndsAt             time.Time
	RefundPolicy       string
	RefundWindowHours  int
	IdentityRequired   bool
	MaxTicketsPerBuyer int
	SalesStartAt       time.Time
	SalesEndAt         time.Time
	ImageURL           string
}

// CreateEvent validates the event's time orderings and creates it in
// Draft. Sales must close before the event starts.
func (s *CatalogService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	if in.Name == "" {
		return domain.Event{}, domain.ErrNameRequired
	}
	if !in.StartsAt.Before(in.EndsAt) {
		return domain.Event{}, domain.ErrInvalidWindow
	}
	if in.SalesStartAt.After(in.SalesEndAt) || !in.SalesEndAt.Before(in.StartsAt) {
		return domain.Event{}, domain.ErrInvalidWindow
	}
	if in.RefundWindowHours < 0 {
		return domain.Event{}, domain.ErrInvalidWindow
	}
	if in.MaxTicketsPerBuyer <= 0 {
		return domain.Event{}, domain.ErrInvalidLimit
	}

	org, err := s.repo.GetOrganizer(ctx, in.OrganizerID)
	if err != nil {
		return domain.Event{}, err
	}
	if org.Principal != in.Principal {
		return domain.Event{}, domain.ErrUnauthorized
	}

	event := domain.Event{
		ID:                 newID(),
		OrganizerID:        org.ID,
		Name:               in.Name,
		Description:        in.Description,
		Venue:              in.Venue,
		StartsAt:           in.StartsAt,
		EndsAt:             in.EndsAt,
		RefundPolicy:       in.RefundPolicy,
		RefundWindowHours:  in.RefundWindowHours,
		IdentityRequired:   in.IdentityRequired,
		MaxTicketsPerBuyer: in.MaxTicketsPerBuyer,
		SalesStartAt:       in.SalesStartAt,
		SalesEndAt:         in.SalesEndAt,
		ImageURL:           in.ImageURL,
		Status:             domain.EventStatusDraft,
		CreatedAt:          s.clock.Now(),
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// Publish moves a Draft event on sale. Publishing an event that is
// already on sale is a no-op.
func (s *CatalogService) Publish(ctx context.Context, eventID, principal string) error {
	return s.mutateStatus(ctx, eventID, principal, func(event domain.Event, now time.Time) (domain.EventStatus, error) {
		switch event.EffectiveStatus(now) {
		case domain.EventStatusOnSale:
			return event.Status, nil
		case domain.EventStatusDraft:
			return domain.EventStatusOnSale, nil
		default:
			return "", domain.ErrEventClosed
		}
	})
}

// Cancel marks the event cancelled, which blocks all further sales.
func (s *CatalogService) Cancel(ctx context.Context, eventID, principal string) error {
	return s.mutateStatus(ctx, eventID, principal, func(event domain.Event, now time.Time) (domain.EventStatus, error) {
		if event.EffectiveStatus(now) == domain.EventStatusEnded {
			return "", domain.ErrEventClosed
		}
		return domain.EventStatusCancelled, nil
	})
}

func (s *CatalogService) mutateStatus(ctx context.Context, eventID, principal string, next func(domain.Event, time.Time) (domain.EventStatus, error)) error {
	if eventID == "" {
		return domain.ErrInvalidID
	}
	now := s.clock.Now()

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		org, err := s.repo.GetOrganizer(txCtx, event.OrganizerID)
		if err != nil {
			return err
		}
		if org.Principal != principal {
			return domain.ErrUnauthorized
		}

		status, err := next(event, now)
		if err != nil {
			return err
		}
		if status == event.Status {
			return nil
		}
		return s.repo.UpdateEventStatus(txCtx, eventID, status)
	})
}

// Get returns a snapshot of the event with its status derived against the
// current time, so callers see Ended without any stored-state flip.
func (s *CatalogService) Get(ctx context.Context, id string) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	event.Status = event.EffectiveStatus(s.clock.Now())
	return event, nil
}
