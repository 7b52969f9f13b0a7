package app

import (
	"context"

	"github.com/cimillas/ticketcore/internal/clock"
	"github.com/cimillas/ticketcore/internal/domain"
)

type ClassRepository interface {
	GetOrganizer(ctx context.Context, id string) (domain.Organizer, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	CreateClass(ctx context.Context, class domain.TicketClass) error
	GetClass(ctx context.Context, id string) (domain.TicketClass, error)
}

type ClassService struct {
	repo  ClassRepository
	clock clock.Clock
}

func NewClassService(repo ClassRepository, clk clock.Clock) *ClassService {
	return &ClassService{
		repo:  repo,
		clock: clk,
	}
}

type AddClassInput struct {
	EventID        string
	Principal      string
	Name           string
	Description    string
	BasePrice      int64
	TotalSupply    int
	Resalable      bool
	PriceModel     domain.PriceModel
	MaxResalePct   int64
	DynamicMarkups []int64
}

// AddClass creates a ticket class on an event that has not ended or been
// cancelled. The resale cap is a ceiling, never a floor: it may not be
// set below face value.
func (s *ClassService) AddClass(ctx context.Context, in AddClassInput) (domain.TicketClass, error) {
	if in.Name == "" {
		return domain.TicketClass{}, domain.ErrNameRequired
	}
	if in.TotalSupply <= 0 {
		return domain.TicketClass{}, domain.ErrInvalidSupply
	}
	if in.BasePrice <= 0 {
		return domain.TicketClass{}, domain.ErrInvalidPrice
	}
	if in.MaxResalePct < domain.ResalePctBase {
		return domain.TicketClass{}, domain.ErrInvalidPercentage
	}
	if err := validateMarkups(in.PriceModel, in.DynamicMarkups); err != nil {
		return domain.TicketClass{}, err
	}

	event, err := s.repo.GetEvent(ctx, in.EventID)
	if err != nil {
		return domain.TicketClass{}, err
	}
	org, err := s.repo.GetOrganizer(ctx, event.OrganizerID)
	if err != nil {
		return domain.TicketClass{}, err
	}
	if org.Principal != in.Principal {
		return domain.TicketClass{}, domain.ErrUnauthorized
	}

	switch event.EffectiveStatus(s.clock.Now()) {
	case domain.EventStatusEnded, domain.EventStatusCancelled:
		return domain.TicketClass{}, domain.ErrEventClosed
	}

	markups := in.DynamicMarkups
	if in.PriceModel != domain.PriceModelDynamic {
		markups = nil
	}

	class := domain.TicketClass{
		ID:             newID(),
		EventID:        event.ID,
		Name:           in.Name,
		Description:    in.Description,
		BasePrice:      in.BasePrice,
		TotalSupply:    in.TotalSupply,
		SoldCount:      0,
		Resalable:      in.Resalable,
		PriceModel:     in.PriceModel,
		MaxResalePct:   in.MaxResalePct,
		DynamicMarkups: markups,
		CreatedAt:      s.clock.Now(),
	}

	if err := s.repo.CreateClass(ctx, class); err != nil {
		return domain.TicketClass{}, err
	}
	return class, nil
}

// Markups must be non-negative and non-decreasing so the current price
// never drops as supply depletes.
func validateMarkups(model domain.PriceModel, markups []int64) error {
	if model != domain.PriceModelDynamic {
		return nil
	}
	if len(markups) == 0 {
		return domain.ErrInvalidPercentage
	}
	prev := int64(0)
	for _, m := range markups {
		if m < prev {
			return domain.ErrInvalidPercentage
		}
		prev = m
	}
	return nil
}

func (s *ClassService) Get(ctx context.Context, id string) (domain.TicketClass, error) {
	if id == "" {
		return domain.TicketClass{}, domain.ErrInvalidID
	}
	return s.repo.GetClass(ctx, id)
}

// CurrentPrice returns the amount the next primary buyer would be charged.
func (s *ClassService) CurrentPrice(ctx context.Context, id string) (int64, error) {
	class, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return class.CurrentPrice(), nil
}
