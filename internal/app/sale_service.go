package app

import (
	"context"

	"github.com/cimillas/ticketcore/internal/clock"
	"github.com/cimillas/ticketcore/internal/domain"
)

type SaleRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetClassForUpdate(ctx context.Context, id string) (domain.TicketClass, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	GetOrganizer(ctx context.Context, id string) (domain.Organizer, error)
	CountActiveTickets(ctx context.Context, eventID, owner string) (int, error)
	IsVerified(ctx context.Context, principal string) (bool, error)
	AdjustSoldCount(ctx context.Context, classID string, delta int) error
	CreateTicket(ctx context.Context, ticket domain.Ticket) error
	GetTicket(ctx context.Context, id string) (domain.Ticket, error)
}

type SaleService struct {
	repo   SaleRepository
	ledger Ledger
	clock  clock.Clock
}

func NewSaleService(repo SaleRepository, ledger Ledger, clk clock.Clock) *SaleService {
	return &SaleService{
		repo:   repo,
		ledger: ledger,
		clock:  clk,
	}
}

// BuyTicket mints a ticket from the class's supply. Preconditions are
// checked in order and the first failure wins: sales window, supply,
// per-buyer limit, identity verification. The supply check and increment
// run under the class row lock, so two concurrent buyers can never both
// take the last seat.
func (s *SaleService) BuyTicket(ctx context.Context, classID, buyer string) (domain.Ticket, error) {
	if buyer == "" {
		return domain.Ticket{}, domain.ErrPrincipalRequired
	}
	if classID == "" {
		return domain.Ticket{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result domain.Ticket

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		class, err := s.repo.GetClassForUpdate(txCtx, classID)
		if err != nil {
			return err
		}
		event, err := s.repo.GetEvent(txCtx, class.EventID)
		if err != nil {
			return err
		}

		if !event.SaleOpen(now) {
			return domain.ErrNoActiveSale
		}
		if class.SoldCount >= class.TotalSupply {
			return domain.ErrSoldOut
		}

		owned, err := s.repo.CountActiveTickets(txCtx, event.ID, buyer)
		if err != nil {
			return err
		}
		if owned >= event.MaxTicketsPerBuyer {
			return domain.ErrBuyerLimitExceeded
		}

		if event.IdentityRequired {
			verified, err := s.repo.IsVerified(txCtx, buyer)
			if err != nil {
				return err
			}
			if !verified {
				return domain.ErrIdentityNotVerified
			}
		}

		org, err := s.repo.GetOrganizer(txCtx, event.OrganizerID)
		if err != nil {
			return err
		}

		price := class.CurrentPrice()
		if err := s.repo.AdjustSoldCount(txCtx, class.ID, 1); err != nil {
			return err
		}
		if err := s.ledger.Charge(txCtx, buyer, org.Principal, price, "primary:"+class.ID); err != nil {
			return err
		}

		ticket := domain.Ticket{
			ID:               newID(),
			ClassID:          class.ID,
			EventID:          event.ID,
			Owner:            buyer,
			Status:           domain.TicketStatusValid,
			PricePaid:        price,
			PurchasedAt:      now,
			VerificationSeed: newSeed(),
		}
		if err := s.repo.CreateTicket(txCtx, ticket); err != nil {
			return err
		}

		result = ticket
		return nil
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	return result, nil
}

// GetTicket returns a snapshot of the ticket.
func (s *SaleService) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	if id == "" {
		return domain.Ticket{}, domain.ErrInvalidID
	}
	return s.repo.GetTicket(ctx, id)
}
