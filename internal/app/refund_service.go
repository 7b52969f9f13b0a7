package app

import (
	"context"

	"github.com/cimillas/ticketcore/internal/clock"
	"github.com/cimillas/ticketcore/internal/domain"
)

type RefundRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetTicketForUpdate(ctx context.Context, id string) (domain.Ticket, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	GetOrganizer(ctx context.Context, id string) (domain.Organizer, error)
	GetClassForUpdate(ctx context.Context, id string) (domain.TicketClass, error)
	AdjustSoldCount(ctx context.Context, classID string, delta int) error
	UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus) error
}

type RefundService struct {
	repo   RefundRepository
	ledger Ledger
	clock  clock.Clock
}

func NewRefundService(repo RefundRepository, ledger Ledger, clk clock.Clock) *RefundService {
	return &RefundService{
		repo:   repo,
		ledger: ledger,
		clock:  clk,
	}
}

// Refund cancels the caller's ticket inside the event's refund window and
// returns the amount actually paid for it, not the class's current price.
// The class's sold count is decremented, so the slot becomes purchasable
// again. A listed ticket must be delisted first.
func (s *RefundService) Refund(ctx context.Context, ticketID, principal string) (int64, error) {
	if ticketID == "" {
		return 0, domain.ErrInvalidID
	}
	if principal == "" {
		return 0, domain.ErrPrincipalRequired
	}

	now := s.clock.Now()
	var amount int64

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.repo.GetTicketForUpdate(txCtx, ticketID)
		if err != nil {
			return err
		}
		if ticket.Owner != principal {
			return domain.ErrNotOwner
		}
		if ticket.Status != domain.TicketStatusValid {
			return domain.ErrTicketNotValid
		}

		event, err := s.repo.GetEvent(txCtx, ticket.EventID)
		if err != nil {
			return err
		}
		if !now.Before(event.StartsAt) {
			return domain.ErrEventAlreadyStarted
		}
		if now.Before(event.RefundWindowOpensAt()) {
			return domain.ErrOutsideRefundWindow
		}

		// Lock the class row before releasing the slot so the decrement
		// serializes with concurrent primary sales.
		class, err := s.repo.GetClassForUpdate(txCtx, ticket.ClassID)
		if err != nil {
			return err
		}
		if err := s.repo.AdjustSoldCount(txCtx, class.ID, -1); err != nil {
			return err
		}

		org, err := s.repo.GetOrganizer(txCtx, event.OrganizerID)
		if err != nil {
			return err
		}
		if err := s.ledger.Charge(txCtx, org.Principal, ticket.Owner, ticket.PricePaid, "refund:"+ticket.ID); err != nil {
			return err
		}
		if err := s.repo.UpdateTicketStatus(txCtx, ticket.ID, domain.TicketStatusRefunded); err != nil {
			return err
		}

		amount = ticket.PricePaid
		return nil
	})
	if err != nil {
		return 0, err
	}
	return amount, nil
}
