package app

import (
	"context"
	"time"

	"github.com/cimillas/ticketcore/internal/clock"
	"github.com/cimillas/ticketcore/internal/domain"
)

type MarketRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetTicketForUpdate(ctx context.Context, id string) (domain.Ticket, error)
	GetClass(ctx context.Context, id string) (domain.TicketClass, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	CountActiveTickets(ctx context.Context, eventID, owner string) (int, error)
	CreateListing(ctx context.Context, listing domain.Listing) error
	GetListing(ctx context.Context, id string) (domain.Listing, error)
	GetListingForUpdate(ctx context.Context, id string) (domain.Listing, error)
	UpdateListingStatus(ctx context.Context, id string, status domain.ListingStatus) error
	UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus) error
	TransferTicket(ctx context.Context, id, owner string, status domain.TicketStatus) error
}

type MarketService struct {
	repo   MarketRepository
	ledger Ledger
	clock  clock.Clock
}

func NewMarketService(repo MarketRepository, ledger Ledger, clk clock.Clock) *MarketService {
	return &MarketService{
		repo:   repo,
		ledger: ledger,
		clock:  clk,
	}
}

type ListInput struct {
	TicketID  string
	Principal string
	Price     int64
	ExpiresAt *time.Time
}

// List puts a valid ticket up for resale. The asking price is checked
// against the class's resale cap at creation time; the ticket moves to
// Listed so a second listing cannot be created while this one is active.
func (s *MarketService) List(ctx context.Context, in ListInput) (domain.Listing, error) {
	if in.TicketID == "" {
		return domain.Listing{}, domain.ErrInvalidID
	}
	if in.Principal == "" {
		return domain.Listing{}, domain.ErrPrincipalRequired
	}
	if in.Price <= 0 {
		return domain.Listing{}, domain.ErrInvalidPrice
	}

	now := s.clock.Now()
	if in.ExpiresAt != nil && !in.ExpiresAt.After(now) {
		return domain.Listing{}, domain.ErrInvalidWindow
	}

	var result domain.Listing

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		ticket, err := s.repo.GetTicketForUpdate(txCtx, in.TicketID)
		if err != nil {
			return err
		}
		if ticket.Owner != in.Principal {
			return domain.ErrNotOwner
		}
		switch ticket.Status {
		case domain.TicketStatusValid:
		case domain.TicketStatusListed:
			return domain.ErrAlreadyListed
		default:
			return domain.ErrTicketNotValid
		}

		class, err := s.repo.GetClass(txCtx, ticket.ClassID)
		if err != nil {
			return err
		}
		if !class.Resalable {
			return domain.ErrNotResalable
		}
		if in.Price > class.MaxResalePrice() {
			return domain.ErrPriceAboveCap
		}

		listing := domain.Listing{
			ID:        newID(),
			TicketID:  ticket.ID,
			Seller:    in.Principal,
			Price:     in.Price,
			ExpiresAt: in.ExpiresAt,
			Status:    domain.ListingStatusActive,
			CreatedAt: now,
		}
		if err := s.repo.CreateListing(txCtx, listing); err != nil {
			return err
		}
		if err := s.repo.UpdateTicketStatus(txCtx, ticket.ID, domain.TicketStatusListed); err != nil {
			return err
		}

		result = listing
		return nil
	})
	if err != nil {
		return domain.Listing{}, err
	}
	return result, nil
}

// CancelListing withdraws an active listing and returns the ticket to
// Valid. Ownership is untouched.
func (s *MarketService) CancelListing(ctx context.Context, listingID, principal string) error {
	if listingID == "" {
		return domain.ErrInvalidID
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		listing, err := s.repo.GetListingForUpdate(txCtx, listingID)
		if err != nil {
			return err
		}
		if listing.Seller != principal {
			return domain.ErrNotOwner
		}
		if listing.Status != domain.ListingStatusActive {
			return domain.ErrListingUnavailable
		}

		if err := s.repo.UpdateListingStatus(txCtx, listingID, domain.ListingStatusCancelled); err != nil {
			return err
		}
		return s.repo.UpdateTicketStatus(txCtx, listing.TicketID, domain.TicketStatusValid)
	})
}

// BuySecondary transfers the listed ticket to the buyer. The listing row
// lock serializes competing buyers, so a listing is consumed at most
// once; the transfer and the listing-state flip commit as one unit.
func (s *MarketService) BuySecondary(ctx context.Context, listingID, buyer string) (domain.Ticket, error) {
	if listingID == "" {
		return domain.Ticket{}, domain.ErrInvalidID
	}
	if buyer == "" {
		return domain.Ticket{}, domain.ErrPrincipalRequired
	}

	now := s.clock.Now()
	var result domain.Ticket

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		listing, err := s.repo.GetListingForUpdate(txCtx, listingID)
		if err != nil {
			return err
		}
		if !listing.Available(now) {
			return domain.ErrListingUnavailable
		}
		if listing.Seller == buyer {
			return domain.ErrSelfPurchase
		}

		ticket, err := s.repo.GetTicketForUpdate(txCtx, listing.TicketID)
		if err != nil {
			return err
		}
		event, err := s.repo.GetEvent(txCtx, ticket.EventID)
		if err != nil {
			return err
		}
		if now.After(event.EndsAt) || event.Status == domain.EventStatusCancelled {
			return domain.ErrListingUnavailable
		}

		owned, err := s.repo.CountActiveTickets(txCtx, event.ID, buyer)
		if err != nil {
			return err
		}
		if owned >= event.MaxTicketsPerBuyer {
			return domain.ErrBuyerLimitExceeded
		}

		if err := s.repo.UpdateListingStatus(txCtx, listingID, domain.ListingStatusSold); err != nil {
			return err
		}
		if err := s.repo.TransferTicket(txCtx, ticket.ID, buyer, domain.TicketStatusValid); err != nil {
			return err
		}
		if err := s.ledger.Charge(txCtx, buyer, listing.Seller, listing.Price, "resale:"+listing.ID); err != nil {
			return err
		}

		ticket.Owner = buyer
		ticket.Status = domain.TicketStatusValid
		result = ticket
		return nil
	})
	if err != nil {
		return domain.Ticket{}, err
	}
	return result, nil
}

func (s *MarketService) GetListing(ctx context.Context, id string) (domain.Listing, error) {
	if id == "" {
		return domain.Listing{}, domain.ErrInvalidID
	}
	return s.repo.GetListing(ctx, id)
}
