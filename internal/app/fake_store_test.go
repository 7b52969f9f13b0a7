package app

import (
	"context"
	"sync"
	"time"

	"github.com/cimillas/ticketcore/internal/domain"
)

// fakeStore is an in-memory stand-in for the Postgres store. WithTx runs
// the whole closure under one mutex, which mirrors the serialization the
// row locks give the real store closely enough for service-level tests.
// Reads outside a transaction are only used single-goroutine in tests.
type fakeStore struct {
	mu         sync.Mutex
	organizers map[string]domain.Organizer
	events     map[string]domain.Event
	classes    map[string]domain.TicketClass
	tickets    map[string]domain.Ticket
	listings   map[string]domain.Listing
	verified   map[string]domain.IdentityVerification
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		organizers: make(map[string]domain.Organizer),
		events:     make(map[string]domain.Event),
		classes:    make(map[string]domain.TicketClass),
		tickets:    make(map[string]domain.Ticket),
		listings:   make(map[string]domain.Listing),
		verified:   make(map[string]domain.IdentityVerification),
	}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeStore) CreateOrganizer(ctx context.Context, org domain.Organizer) error {
	for _, existing := range f.organizers {
		if existing.Principal == org.Principal {
			return domain.ErrAlreadyRegistered
		}
	}
	f.organizers[org.ID] = org
	return nil
}

func (f *fakeStore) GetOrganizer(ctx context.Context, id string) (domain.Organizer, error) {
	org, ok := f.organizers[id]
	if !ok {
		return domain.Organizer{}, domain.ErrOrganizerNotFound
	}
	return org, nil
}

func (f *fakeStore) CreateEvent(ctx context.Context, event domain.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeStore) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeStore) GetEventForUpdate(ctx context.Context, id string) (domain.Event, error) {
	return f.GetEvent(ctx, id)
}

func (f *fakeStore) UpdateEventStatus(ctx context.Context, id string, status domain.EventStatus) error {
	event, ok := f.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	event.Status = status
	f.events[id] = event
	return nil
}

func (f *fakeStore) CreateClass(ctx context.Context, class domain.TicketClass) error {
	f.classes[class.ID] = class
	return nil
}

func (f *fakeStore) GetClass(ctx context.Context, id string) (domain.TicketClass, error) {
	class, ok := f.classes[id]
	if !ok {
		return domain.TicketClass{}, domain.ErrClassNotFound
	}
	return class, nil
}

func (f *fakeStore) GetClassForUpdate(ctx context.Context, id string) (domain.TicketClass, error) {
	return f.GetClass(ctx, id)
}

func (f *fakeStore) AdjustSoldCount(ctx context.Context, classID string, delta int) error {
	class, ok := f.classes[classID]
	if !ok {
		return domain.ErrClassNotFound
	}
	next := class.SoldCount + delta
	if next < 0 || next > class.TotalSupply {
		return domain.ErrSoldOut
	}
	class.SoldCount = next
	f.classes[classID] = class
	return nil
}

func (f *fakeStore) CreateTicket(ctx context.Context, ticket domain.Ticket) error {
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeStore) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return domain.Ticket{}, domain.ErrTicketNotFound
	}
	return ticket, nil
}

func (f *fakeStore) GetTicketForUpdate(ctx context.Context, id string) (domain.Ticket, error) {
	return f.GetTicket(ctx, id)
}

func (f *fakeStore) CountActiveTickets(ctx context.Context, eventID, owner string) (int, error) {
	count := 0
	for _, ticket := range f.tickets {
		if ticket.EventID == eventID && ticket.Owner == owner && ticket.Status != domain.TicketStatusRefunded {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	ticket, ok := f.tickets[id]
	if !ok {
		return domain.ErrTicketNotFound
	}
	ticket.Status = status
	f.tickets[id] = ticket
	return nil
}

func (f *fakeStore) TransferTicket(ctx context.Context, id, owner string, status domain.TicketStatus) error {
	ticket, ok := f.tickets[id]
	if !ok {
		return domain.ErrTicketNotFound
	}
	ticket.Owner = owner
	ticket.Status = status
	f.tickets[id] = ticket
	return nil
}

func (f *fakeStore) CreateListing(ctx context.Context, listing domain.Listing) error {
	for _, existing := range f.listings {
		if existing.TicketID == listing.TicketID && existing.Status == domain.ListingStatusActive {
			return domain.ErrAlreadyListed
		}
	}
	f.listings[listing.ID] = listing
	return nil
}

func (f *fakeStore) GetListing(ctx context.Context, id string) (domain.Listing, error) {
	listing, ok := f.listings[id]
	if !ok {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return listing, nil
}

func (f *fakeStore) GetListingForUpdate(ctx context.Context, id string) (domain.Listing, error) {
	return f.GetListing(ctx, id)
}

func (f *fakeStore) UpdateListingStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	listing, ok := f.listings[id]
	if !ok {
		return domain.ErrListingNotFound
	}
	listing.Status = status
	f.listings[id] = listing
	return nil
}

func (f *fakeStore) UpsertVerification(ctx context.Context, v domain.IdentityVerification) error {
	f.verified[v.Principal] = v
	return nil
}

func (f *fakeStore) IsVerified(ctx context.Context, principal string) (bool, error) {
	_, ok := f.verified[principal]
	return ok, nil
}

// fakeLedger records charge instructions instead of moving value.
type fakeLedger struct {
	mu      sync.Mutex
	charges []charge
	err     error
}

type charge struct {
	payer  string
	payee  string
	amount int64
	memo   string
}

func (l *fakeLedger) Charge(ctx context.Context, payer, payee string, amount int64, memo string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.charges = append(l.charges, charge{payer: payer, payee: payee, amount: amount, memo: memo})
	return nil
}

func (l *fakeLedger) total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.charges)
}

// Seed helpers shared by the service tests.

func seedOrganizer(f *fakeStore, principal string) domain.Organizer {
	org := domain.Organizer{ID: newID(), Principal: principal, Name: "Org " + principal}
	f.organizers[org.ID] = org
	return org
}

func seedEvent(f *fakeStore, organizerID string, startsAt time.Time, maxPerBuyer int) domain.Event {
	event := domain.Event{
		ID:                 newID(),
		OrganizerID:        organizerID,
		Name:               "Test Event",
		StartsAt:           startsAt,
		EndsAt:             startsAt.Add(4 * time.Hour),
		RefundWindowHours:  24,
		MaxTicketsPerBuyer: maxPerBuyer,
		SalesStartAt:       startsAt.Add(-30 * 24 * time.Hour),
		SalesEndAt:         startsAt.Add(-time.Hour),
		Status:             domain.EventStatusOnSale,
	}
	f.events[event.ID] = event
	return event
}

func seedClass(f *fakeStore, eventID string, basePrice int64, supply int) domain.TicketClass {
	class := domain.TicketClass{
		ID:           newID(),
		EventID:      eventID,
		Name:         "General Admission",
		BasePrice:    basePrice,
		TotalSupply:  supply,
		Resalable:    true,
		PriceModel:   domain.PriceModelFixed,
		MaxResalePct: 11000,
	}
	f.classes[class.ID] = class
	return class
}

func seedTicket(f *fakeStore, classID, eventID, owner string, price int64) domain.Ticket {
	ticket := domain.Ticket{
		ID:               newID(),
		ClassID:          classID,
		EventID:          eventID,
		Owner:            owner,
		Status:           domain.TicketStatusValid,
		PricePaid:        price,
		VerificationSeed: newSeed(),
	}
	f.tickets[ticket.ID] = ticket
	return ticket
}
