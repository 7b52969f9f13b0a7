package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cimillas/ticketcore/internal/app"
	"github.com/cimillas/ticketcore/internal/clock"
	"github.com/cimillas/ticketcore/internal/domain"
	"github.com/cimillas/ticketcore/internal/storage/postgres"
	"github.com/cimillas/ticketcore/internal/testutil"
)

func TestConcurrentPurchase_LastTicket(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	store := postgres.NewStore(pool)
	svc := app.NewSaleService(store, store, clock.NewSystem())

	startsAt := time.Now().Add(48 * time.Hour)
	orgID := testutil.InsertOrganizer(t, ctx, pool, "alice", "Alice Events")
	eventID := testutil.InsertEvent(t, ctx, pool, orgID, startsAt, 5)
	classID := testutil.InsertClass(t, ctx, pool, eventID, 100_000_000, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	buyers := []string{"bob", "carol"}
	for i := range buyers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.BuyTicket(ctx, classID, buyers[i])
		}(i)
	}
	wg.Wait()

	var sold, soldOut int
	for _, err := range errs {
		switch err {
		case nil:
			sold++
		case domain.ErrSoldOut:
			soldOut++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if sold != 1 || soldOut != 1 {
		t.Fatalf("expected exactly one sale and one sold-out, got %d/%d", sold, soldOut)
	}

	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE class_id = $1`, classID).Scan(&count); err != nil {
		t.Fatalf("count tickets: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 ticket, got %d", count)
	}

	var soldCount int
	if err := pool.QueryRow(ctx, `SELECT sold_count FROM ticket_classes WHERE id = $1`, classID).Scan(&soldCount); err != nil {
		t.Fatalf("query sold count: %v", err)
	}
	if soldCount != 1 {
		t.Fatalf("expected sold_count 1, got %d", soldCount)
	}
}

func TestConcurrentSecondaryPurchase_SingleConsumer(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	store := postgres.NewStore(pool)
	svc := app.NewMarketService(store, store, clock.NewSystem())

	startsAt := time.Now().Add(48 * time.Hour)
	orgID := testutil.InsertOrganizer(t, ctx, pool, "alice", "Alice Events")
	eventID := testutil.InsertEvent(t, ctx, pool, orgID, startsAt, 5)
	classID := testutil.InsertClass(t, ctx, pool, eventID, 100_000_000, 10)
	ticketID := testutil.InsertTicket(t, ctx, pool, classID, eventID, "bob", domain.TicketStatusValid, 100_000_000)

	listing, err := svc.List(ctx, app.ListInput{TicketID: ticketID, Principal: "bob", Price: 105_000_000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	buyers := []string{"carol", "dave"}
	for i := range buyers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.BuySecondary(ctx, listing.ID, buyers[i])
		}(i)
	}
	wg.Wait()

	var won, lost int
	winner := ""
	for i, err := range errs {
		switch err {
		case nil:
			won++
			winner = buyers[i]
		case domain.ErrListingUnavailable:
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 || lost != 1 {
		t.Fatalf("expected exactly one winner and one loser, got %d/%d", won, lost)
	}

	var owner string
	if err := pool.QueryRow(ctx, `SELECT owner_principal FROM tickets WHERE id = $1`, ticketID).Scan(&owner); err != nil {
		t.Fatalf("query owner: %v", err)
	}
	if owner != winner {
		t.Fatalf("expected owner %s, got %s", winner, owner)
	}
}

func TestCreateOrganizer_DuplicatePrincipal(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	store := postgres.NewStore(pool)
	svc := app.NewOrganizerService(store, clock.NewSystem())

	if _, err := svc.Register(ctx, "alice", "Alice Events"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "Alice Again"); err != domain.ErrAlreadyRegistered {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestCreateListing_OneActivePerTicket(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	store := postgres.NewStore(pool)
	svc := app.NewMarketService(store, store, clock.NewSystem())

	startsAt := time.Now().Add(48 * time.Hour)
	orgID := testutil.InsertOrganizer(t, ctx, pool, "alice", "Alice Events")
	eventID := testutil.InsertEvent(t, ctx, pool, orgID, startsAt, 5)
	classID := testutil.InsertClass(t, ctx, pool, eventID, 100_000_000, 10)
	ticketID := testutil.InsertTicket(t, ctx, pool, classID, eventID, "bob", domain.TicketStatusValid, 100_000_000)

	listing, err := svc.List(ctx, app.ListInput{TicketID: ticketID, Principal: "bob", Price: 105_000_000})
	if err != nil {
		t.Fatalf("first listing: %v", err)
	}
	if _, err := svc.List(ctx, app.ListInput{TicketID: ticketID, Principal: "bob", Price: 105_000_000}); err != domain.ErrAlreadyListed {
		t.Fatalf("expected ErrAlreadyListed on listed ticket, got %v", err)
	}

	// Cancelling releases the slot so the ticket can be listed again.
	if err := svc.CancelListing(ctx, listing.ID, "bob"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.List(ctx, app.ListInput{TicketID: ticketID, Principal: "bob", Price: 104_000_000}); err != nil {
		t.Fatalf("relist: %v", err)
	}
}

func TestIdentityVerification_Upsert(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	store := postgres.NewStore(pool)
	svc := app.NewIdentityService(store, clock.NewSystem())

	if err := svc.Verify(ctx, "bob", "sha256:old"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := svc.Verify(ctx, "bob", "sha256:new"); err != nil {
		t.Fatalf("re-verify: %v", err)
	}

	verified, err := svc.IsVerified(ctx, "bob")
	if err != nil || !verified {
		t.Fatalf("expected verified, got %v %v", verified, err)
	}

	var hash string
	if err := pool.QueryRow(ctx, `SELECT hash FROM identity_verifications WHERE principal = $1`, "bob").Scan(&hash); err != nil {
		t.Fatalf("query hash: %v", err)
	}
	if hash != "sha256:new" {
		t.Fatalf("expected replaced hash, got %s", hash)
	}
}

func TestCharge_WritesTransferJournal(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	store := postgres.NewStore(pool)
	svc := app.NewSaleService(store, store, clock.NewSystem())

	startsAt := time.Now().Add(48 * time.Hour)
	orgID := testutil.InsertOrganizer(t, ctx, pool, "alice", "Alice Events")
	eventID := testutil.InsertEvent(t, ctx, pool, orgID, startsAt, 5)
	classID := testutil.InsertClass(t, ctx, pool, eventID, 100_000_000, 10)

	if _, err := svc.BuyTicket(ctx, classID, "bob"); err != nil {
		t.Fatalf("buy: %v", err)
	}

	var payer, payee string
	var amount int64
	if err := pool.QueryRow(ctx,
		`SELECT payer, payee, amount FROM transfers WHERE memo = $1`, "primary:"+classID,
	).Scan(&payer, &payee, &amount); err != nil {
		t.Fatalf("query transfer: %v", err)
	}
	if payer != "bob" || payee != "alice" || amount != 100_000_000 {
		t.Fatalf("unexpected transfer %s -> %s %d", payer, payee, amount)
	}
}
