package domain

import "time"

type TicketStatus string

const (
	TicketStatusValid    TicketStatus = "valid"
	TicketStatusListed   TicketStatus = "listed"
	TicketStatusRefunded TicketStatus = "refunded"
	TicketStatusUsed     TicketStatus = "used"
)

// Ticket is an issued admission right. Refunded and Used are terminal;
// tickets are never deleted, so history survives ownership changes.
type Ticket struct {
	ID               string
	ClassID          string
	EventID          string
	Owner            string
	Status           TicketStatus
	PricePaid        int64
	PurchasedAt      time.Time
	VerificationSeed []byte
}
