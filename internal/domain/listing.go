package domain

import "time"

type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusCancelled ListingStatus = "cancelled"
)

// Listing offers one ticket for resale. At most one active listing may
// exist per ticket; creation does not move ownership, purchase does.
type Listing struct {
	ID        string
	TicketID  string
	Seller    string
	Price     int64
	ExpiresAt *time.Time
	Status    ListingStatus
	CreatedAt time.Time
}

// Available reports whether the listing can still be bought at now.
func (l Listing) Available(now time.Time) bool {
	if l.Status != ListingStatusActive {
		return false
	}
	return l.ExpiresAt == nil || now.Before(*l.ExpiresAt)
}
