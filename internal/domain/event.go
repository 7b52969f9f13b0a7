package domain

import "time"

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusOnSale    EventStatus = "on_sale"
	EventStatusEnded     EventStatus = "ended"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event owns the sales, refund and attendance windows for its tickets.
type Event struct {
	ID                 string
	OrganizerID        string
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
	Status             EventStatus
	CreatedAt          time.Time
}

// EffectiveStatus derives Ended at read time; there is no background job
// flipping the stored status when an event passes its end.
func (e Event) EffectiveStatus(now time.Time) EventStatus {
	if e.Status == EventStatusCancelled {
		return EventStatusCancelled
	}
	if now.After(e.EndsAt) {
		return EventStatusEnded
	}
	return e.Status
}

// RefundWindowOpensAt is the earliest instant a ticket for this event can
// be refunded. The window closes at StartsAt.
func (e Event) RefundWindowOpensAt() time.Time {
	return e.StartsAt.Add(-time.Duration(e.RefundWindowHours) * time.Hour)
}

// SaleOpen reports whether primary sales are accepted at the given instant.
func (e Event) SaleOpen(now time.Time) bool {
	if e.EffectiveStatus(now) != EventStatusOnSale {
		return false
	}
	return !now.Before(e.SalesStartAt) && !now.After(e.SalesEndAt)
}
