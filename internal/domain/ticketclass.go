package domain

import "time"

type PriceModel string

const (
	PriceModelFixed   PriceModel = "fixed"
	PriceModelDynamic PriceModel = "dynamic"
)

// Basis for resale-cap percentages: 10000 = 100% of base price.
const ResalePctBase = 10000

// TicketClass is a priced, finite pool of tickets for one event.
// SoldCount never exceeds TotalSupply; refunds release their slot.
type TicketClass struct {
	ID             string
	EventID        string
	Name           string
	Description    string
	BasePrice      int64
	TotalSupply    int
	SoldCount      int
	Resalable      bool
	PriceModel     PriceModel
	MaxResalePct   int64
	DynamicMarkups []int64
	CreatedAt      time.Time
}

// CurrentPrice returns the price charged for the next primary sale.
//
// Fixed classes always charge the base price. Dynamic classes partition
// [0,1) of sold fraction into len(DynamicMarkups) equal buckets and apply
// the bucket's markup percentage; a fraction exactly on a boundary lands
// in the higher bucket, so the price never decreases as supply depletes.
func (c TicketClass) CurrentPrice() int64 {
	if c.PriceModel != PriceModelDynamic || len(c.DynamicMarkups) == 0 {
		return c.BasePrice
	}
	n := len(c.DynamicMarkups)
	idx := c.SoldCount * n / c.TotalSupply
	if idx >= n {
		idx = n - 1
	}
	return c.BasePrice * (100 + c.DynamicMarkups[idx]) / 100
}

// MaxResalePrice is the listing-price ceiling for tickets of this class.
func (c TicketClass) MaxResalePrice() int64 {
	return c.BasePrice * c.MaxResalePct / ResalePctBase
}
