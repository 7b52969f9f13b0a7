package domain

import "errors"

var (
	// Authorization.
	ErrUnauthorized = errors.New("caller is not the event organizer")
	ErrNotOwner     = errors.New("caller does not own this resource")
	ErrSelfPurchase = errors.New("seller cannot buy their own listing")

	// State.
	ErrTicketNotValid      = errors.New("ticket is not in a valid state")
	ErrAlreadyListed       = errors.New("ticket already has an active listing")
	ErrListingUnavailable  = errors.New("listing is not available")
	ErrEventAlreadyStarted = errors.New("event already started")
	ErrEventClosed         = errors.New("event is ended or cancelled")

	// Capacity.
	ErrSoldOut            = errors.New("ticket class sold out")
	ErrBuyerLimitExceeded = errors.New("per-buyer ticket limit exceeded")

	// Timing.
	ErrNoActiveSale        = errors.New("no active sale for this class")
	ErrOutsideRefundWindow = errors.New("outside refund window")
	ErrOutsideEventWindow  = errors.New("outside event attendance window")

	// Validation.
	ErrInvalidWindow            = errors.New("invalid time window")
	ErrInvalidSupply            = errors.New("invalid ticket supply")
	ErrInvalidPercentage        = errors.New("invalid percentage")
	ErrInvalidPrice             = errors.New("invalid price")
	ErrInvalidLimit             = errors.New("invalid per-buyer limit")
	ErrPriceAboveCap            = errors.New("price above resale cap")
	ErrNotResalable             = errors.New("ticket class is not resalable")
	ErrIdentityNotVerified      = errors.New("buyer identity not verified")
	ErrInvalidVerificationCode  = errors.New("invalid verification code")
	ErrAlreadyRegistered        = errors.New("principal already registered as organizer")
	ErrPrincipalRequired        = errors.New("principal required")
	ErrNameRequired             = errors.New("name required")
	ErrVerificationHashRequired = errors.New("verification hash required")

	// NotFound.
	ErrOrganizerNotFound = errors.New("organizer not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrClassNotFound     = errors.New("ticket class not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrListingNotFound   = errors.New("listing not found")
	ErrInvalidID         = errors.New("invalid id")
)
