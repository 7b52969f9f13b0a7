package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/ticketcore/internal/app"
	"github.com/cimillas/ticketcore/internal/domain"
)

// Market is the slice of the secondary-market service the handlers need.
type Market interface {
	List(ctx context.Context, in app.ListInput) (domain.Listing, error)
	CancelListing(ctx context.Context, listingID, principal string) error
	BuySecondary(ctx context.Context, listingID, buyer string) (domain.Ticket, error)
	GetListing(ctx context.Context, id string) (domain.Listing, error)
}

// HandleCreateListing returns an HTTP handler that lists a ticket for resale.
func HandleCreateListing(svc Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createListingRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		listing, err := svc.List(r.Context(), app.ListInput{
			TicketID:  r.PathValue("id"),
			Principal: principalFrom(r),
			Price:     req.Price,
			ExpiresAt: req.ExpiresAt,
		})
		if err != nil {
			respondDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(listingResponseFrom(listing))
	}
}

// HandleCancelListing returns an HTTP handler that withdraws a listing.
func HandleCancelListing(svc Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CancelListing(r.Context(), r.PathValue("id"), principalFrom(r)); err != nil {
			respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleBuyListing returns an HTTP handler for secondary purchases.
func HandleBuyListing(svc Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticket, err := svc.BuySecondary(r.Context(), r.PathValue("id"), principalFrom(r))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ticketResponseFrom(ticket))
	}
}

// HandleGetListing returns an HTTP handler for listing reads.
func HandleGetListing(svc Market) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listing, err := svc.GetListing(r.Context(), r.PathValue("id"))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(listingResponseFrom(listing))
	}
}

type createListingRequest struct {
	Price     int64      `json:"price"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type listingResponse struct {
	ID        string     `json:"id"`
	TicketID  string     `json:"ticket_id"`
	Seller    string     `json:"seller"`
	Price     int64      `json:"price"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

func listingResponseFrom(listing domain.Listing) listingResponse {
	return listingResponse{
		ID:        listing.ID,
		TicketID:  listing.TicketID,
		Seller:    listing.Seller,
		Price:     listing.Price,
		ExpiresAt: listing.ExpiresAt,
		Status:    string(listing.Status),
		CreatedAt: listing.CreatedAt,
	}
}
