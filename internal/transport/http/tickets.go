package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/ticketcore/internal/app"
	"github.com/cimillas/ticketcore/internal/domain"
)

// TicketBuyer is the minimal interface needed for primary sales.
type TicketBuyer interface {
	BuyTicket(ctx context.Context, classID, buyer string) (domain.Ticket, error)
}

// HandleBuyTicket returns an HTTP handler for primary purchases.
func HandleBuyTicket(svc TicketBuyer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticket, err := svc.BuyTicket(r.Context(), r.PathValue("id"), principalFrom(r))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(ticketResponseFrom(ticket))
	}
}

// TicketReader is the minimal interface needed for ticket reads.
type TicketReader interface {
	GetTicket(ctx context.Context, id string) (domain.Ticket, error)
}

// HandleGetTicket returns an HTTP handler for ticket reads. The
// verification seed never leaves the service.
func HandleGetTicket(svc TicketReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticket, err := svc.GetTicket(r.Context(), r.PathValue("id"))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ticketResponseFrom(ticket))
	}
}

// Refunder is the minimal interface needed to refund tickets.
type Refunder interface {
	Refund(ctx context.Context, ticketID, principal string) (int64, error)
}

// HandleRefundTicket returns an HTTP handler for refund requests.
func HandleRefundTicket(svc Refunder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		amount, err := svc.Refund(r.Context(), r.PathValue("id"), principalFrom(r))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(refundResponse{Amount: amount, Status: "refunded"})
	}
}

// Checkin is the slice of the check-in service the handlers need.
type Checkin interface {
	VerificationData(ctx context.Context, ticketID string) (app.VerificationData, error)
	CheckIn(ctx context.Context, ticketID, code string) error
}

// HandleVerificationData returns an HTTP handler exposing the ticket's
// attendance code and validity window.
func HandleVerificationData(svc Checkin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := svc.VerificationData(r.Context(), r.PathValue("id"))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(verificationDataResponse{
			Code:       data.Code,
			ValidFrom:  data.ValidFrom,
			ValidUntil: data.ValidUntil,
		})
	}
}

// HandleCheckIn returns an HTTP handler that marks a ticket used.
func HandleCheckIn(svc Checkin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkInRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		if err := svc.CheckIn(r.Context(), r.PathValue("id"), req.Code); err != nil {
			respondDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(checkInResponse{Status: "used"})
	}
}

type ticketResponse struct {
	ID          string    `json:"id"`
	ClassID     string    `json:"class_id"`
	EventID     string    `json:"event_id"`
	Owner       string    `json:"owner"`
	Status      string    `json:"status"`
	PricePaid   int64     `json:"price_paid"`
	PurchasedAt time.Time `json:"purchased_at"`
}

func ticketResponseFrom(ticket domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:          ticket.ID,
		ClassID:     ticket.ClassID,
		EventID:     ticket.EventID,
		Owner:       ticket.Owner,
		Status:      string(ticket.Status),
		PricePaid:   ticket.PricePaid,
		PurchasedAt: ticket.PurchasedAt,
	}
}

type refundResponse struct {
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

type verificationDataResponse struct {
	Code       string    `json:"code"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
}

type checkInRequest struct {
	Code string `json:"code"`
}

type checkInResponse struct {
	Status string `json:"status"`
}
