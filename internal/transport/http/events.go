package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/ticketcore/internal/app"
	"github.com/cimillas/ticketcore/internal/domain"
)

// Catalog is the slice of the catalog service the event handlers need.
type Catalog interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	Publish(ctx context.Context, eventID, principal string) error
	Cancel(ctx context.Context, eventID, principal string) error
	Get(ctx context.Context, id string) (domain.Event, error)
}

// HandleCreateEvent returns an HTTP handler for event creation.
func HandleCreateEvent(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		event, err := svc.CreateEvent(r.Context(), app.CreateEventInput{
			OrganizerID:        req.OrganizerID,
			Principal:          principalFrom(r),
			Name:               req.Name,
			Description:        req.Description,
			Venue:              req.Venue,
			StartsAt:           req.StartsAt,
			EndsAt:             req.EndsAt,
			RefundPolicy:       req.RefundPolicy,
			RefundWindowHours:  req.RefundWindowHours,
			IdentityRequired:   req.IdentityRequired,
			MaxTicketsPerBuyer: req.MaxTicketsPerBuyer,
			SalesStartAt:       req.SalesStartAt,
			SalesEndAt:         req.SalesEndAt,
			ImageURL:           req.ImageURL,
		})
		if err != nil {
			respondDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(eventResponseFrom(event))
	}
}

// HandlePublishEvent returns an HTTP handler that moves an event on sale.
func HandlePublishEvent(svc Catalog) http.HandlerFunc {
	return eventStatusHandler(svc.Publish)
}

// HandleCancelEvent returns an HTTP handler that cancels an event.
func HandleCancelEvent(svc Catalog) http.HandlerFunc {
	return eventStatusHandler(svc.Cancel)
}

func eventStatusHandler(mutate func(ctx context.Context, eventID, principal string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := mutate(r.Context(), r.PathValue("id"), principalFrom(r)); err != nil {
			respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleGetEvent returns an HTTP handler for event reads.
func HandleGetEvent(svc Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(eventResponseFrom(event))
	}
}

type createEventRequest struct {
	OrganizerID        string    `json:"organizer_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Venue              string    `json:"venue"`
	StartsAt           time.Time `json:"starts_at"`
	EndsAt             time.Time `json:"ends_at"`
	RefundPolicy       string    `json:"refund_policy"`
	RefundWindowHours  int       `json:"refund_window_hours"`
	IdentityRequired   bool      `json:"identity_required"`
	MaxTicketsPerBuyer int       `json:"max_tickets_per_buyer"`
	SalesStartAt       time.Time `json:"sales_start_at"`
	SalesEndAt         time.Time `json:"sales_end_at"`
	ImageURL           string    `json:"image_url"`
}

type eventResponse struct {
	ID                 string    `json:"id"`
	OrganizerID        string    `json:"organizer_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Venue              string    `json:"venue"`
	StartsAt           time.Time `json:"starts_at"`
	EndsAt             time.Time `json:"ends_at"`
	RefundPolicy       string    `json:"refund_policy"`
	RefundWindowHours  int       `json:"refund_window_hours"`
	IdentityRequired   bool      `json:"identity_required"`
	MaxTicketsPerBuyer int       `json:"max_tickets_per_buyer"`
	SalesStartAt       time.Time `json:"sales_start_at"`
	SalesEndAt         time.Time `json:"sales_end_at"`
	ImageURL           string    `json:"image_url"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

func eventResponseFrom(event domain.Event) eventResponse {
	return eventResponse{
		ID:                 event.ID,
		OrganizerID:        event.OrganizerID,
		Name:               event.Name,
		Description:        event.Description,
		Venue:              event.Venue,
		StartsAt:           event.StartsAt,
		EndsAt:             event.EndsAt,
		RefundPolicy:       event.RefundPolicy,
		RefundWindowHours:  event.RefundWindowHours,
		IdentityRequired:   event.IdentityRequired,
		MaxTicketsPerBuyer: event.MaxTicketsPerBuyer,
		SalesStartAt:       event.SalesStartAt,
		SalesEndAt:         event.SalesEndAt,
		ImageURL:           event.ImageURL,
		Status:             string(event.Status),
		CreatedAt:          event.CreatedAt,
	}
}
