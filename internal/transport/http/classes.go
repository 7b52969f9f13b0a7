package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/ticketcore/internal/app"
	"github.com/cimillas/ticketcore/internal/domain"
)

// ClassManager is the slice of the class service the handlers need.
type ClassManager interface {
	AddClass(ctx context.Context, in app.AddClassInput) (domain.TicketClass, error)
	Get(ctx context.Context, id string) (domain.TicketClass, error)
}

// HandleAddClass returns an HTTP handler that adds a ticket class to an event.
func HandleAddClass(svc ClassManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addClassRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		model := domain.PriceModel(req.PriceModel)
		if model == "" {
			model = domain.PriceModelFixed
		}

		class, err := svc.AddClass(r.Context(), app.AddClassInput{
			EventID:        r.PathValue("id"),
			Principal:      principalFrom(r),
			Name:           req.Name,
			Description:    req.Description,
			BasePrice:      req.BasePrice,
			TotalSupply:    req.TotalSupply,
			Resalable:      req.Resalable,
			PriceModel:     model,
			MaxResalePct:   req.MaxResalePct,
			DynamicMarkups: req.DynamicMarkups,
		})
		if err != nil {
			respondDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(classResponseFrom(class))
	}
}

// HandleGetClass returns an HTTP handler for ticket-class reads. The
// response includes the price the next primary buyer would pay.
func HandleGetClass(svc ClassManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		class, err := svc.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(classResponseFrom(class))
	}
}

type addClassRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	BasePrice      int64   `json:"base_price"`
	TotalSupply    int     `json:"total_supply"`
	Resalable      bool    `json:"resalable"`
	PriceModel     string  `json:"price_model"`
	MaxResalePct   int64   `json:"max_resale_pct"`
	DynamicMarkups []int64 `json:"dynamic_markups"`
}

type classResponse struct {
	ID             string    `json:"id"`
	EventID        string    `json:"event_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	BasePrice      int64     `json:"base_price"`
	TotalSupply    int       `json:"total_supply"`
	SoldCount      int       `json:"sold_count"`
	Resalable      bool      `json:"resalable"`
	PriceModel     string    `json:"price_model"`
	MaxResalePct   int64     `json:"max_resale_pct"`
	DynamicMarkups []int64   `json:"dynamic_markups,omitempty"`
	CurrentPrice   int64     `json:"current_price"`
	CreatedAt      time.Time `json:"created_at"`
}

func classResponseFrom(class domain.TicketClass) classResponse {
	return classResponse{
		ID:             class.ID,
		EventID:        class.EventID,
		Name:           class.Name,
		Description:    class.Description,
		BasePrice:      class.BasePrice,
		TotalSupply:    class.TotalSupply,
		SoldCount:      class.SoldCount,
		Resalable:      class.Resalable,
		PriceModel:     string(class.PriceModel),
		MaxResalePct:   class.MaxResalePct,
		DynamicMarkups: class.DynamicMarkups,
		CurrentPrice:   class.CurrentPrice(),
		CreatedAt:      class.CreatedAt,
	}
}
