package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cimillas/ticketcore/internal/domain"
)

// OrganizerRegistrar is the minimal interface needed to register organizers.
type OrganizerRegistrar interface {
	Register(ctx context.Context, principal, name string) (domain.Organizer, error)
}

// HandleRegisterOrganizer returns an HTTP handler for organizer registration.
func HandleRegisterOrganizer(svc OrganizerRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerOrganizerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		org, err := svc.Register(r.Context(), principalFrom(r), req.Name)
		if err != nil {
			respondDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(organizerResponse{
			ID:        org.ID,
			Principal: org.Principal,
			Name:      org.Name,
			CreatedAt: org.CreatedAt,
		})
	}
}

type registerOrganizerRequest struct {
	Name string `json:"name"`
}

type organizerResponse struct {
	ID        string    `json:"id"`
	Principal string    `json:"principal"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
