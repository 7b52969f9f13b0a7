package http

import "net/http"

// Services groups the application services the router exposes.
type Services struct {
	Organizers OrganizerRegistrar
	Catalog    Catalog
	Classes    ClassManager
	Sales      TicketBuyer
	Tickets    TicketReader
	Market     Market
	Refunds    Refunder
	Identity   IdentityVerifier
	Checkin    Checkin
}

// NewRouter wires every operation onto a ServeMux. Mutating routes read
// the caller principal from the X-Principal header.
func NewRouter(svcs Services) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", HealthHandler)

	mux.Handle("POST /organizers", HandleRegisterOrganizer(svcs.Organizers))

	mux.Handle("POST /events", HandleCreateEvent(svcs.Catalog))
	mux.Handle("GET /events/{id}", HandleGetEvent(svcs.Catalog))
	mux.Handle("POST /events/{id}/publish", HandlePublishEvent(svcs.Catalog))
	mux.Handle("POST /events/{id}/cancel", HandleCancelEvent(svcs.Catalog))
	mux.Handle("POST /events/{id}/classes", HandleAddClass(svcs.Classes))

	mux.Handle("GET /classes/{id}", HandleGetClass(svcs.Classes))
	mux.Handle("POST /classes/{id}/purchase", HandleBuyTicket(svcs.Sales))

	mux.Handle("GET /tickets/{id}", HandleGetTicket(svcs.Tickets))
	mux.Handle("POST /tickets/{id}/listings", HandleCreateListing(svcs.Market))
	mux.Handle("POST /tickets/{id}/refund", HandleRefundTicket(svcs.Refunds))
	mux.Handle("GET /tickets/{id}/verification", HandleVerificationData(svcs.Checkin))
	mux.Handle("POST /tickets/{id}/checkin", HandleCheckIn(svcs.Checkin))

	mux.Handle("GET /listings/{id}", HandleGetListing(svcs.Market))
	mux.Handle("POST /listings/{id}/cancel", HandleCancelListing(svcs.Market))
	mux.Handle("POST /listings/{id}/purchase", HandleBuyListing(svcs.Market))

	mux.Handle("POST /identity", HandleVerifyIdentity(svcs.Identity))
	mux.Handle("GET /identity/{principal}", HandleIsVerified(svcs.Identity))

	mux.Handle("/", NotFoundHandler())

	return mux
}
