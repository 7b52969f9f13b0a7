package http

import (
	"encoding/json"
	"net/http"

	"github.com/cimillas/ticketcore/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// respondDomainError maps a domain sentinel to an HTTP status and stable
// error code. Unknown errors are reported as 500 without leaking detail.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, codeInternalError
	msg := "internal error"

	if s, c, ok := classify(err); ok {
		status, code = s, c
		msg = err.Error()
	}
	writeError(w, status, code, msg)
}

func classify(err error) (int, string, bool) {
	switch err {
	case domain.ErrUnauthorized:
		return http.StatusForbidden, "unauthorized", true
	case domain.ErrNotOwner:
		return http.StatusForbidden, "not_owner", true
	case domain.ErrSelfPurchase:
		return http.StatusForbidden, "self_purchase", true

	case domain.ErrTicketNotValid:
		return http.StatusConflict, "ticket_not_valid", true
	case domain.ErrAlreadyListed:
		return http.StatusConflict, "already_listed", true
	case domain.ErrListingUnavailable:
		return http.StatusConflict, "listing_unavailable", true
	case domain.ErrEventAlreadyStarted:
		return http.StatusConflict, "event_already_started", true
	case domain.ErrEventClosed:
		return http.StatusConflict, "event_closed", true

	case domain.ErrSoldOut:
		return http.StatusConflict, "sold_out", true
	case domain.ErrBuyerLimitExceeded:
		return http.StatusConflict, "buyer_limit_exceeded", true

	case domain.ErrNoActiveSale:
		return http.StatusConflict, "no_active_sale", true
	case domain.ErrOutsideRefundWindow:
		return http.StatusConflict, "outside_refund_window", true
	case domain.ErrOutsideEventWindow:
		return http.StatusConflict, "outside_event_window", true

	case domain.ErrInvalidWindow:
		return http.StatusBadRequest, "invalid_window", true
	case domain.ErrInvalidSupply:
		return http.StatusBadRequest, "invalid_supply", true
	case domain.ErrInvalidPercentage:
		return http.StatusBadRequest, "invalid_percentage", true
	case domain.ErrInvalidPrice:
		return http.StatusBadRequest, "invalid_price", true
	case domain.ErrInvalidLimit:
		return http.StatusBadRequest, "invalid_limit", true
	case domain.ErrPriceAboveCap:
		return http.StatusBadRequest, "price_above_cap", true
	case domain.ErrNotResalable:
		return http.StatusConflict, "not_resalable", true
	case domain.ErrIdentityNotVerified:
		return http.StatusForbidden, "identity_not_verified", true
	case domain.ErrInvalidVerificationCode:
		return http.StatusForbidden, "invalid_verification_code", true
	case domain.ErrAlreadyRegistered:
		return http.StatusConflict, "already_registered", true
	case domain.ErrPrincipalRequired:
		return http.StatusBadRequest, "principal_required", true
	case domain.ErrNameRequired:
		return http.StatusBadRequest, "name_required", true
	case domain.ErrVerificationHashRequired:
		return http.StatusBadRequest, "verification_hash_required", true

	case domain.ErrOrganizerNotFound:
		return http.StatusNotFound, "organizer_not_found", true
	case domain.ErrEventNotFound:
		return http.StatusNotFound, "event_not_found", true
	case domain.ErrClassNotFound:
		return http.StatusNotFound, "class_not_found", true
	case domain.ErrTicketNotFound:
		return http.StatusNotFound, "ticket_not_found", true
	case domain.ErrListingNotFound:
		return http.StatusNotFound, "listing_not_found", true
	case domain.ErrInvalidID:
		return http.StatusBadRequest, "invalid_id", true
	}
	return 0, "", false
}
