package http

import (
	"context"
	"encoding/json"
	"net/http"
)

// IdentityVerifier is the slice of the identity service the handlers need.
type IdentityVerifier interface {
	Verify(ctx context.Context, principal, hash string) error
	IsVerified(ctx context.Context, principal string) (bool, error)
}

// HandleVerifyIdentity returns an HTTP handler recording the caller's
// verification hash. Callers can only verify themselves.
func HandleVerifyIdentity(svc IdentityVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyIdentityRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		if err := svc.Verify(r.Context(), principalFrom(r), req.Hash); err != nil {
			respondDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HandleIsVerified returns an HTTP handler for the verification read.
func HandleIsVerified(svc IdentityVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verified, err := svc.IsVerified(r.Context(), r.PathValue("principal"))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(isVerifiedResponse{Verified: verified})
	}
}

type verifyIdentityRequest struct {
	Hash string `json:"hash"`
}

type isVerifiedResponse struct {
	Verified bool `json:"verified"`
}
