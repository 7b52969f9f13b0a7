package domain

import "time"

// IdentityVerification records a verified-identity hash for a principal.
// Re-verification overwrites the hash but never removes the record.
type IdentityVerification struct {
	Principal  string
	Hash       string
	VerifiedAt time.Time
}
