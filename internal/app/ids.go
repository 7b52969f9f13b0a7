package app

import (
	"crypto/rand"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// newSeed returns the opaque per-ticket value that attendance codes are
// derived from. An empty slice is only returned if the OS entropy source
// fails, which pgx would have tripped over long before this point.
func newSeed() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil
	}
	return b
}
