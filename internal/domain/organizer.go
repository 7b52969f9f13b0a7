package domain

import "time"

// Organizer is an identity allowed to create and manage events.
type Organizer struct {
	ID        string
	Principal string
	Name      string
	CreatedAt time.Time
}
