package models

import "time"

// Rsvp is one attendee's confirmation entry.
type Rsvp struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	DeviceKey string    `json:"deviceKey"` // opaque client-generated ownership token
	Timestamp time.Time `json:"timestamp"` // creation or last edit, UTC
}
