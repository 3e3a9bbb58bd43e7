package model

import "time"

// Event is a public GitHub activity record. Only the timestamp matters for
// the contribution grid; events are discarded after aggregation.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
