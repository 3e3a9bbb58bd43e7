package model

import "time"

// Search is one entry of the recent-search history.
type Search struct {
	ID         int64
	Username   string
	SearchedAt time.Time
}
