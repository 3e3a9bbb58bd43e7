package driven

import (
	"context"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
)

// SearchStore defines the driven port for recent-search history persistence.
// The history is small and bounded: stores keep only the most recent entries
// and deduplicate usernames case-insensitively.
type SearchStore interface {
	// Record adds username to the history, replacing any existing entry for
	// the same username regardless of case.
	Record(ctx context.Context, username string) error

	// List returns the history, newest first.
	List(ctx context.Context) ([]model.Search, error)

	// Clear removes all history entries.
	Clear(ctx context.Context) error
}
