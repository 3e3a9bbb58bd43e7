package driven

import (
	"context"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
)

// GitHubClient defines the driven port for reading public GitHub data.
// Implementations classify HTTP failures into *model.GitHubError at this
// boundary; transport failures that never produced a response may pass
// through untagged and are re-tagged by the caller.
type GitHubClient interface {
	// FetchUser retrieves a user's profile snapshot.
	FetchUser(ctx context.Context, username string) (*model.User, error)

	// FetchAllRepos retrieves the user's full repository list across pages,
	// most-recently-updated first. A failure on any page aborts the whole
	// operation; no partial list is returned.
	FetchAllRepos(ctx context.Context, username string) ([]model.Repository, error)

	// FetchRecentEvents retrieves the user's recent public events. Event data
	// is supplementary (it only feeds the contribution grid), so any failure
	// degrades to an empty slice with a nil error.
	FetchRecentEvents(ctx context.Context, username string) ([]model.Event, error)
}
