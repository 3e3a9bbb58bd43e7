package application

import (
	"context"
	"strings"
	"sync"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
)

// SessionState is the lifecycle state of a data session.
type SessionState string

const (
	StateIdle    SessionState = "idle"
	StateLoading SessionState = "loading"
	StateReady   SessionState = "ready"
	StateFailed  SessionState = "failed"
)

// Snapshot is an observable view of a session: exactly one of Data and Err is
// non-nil in the ready and failed states, both are nil otherwise.
type Snapshot struct {
	State SessionState
	Data  *model.AggregatedResult
	Err   *model.GitHubError
}

// ProfileFetcher is the pipeline a Session drives. *ProfileService satisfies it.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*model.AggregatedResult, error)
}

// Session is a re-entrant fetch controller: any state may transition back to
// loading on a new Fetch call. Overlapping fetches resolve last-write-wins --
// each Fetch takes a new generation token and a completion is only committed
// while its token is still the latest issued, so an earlier in-flight fetch
// that resolves late can never clobber a newer one's outcome.
type Session struct {
	fetcher ProfileFetcher

	mu    sync.Mutex
	gen   uint64
	state SessionState
	data  *model.AggregatedResult
	err   *model.GitHubError
}

// NewSession creates an idle Session driving the given fetcher.
func NewSession(fetcher ProfileFetcher) *Session {
	return &Session{fetcher: fetcher, state: StateIdle}
}

// Fetch runs the pipeline for username and commits the outcome unless a newer
// Fetch superseded this one in the meantime. An empty or whitespace-only
// username is a no-op. Fetch blocks until the pipeline completes; run it in
// its own goroutine to overlap fetches.
func (s *Session) Fetch(ctx context.Context, username string) {
	if strings.TrimSpace(username) == "" {
		return
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = StateLoading
	s.data = nil
	s.err = nil
	s.mu.Unlock()

	result, err := s.fetcher.FetchProfile(ctx, username)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// Superseded while in flight; a newer fetch owns the state now.
		return
	}
	if err != nil {
		s.state = StateFailed
		s.err = model.AsGitHubError(err)
		return
	}
	s.state = StateReady
	s.data = result
}

// Clear resets the session to idle, discarding any result or error.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = StateIdle
	s.data = nil
	s.err = nil
}

// Snapshot returns the current observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, Data: s.data, Err: s.err}
}
