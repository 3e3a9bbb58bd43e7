package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
)

// blockingFetcher parks each FetchProfile call until released, so tests can
// interleave overlapping fetches deterministically.
type blockingFetcher struct {
	mu      sync.Mutex
	results map[string]*model.AggregatedResult
	errs    map[string]error
	gates   map[string]chan struct{}
	started chan string
}

func newBlockingFetcher() *blockingFetcher {
	return &blockingFetcher{
		results: make(map[string]*model.AggregatedResult),
		errs:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 8),
	}
}

func (f *blockingFetcher) expect(username string, result *model.AggregatedResult, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[username] = result
	f.errs[username] = err
	f.gates[username] = make(chan struct{})
}

func (f *blockingFetcher) release(username string) {
	f.mu.Lock()
	gate := f.gates[username]
	f.mu.Unlock()
	close(gate)
}

func (f *blockingFetcher) FetchProfile(_ context.Context, username string) (*model.AggregatedResult, error) {
	f.mu.Lock()
	gate := f.gates[username]
	f.mu.Unlock()

	f.started <- username
	<-gate

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results[username], f.errs[username]
}

func resultFor(login string) *model.AggregatedResult {
	return &model.AggregatedResult{User: model.User{Login: login}}
}

func TestSession_InitialStateIdle(t *testing.T) {
	s := NewSession(newBlockingFetcher())

	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Data)
	assert.Nil(t, snap.Err)
}

func TestSession_Fetch_EmptyUsernameIsNoOp(t *testing.T) {
	s := NewSession(newBlockingFetcher())

	s.Fetch(context.Background(), "")
	s.Fetch(context.Background(), "   ")

	assert.Equal(t, StateIdle, s.Snapshot().State)
}

func TestSession_Fetch_Success(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.expect("octocat", resultFor("octocat"), nil)
	fetcher.release("octocat")

	s := NewSession(fetcher)
	s.Fetch(context.Background(), "octocat")

	snap := s.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	require.NotNil(t, snap.Data)
	assert.Equal(t, "octocat", snap.Data.User.Login)
	assert.Nil(t, snap.Err)
}

func TestSession_Fetch_Failure(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.expect("ghost", nil, &model.GitHubError{
		Kind:    model.ErrorKindNotFound,
		Message: model.NotFoundMessage,
	})
	fetcher.release("ghost")

	s := NewSession(fetcher)
	s.Fetch(context.Background(), "ghost")

	snap := s.Snapshot()
	assert.Equal(t, StateFailed, snap.State)
	assert.Nil(t, snap.Data)
	require.NotNil(t, snap.Err)
	assert.Equal(t, model.ErrorKindNotFound, snap.Err.Kind)
}

func TestSession_Fetch_ReentrantAfterFailure(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.expect("ghost", nil, &model.GitHubError{Kind: model.ErrorKindNotFound, Message: model.NotFoundMessage})
	fetcher.expect("octocat", resultFor("octocat"), nil)
	fetcher.release("ghost")
	fetcher.release("octocat")

	s := NewSession(fetcher)
	s.Fetch(context.Background(), "ghost")
	require.Equal(t, StateFailed, s.Snapshot().State)

	s.Fetch(context.Background(), "octocat")

	snap := s.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	require.NotNil(t, snap.Data)
	assert.Equal(t, "octocat", snap.Data.User.Login)
	assert.Nil(t, snap.Err, "stale error must be cleared by the new fetch")
}

func TestSession_Fetch_SupersededFetchNeverCommits(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.expect("first", resultFor("first"), nil)
	fetcher.expect("second", resultFor("second"), nil)

	s := NewSession(fetcher)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Fetch(context.Background(), "first")
	}()
	<-fetcher.started

	go func() {
		defer wg.Done()
		s.Fetch(context.Background(), "second")
	}()
	<-fetcher.started

	// Resolve the newer fetch first, then let the stale one finish late.
	fetcher.release("second")
	fetcher.release("first")
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	require.NotNil(t, snap.Data)
	assert.Equal(t, "second", snap.Data.User.Login,
		"a superseded fetch resolving late must not replace the newer outcome")
}

func TestSession_Fetch_SupersededFailureNeverCommits(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.expect("first", nil, &model.GitHubError{Kind: model.ErrorKindRateLimit, Message: model.RateLimitMessage})
	fetcher.expect("second", resultFor("second"), nil)

	s := NewSession(fetcher)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Fetch(context.Background(), "first")
	}()
	<-fetcher.started

	go func() {
		defer wg.Done()
		s.Fetch(context.Background(), "second")
	}()
	<-fetcher.started

	fetcher.release("second")
	fetcher.release("first")
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Nil(t, snap.Err, "a stale failure must not overwrite a newer success")
}

func TestSession_Clear(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.expect("octocat", resultFor("octocat"), nil)
	fetcher.release("octocat")

	s := NewSession(fetcher)
	s.Fetch(context.Background(), "octocat")
	require.Equal(t, StateReady, s.Snapshot().State)

	s.Clear()

	snap := s.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Data)
	assert.Nil(t, snap.Err)
}

func TestSession_Clear_SupersedesInFlightFetch(t *testing.T) {
	fetcher := newBlockingFetcher()
	fetcher.expect("octocat", resultFor("octocat"), nil)

	s := NewSession(fetcher)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Fetch(context.Background(), "octocat")
	}()
	<-fetcher.started

	s.Clear()
	fetcher.release("octocat")
	wg.Wait()

	assert.Equal(t, StateIdle, s.Snapshot().State,
		"a fetch resolving after Clear must not resurrect its result")
}
