package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
	"github.com/ericfisherdev/gitscope/internal/domain/port/driven"
)

// ErrEmptyUsername is returned when a fetch is attempted with an empty or
// whitespace-only username.
var ErrEmptyUsername = errors.New("username is empty")

// cacheKeyPrefix namespaces session cache entries; the full key is the prefix
// plus the lowercased username.
const cacheKeyPrefix = "github_data_"

// ProfileService runs the fetch pipeline for a single username: cache lookup,
// concurrent fetch of {user, repositories, events}, aggregation, grid
// construction, and cache write-back. Only successful results are cached;
// errors are never stored.
type ProfileService struct {
	gh    driven.GitHubClient
	cache driven.SessionCache
	topN  int
	now   func() time.Time
}

// NewProfileService creates a ProfileService with the default top-repo count.
func NewProfileService(gh driven.GitHubClient, cache driven.SessionCache) *ProfileService {
	return &ProfileService{
		gh:    gh,
		cache: cache,
		topN:  DefaultTopRepoCount,
		now:   time.Now,
	}
}

// FetchProfile returns the aggregated result for username, from cache when a
// valid entry exists and from the network otherwise. A failure of the user or
// repository fetch fails the whole operation with a *model.GitHubError;
// failures with no recognizable tag are normalized to a network error. Event
// fetch failures never fail the operation (the gateway degrades them to an
// empty list), so a result may carry an all-zero contribution grid.
func (s *ProfileService) FetchProfile(ctx context.Context, username string) (*model.AggregatedResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	key := cacheKey(username)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached model.AggregatedResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			slog.Debug("session cache hit", "username", username)
			return &cached, nil
		}
		slog.Warn("discarding corrupt cache entry", "key", key)
		s.cache.Delete(ctx, key)
	}

	var (
		user   *model.User
		repos  []model.Repository
		events []model.Event
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.gh.FetchUser(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		repos, err = s.gh.FetchAllRepos(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.gh.FetchRecentEvents(gctx, username)
		return err
	})

	start := s.now()
	if err := g.Wait(); err != nil {
		ghErr := model.AsGitHubError(err)
		slog.Info("profile fetch failed",
			"username", username,
			"kind", ghErr.Kind,
			"duration", s.now().Sub(start).Round(time.Millisecond),
		)
		return nil, ghErr
	}

	result := &model.AggregatedResult{
		User:          *user,
		Repos:         repos,
		TopRepos:      TopRepos(repos, s.topN),
		LanguageStats: LanguageStats(repos),
		TotalStats:    TotalStats(repos),
		Contributions: BuildContributionGrid(events, s.now()),
	}

	if raw, err := json.Marshal(result); err == nil {
		s.cache.Set(ctx, key, raw)
	} else {
		slog.Error("failed to serialize result for cache", "username", username, "error", err)
	}

	slog.Info("profile fetched",
		"username", username,
		"repos", len(repos),
		"events", len(events),
		"duration", s.now().Sub(start).Round(time.Millisecond),
	)

	return result, nil
}

// cacheKey builds the session cache key for a username. Lookups are
// case-insensitive: Octocat and octocat share an entry.
func cacheKey(username string) string {
	return cacheKeyPrefix + strings.ToLower(username)
}
