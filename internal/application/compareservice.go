package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
	"github.com/ericfisherdev/gitscope/internal/domain/port/driven"
)

// CompareService runs two independent fetch pipelines side by side. Unlike
// profile fetches, comparisons skip events (no contribution grid) and are
// never cached.
type CompareService struct {
	gh   driven.GitHubClient
	topN int
}

// NewCompareService creates a CompareService.
func NewCompareService(gh driven.GitHubClient) *CompareService {
	return &CompareService{gh: gh, topN: DefaultTopRepoCount}
}

// Compare fetches both users concurrently and derives the head-to-head table.
// Both usernames must be non-empty. If either leg fails the whole comparison
// fails with a single error; one side is never surfaced alone.
func (s *CompareService) Compare(ctx context.Context, left, right string) (*model.ComparisonResult, error) {
	left = strings.TrimSpace(left)
	right = strings.TrimSpace(right)
	if left == "" || right == "" {
		return nil, ErrEmptyUsername
	}

	var leftSide, rightSide model.ComparisonSide

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		leftSide, err = s.fetchSide(gctx, left)
		return err
	})
	g.Go(func() error {
		var err error
		rightSide, err = s.fetchSide(gctx, right)
		return err
	})

	if err := g.Wait(); err != nil {
		ghErr := model.AsGitHubError(err)
		slog.Info("comparison failed", "left", left, "right", right, "kind", ghErr.Kind)
		return nil, ghErr
	}

	slog.Info("comparison fetched",
		"left", left,
		"right", right,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return &model.ComparisonResult{
		Left:  leftSide,
		Right: rightSide,
		Table: headToHead(leftSide, rightSide),
	}, nil
}

// fetchSide runs one comparison leg: user profile and full repository list in
// parallel, then aggregation without events.
func (s *CompareService) fetchSide(ctx context.Context, username string) (model.ComparisonSide, error) {
	var (
		user  *model.User
		repos []model.Repository
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
	if err := g.Wait(); err != nil {
		return model.ComparisonSide{}, err
	}

	return model.ComparisonSide{
		User:          *user,
		Repos:         repos,
		TopRepos:      TopRepos(repos, s.topN),
		LanguageStats: LanguageStats(repos),
		TotalStats:    TotalStats(repos),
	}, nil
}

// headToHead builds the five-row comparison table.
func headToHead(left, right model.ComparisonSide) []model.ComparisonRow {
	return []model.ComparisonRow{
		{Metric: "Repos", Left: left.User.PublicRepos, Right: right.User.PublicRepos},
		{Metric: "Stars", Left: left.Stars, Right: right.Stars},
		{Metric: "Forks", Left: left.Forks, Right: right.Forks},
		{Metric: "Followers", Left: left.User.Followers, Right: right.User.Followers},
		{Metric: "Following", Left: left.User.Following, Right: right.User.Following},
	}
}
