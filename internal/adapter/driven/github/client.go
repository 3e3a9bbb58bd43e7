// Package github implements the GitHubClient port using the go-github library.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
	"golang.org/x/sync/errgroup"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
	"github.com/ericfisherdev/gitscope/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.GitHubClient = (*Client)(nil)

const (
	perPage = 100

	// maxRepoPages bounds the repository paginator at 1000 repositories.
	// Hitting the cap is a deliberate bound, not an error.
	maxRepoPages = 10

	// eventPages is the fixed number of event pages fetched. The events API
	// retains roughly 90 days / 300 events, so three pages cover everything
	// it can serve.
	eventPages = 3
)

// Client implements the driven.GitHubClient port using the go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client, optional PAT auth)
//
// The timeout applies to each request end to end; an expired timeout surfaces
// as a network-class failure, never a crash.
func NewClient(token string, timeout time.Duration) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	httpClient := github_ratelimit.NewClient(cacheTransport)
	httpClient.Timeout = timeout

	client := gh.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// FetchUser retrieves a user's profile and maps it to the domain model.
func (c *Client) FetchUser(ctx context.Context, username string) (*model.User, error) {
	user, resp, err := c.gh.Users.Get(ctx, username)
	if err != nil {
		return nil, classifyError(err)
	}

	logRateLimit(resp, "users/"+username, 0, 1)

	return mapUser(user), nil
}

// FetchAllRepos retrieves the user's full repository list, 100 per page sorted
// by most-recently-updated. Pages are fetched sequentially because each page's
// length decides whether another request is needed. Pagination stops when a
// page comes back short or the 10-page cap is reached; any page failing aborts
// the whole operation with no partial list.
func (c *Client) FetchAllRepos(ctx context.Context, username string) ([]model.Repository, error) {
	opts := &gh.RepositoryListByUserOptions{
		Sort: "updated",
		ListOptions: gh.ListOptions{
			PerPage: perPage,
		},
	}

	allRepos := []model.Repository{}

	for page := 1; page <= maxRepoPages; page++ {
		opts.Page = page

		repos, resp, err := c.gh.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, classifyError(err)
		}

		logRateLimit(resp, "users/"+username+"/repos", page, len(repos))

		for _, repo := range repos {
			allRepos = append(allRepos, mapRepository(repo))
		}

		if len(repos) < perPage {
			break
		}
	}

	return allRepos, nil
}

// FetchRecentEvents retrieves pages 1-3 of the user's public events, 100 per
// page, all three requests in flight at once. Results are concatenated in page
// order. If any page fails the whole fetch degrades to an empty list with a
// nil error: event data only feeds the contribution heatmap and its absence
// must not block the rest of the profile.
func (c *Client) FetchRecentEvents(ctx context.Context, username string) ([]model.Event, error) {
	pages := make([][]model.Event, eventPages)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < eventPages; i++ {
		g.Go(func() error {
			opts := &gh.ListOptions{PerPage: perPage, Page: i + 1}

			events, resp, err := c.gh.Activity.ListEventsPerformedByUser(gctx, username, true, opts)
			if err != nil {
				return err
			}

			logRateLimit(resp, "users/"+username+"/events", i+1, len(events))

			mapped := make([]model.Event, 0, len(events))
			for _, event := range events {
				mapped = append(mapped, mapEvent(event))
			}
			pages[i] = mapped
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		slog.Debug("event fetch degraded to empty", "username", username, "error", err)
		return []model.Event{}, nil
	}

	all := []model.Event{}
	for _, page := range pages {
		all = append(all, page...)
	}

	return all, nil
}

// classifyError maps a go-github error into the domain's tagged error union:
// 404 is not_found, 403 is rate_limit (with the reset instant when the
// X-RateLimit-Reset header carried one), and any other HTTP status is unknown.
// Transport failures that never produced a response pass through untagged;
// the caller re-tags them as network errors.
func classifyError(err error) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		ghErr := &model.GitHubError{
			Kind:    model.ErrorKindRateLimit,
			Message: model.RateLimitMessage,
		}
		if !rateLimitErr.Rate.Reset.IsZero() {
			ghErr.ResetTime = rateLimitErr.Rate.Reset.Time.UnixMilli()
		}
		return ghErr
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		ghErr := &model.GitHubError{
			Kind:    model.ErrorKindRateLimit,
			Message: model.RateLimitMessage,
		}
		if abuseErr.RetryAfter != nil {
			ghErr.ResetTime = time.Now().Add(*abuseErr.RetryAfter).UnixMilli()
		}
		return ghErr
	}

	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) && respErr.Response != nil {
		switch respErr.Response.StatusCode {
		case http.StatusNotFound:
			return &model.GitHubError{
				Kind:    model.ErrorKindNotFound,
				Message: model.NotFoundMessage,
			}
		case http.StatusForbidden:
			ghErr := &model.GitHubError{
				Kind:    model.ErrorKindRateLimit,
				Message: model.RateLimitMessage,
			}
			if reset := respErr.Response.Header.Get("X-RateLimit-Reset"); reset != "" {
				if secs, parseErr := strconv.ParseInt(reset, 10, 64); parseErr == nil {
					ghErr.ResetTime = secs * 1000
				}
			}
			return ghErr
		default:
			return &model.GitHubError{
				Kind: model.ErrorKindUnknown,
				Message: fmt.Sprintf("GitHub API error: %d %s",
					respErr.Response.StatusCode,
					http.StatusText(respErr.Response.StatusCode)),
			}
		}
	}

	return err
}

// mapUser converts a go-github User to the domain model, keeping nullable
// profile fields as pointers.
func mapUser(u *gh.User) *model.User {
	return &model.User{
		Login:       u.GetLogin(),
		ID:          u.GetID(),
		AvatarURL:   u.GetAvatarURL(),
		HTMLURL:     u.GetHTMLURL(),
		Name:        u.Name,
		Company:     u.Company,
		Blog:        u.Blog,
		Location:    u.Location,
		Email:       u.Email,
		Bio:         u.Bio,
		PublicRepos: u.GetPublicRepos(),
		PublicGists: u.GetPublicGists(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		CreatedAt:   u.GetCreatedAt().Time,
		UpdatedAt:   u.GetUpdatedAt().Time,
	}
}

// mapRepository converts a go-github Repository to the domain model.
func mapRepository(r *gh.Repository) model.Repository {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}

	return model.Repository{
		ID:              r.GetID(),
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		HTMLURL:         r.GetHTMLURL(),
		Description:     r.Description,
		Fork:            r.GetFork(),
		Language:        r.Language,
		StargazersCount: r.GetStargazersCount(),
		WatchersCount:   r.GetWatchersCount(),
		ForksCount:      r.GetForksCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		Size:            r.GetSize(),
		CreatedAt:       r.GetCreatedAt().Time,
		UpdatedAt:       r.GetUpdatedAt().Time,
		PushedAt:        r.GetPushedAt().Time,
		Topics:          topics,
		Homepage:        r.Homepage,
	}
}

// mapEvent converts a go-github Event to the domain model.
func mapEvent(e *gh.Event) model.Event {
	return model.Event{
		ID:        e.GetID(),
		Type:      e.GetType(),
		CreatedAt: e.GetCreatedAt().Time,
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
