package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
)

func strPtr(s string) *string {
	return &s
}

func makeTestRepo(name string, stars, forks, watchers int, fork bool, language *string) model.Repository {
	return model.Repository{
		Name:            name,
		FullName:        "octocat/" + name,
		Fork:            fork,
		Language:        language,
		StargazersCount: stars,
		ForksCount:      forks,
		WatchersCount:   watchers,
	}
}

func TestTotalStats(t *testing.T) {
	repos := []model.Repository{
		makeTestRepo("alpha", 100, 20, 100, false, strPtr("Go")),
		makeTestRepo("beta", 10, 3, 10, false, strPtr("TypeScript")),
		makeTestRepo("gamma-fork", 5, 1, 5, true, strPtr("Go")),
	}

	totals := TotalStats(repos)

	// Forks count toward the totals.
	assert.Equal(t, 115, totals.Stars)
	assert.Equal(t, 24, totals.Forks)
	assert.Equal(t, 115, totals.Watchers)
}

func TestTotalStats_Empty(t *testing.T) {
	totals := TotalStats(nil)

	assert.Zero(t, totals.Stars)
	assert.Zero(t, totals.Forks)
	assert.Zero(t, totals.Watchers)
}

func TestLanguageStats(t *testing.T) {
	repos := []model.Repository{
		makeTestRepo("a", 0, 0, 0, false, strPtr("Go")),
		makeTestRepo("b", 0, 0, 0, false, strPtr("Go")),
		makeTestRepo("c", 0, 0, 0, false, strPtr("TypeScript")),
		makeTestRepo("d", 0, 0, 0, false, nil),
		makeTestRepo("e-fork", 0, 0, 0, true, strPtr("Rust")),
	}

	stats := LanguageStats(repos)
	require.Len(t, stats, 2, "nil-language and fork repos should not contribute")

	assert.Equal(t, "Go", stats[0].Name)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, 67, stats[0].Percentage)
	assert.Equal(t, "#00ADD8", stats[0].Color)

	assert.Equal(t, "TypeScript", stats[1].Name)
	assert.Equal(t, 1, stats[1].Count)
	assert.Equal(t, 33, stats[1].Percentage)
	assert.Equal(t, "#3178c6", stats[1].Color)
}

func TestLanguageStats_TieKeepsFirstSeenOrder(t *testing.T) {
	repos := []model.Repository{
		makeTestRepo("a", 0, 0, 0, false, strPtr("Ruby")),
		makeTestRepo("b", 0, 0, 0, false, strPtr("Python")),
	}

	stats := LanguageStats(repos)
	require.Len(t, stats, 2)

	assert.Equal(t, "Ruby", stats[0].Name)
	assert.Equal(t, "Python", stats[1].Name)
	assert.Equal(t, 50, stats[0].Percentage)
	assert.Equal(t, 50, stats[1].Percentage)
}

func TestLanguageStats_UnknownLanguageFallbackColor(t *testing.T) {
	repos := []model.Repository{
		makeTestRepo("a", 0, 0, 0, false, strPtr("Brainfuck")),
	}

	stats := LanguageStats(repos)
	require.Len(t, stats, 1)

	assert.Equal(t, "#8b949e", stats[0].Color)
	assert.Equal(t, 100, stats[0].Percentage)
}

func TestLanguageStats_Empty(t *testing.T) {
	assert.Empty(t, LanguageStats(nil))
}

func TestTopRepos(t *testing.T) {
	repos := []model.Repository{
		makeTestRepo("small", 1, 0, 0, false, nil),
		makeTestRepo("big", 500, 0, 0, false, nil),
		makeTestRepo("forked", 9000, 0, 0, true, nil),
		makeTestRepo("mid", 50, 0, 0, false, nil),
	}

	top := TopRepos(repos, 2)
	require.Len(t, top, 2)

	// Forks are excluded even when they carry the most stars.
	assert.Equal(t, "big", top[0].Name)
	assert.Equal(t, "mid", top[1].Name)
}

func TestTopRepos_FewerThanLimit(t *testing.T) {
	repos := []model.Repository{
		makeTestRepo("only", 3, 0, 0, false, nil),
	}

	top := TopRepos(repos, DefaultTopRepoCount)
	require.Len(t, top, 1)
	assert.Equal(t, "only", top[0].Name)
}

func TestTopRepos_DoesNotMutateInput(t *testing.T) {
	repos := []model.Repository{
		makeTestRepo("low", 1, 0, 0, false, nil),
		makeTestRepo("high", 100, 0, 0, false, nil),
	}

	_ = TopRepos(repos, 6)

	assert.Equal(t, "low", repos[0].Name)
	assert.Equal(t, "high", repos[1].Name)
}
