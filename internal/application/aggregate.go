// Package application contains the aggregation pipeline and the controllers
// that orchestrate it: pure statistics derivation, contribution grid
// construction, and the profile/comparison fetch services.
package application

import (
	"math"
	"sort"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
)

// DefaultTopRepoCount is how many top repositories a profile fetch derives.
const DefaultTopRepoCount = 6

// TotalStats sums stars, forks, and watchers across the full repository list.
// Forks are included: the totals describe everything the user hosts.
func TotalStats(repos []model.Repository) model.TotalStats {
	var totals model.TotalStats
	for _, repo := range repos {
		totals.Stars += repo.StargazersCount
		totals.Forks += repo.ForksCount
		totals.Watchers += repo.WatchersCount
	}
	return totals
}

// LanguageStats counts primary languages among non-fork repositories that
// have one. Entries are sorted descending by count; ties keep first-seen
// order. Percentages are rounded to the nearest integer and are not
// drift-corrected, so they may not sum to exactly 100.
func LanguageStats(repos []model.Repository) []model.LanguageStat {
	counts := make(map[string]int)
	var order []string
	var total int

	for _, repo := range repos {
		if repo.Fork || repo.Language == nil || *repo.Language == "" {
			continue
		}
		lang := *repo.Language
		if _, seen := counts[lang]; !seen {
			order = append(order, lang)
		}
		counts[lang]++
		total++
	}

	stats := make([]model.LanguageStat, 0, len(order))
	for _, lang := range order {
		count := counts[lang]
		stats = append(stats, model.LanguageStat{
			Name:       lang,
			Count:      count,
			Color:      LanguageColor(lang),
			Percentage: int(math.Round(float64(count) / float64(total) * 100)),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	return stats
}

// TopRepos returns the n non-fork repositories with the most stars, star
// count descending. The input slice is not modified.
func TopRepos(repos []model.Repository, n int) []model.Repository {
	top := make([]model.Repository, 0, len(repos))
	for _, repo := range repos {
		if !repo.Fork {
			top = append(top, repo)
		}
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].StargazersCount > top[j].StargazersCount
	})

	if len(top) > n {
		top = top[:n]
	}
	return top
}
