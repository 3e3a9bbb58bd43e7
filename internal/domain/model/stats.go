package model

// LanguageStat is one language's share among a user's non-fork repositories.
// Count is the number of repositories whose primary language matches;
// Percentage is rounded to the nearest integer, so a list of stats may sum
// to slightly more or less than 100.
type LanguageStat struct {
	Name       string `json:"name"`
	Count      int    `json:"value"`
	Color      string `json:"color"`
	Percentage int    `json:"percentage"`
}

// TotalStats are repository counters summed across the full repository list,
// forks included.
type TotalStats struct {
	Stars    int `json:"total_stars"`
	Forks    int `json:"total_forks"`
	Watchers int `json:"total_watchers"`
}
