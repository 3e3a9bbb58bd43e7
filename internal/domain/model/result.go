package model

// AggregatedResult is the complete derived view of one user's profile: the raw
// inputs (user, repositories) plus everything computed from them. It is built
// in one piece on a successful fetch cycle, cached as a JSON snapshot keyed by
// lowercased username, and replaced wholesale on the next fetch -- never
// partially mutated.
type AggregatedResult struct {
	User          User           `json:"user"`
	Repos         []Repository   `json:"repos"`
	TopRepos      []Repository   `json:"top_repos"`
	LanguageStats []LanguageStat `json:"language_stats"`
	TotalStats

	// Contributions maps YYYY-MM-DD date keys to event counts for the
	// 53-week window ending today. Always exactly 371 entries.
	Contributions map[string]int `json:"contributions"`
}
