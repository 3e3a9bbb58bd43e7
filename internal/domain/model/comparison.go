package model

// ComparisonSide is one user's half of a head-to-head comparison. It is an
// AggregatedResult without the contribution grid: comparisons never fetch
// events.
type ComparisonSide struct {
	User          User           `json:"user"`
	Repos         []Repository   `json:"repos"`
	TopRepos      []Repository   `json:"top_repos"`
	LanguageStats []LanguageStat `json:"language_stats"`
	TotalStats
}

// ComparisonRow is one metric of the head-to-head table.
type ComparisonRow struct {
	Metric string `json:"metric"`
	Left   int    `json:"left"`
	Right  int    `json:"right"`
}

// ComparisonResult holds both sides of a comparison plus the derived
// five-row head-to-head table (Repos, Stars, Forks, Followers, Following).
// Either side failing fails the whole comparison; a partial result is never
// produced.
type ComparisonResult struct {
	Left  ComparisonSide  `json:"left"`
	Right ComparisonSide  `json:"right"`
	Table []ComparisonRow `json:"table"`
}
