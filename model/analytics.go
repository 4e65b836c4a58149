package model

import "time"

// SearchEvent represents a single keyword search for analytics tracking
type SearchEvent struct {
	Keyword      string        `json:"keyword"`
	Source       string        `json:"source"`   // "search" or "process"
	TopTier      MatchTier     `json:"top_tier"` // Tier of the best candidate, empty without matches
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Timestamp    time.Time     `json:"timestamp"`
}

// KeywordCount is a keyword and how often it was searched
type KeywordCount struct {
	Keyword     string `json:"keyword"`
	SearchCount int    `json:"search_count"`
}

// AnalyticsDashboard summarizes the tracked searches
type AnalyticsDashboard struct {
	TotalSearches   int     `json:"total_searches"`
	Searches24h     int     `json:"searches_24h"`
	MatchRate       float64 `json:"match_rate"`        // Share of searches with at least one candidate
	AvgResponseTime int64   `json:"avg_response_time"` // in microseconds

	// UnmatchedKeywords are the most searched keywords without any candidate,
	// the first entries to add to the lexicon.
	PopularKeywords   []KeywordCount    `json:"popular_keywords"`
	UnmatchedKeywords []KeywordCount    `json:"unmatched_keywords"`
	TopTiers          map[MatchTier]int `json:"top_tiers"`
}
