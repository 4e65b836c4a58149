package model

// MatchTier names the relevance tier an identifier was first found in.
type MatchTier string

const (
	TierExact           MatchTier = "exact"            // keyword equals the query
	TierReverseContains MatchTier = "reverse_contains" // query is inside the keyword
	TierForwardContains MatchTier = "forward_contains" // keyword is inside the query
)

// SearchResult holds the ranked identifiers for one keyword.
type SearchResult struct {
	Keyword     string      `json:"keyword"`
	Identifiers []string    `json:"identifiers"`
	Tiers       []MatchTier `json:"tiers"` // Parallel to Identifiers
	Total       int         `json:"total"` // Matches before the cap was applied
	Took        int64       `json:"took"`  // microseconds
	QueryId     string      `json:"query_id"`
}

// Found reports whether the keyword matched anything.
func (r SearchResult) Found() bool {
	return len(r.Identifiers) > 0
}
