package search

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-emoji-video/index"
	"github.com/gcbaptista/go-emoji-video/model"
)

// Resolver ranks the pictograms of a lexicon against a keyword.
// It fulfills the services.Searcher interface and is safe for concurrent use.
type Resolver struct {
	idx        *index.LexiconIndex
	maxResults int // 0 means unbounded
}

// NewResolver creates a Resolver over idx. maxResults caps every result list
// when positive.
func NewResolver(idx *index.LexiconIndex, maxResults int) (*Resolver, error) {
	if idx == nil {
		return nil, fmt.Errorf("lexicon index cannot be nil")
	}
	if maxResults < 0 {
		return nil, fmt.Errorf("max results cannot be negative, got %d", maxResults)
	}
	return &Resolver{idx: idx, maxResults: maxResults}, nil
}

// Search returns the identifiers matching keyword, most relevant first:
//
//   - exact: the keyword bucket equal to the lowercased, trimmed keyword;
//   - reverse-contains: buckets of indexed keywords containing the keyword,
//     shortest keyword first;
//   - forward-contains: buckets of indexed keywords contained in the keyword,
//     longest keyword first.
//
// Identifiers appear once, in the first tier that found them. Equal-length
// keywords rank in code point order and a bucket keeps its source order.
// limit caps the result when positive, in addition to the resolver's own cap.
// An empty keyword returns an empty result without consulting the index.
func (r *Resolver) Search(keyword string, limit int) model.SearchResult {
	startTime := time.Now()
	query := strings.ToLower(strings.TrimSpace(keyword))

	result := model.SearchResult{
		Keyword:     query,
		Identifiers: make([]string, 0),
		Tiers:       make([]model.MatchTier, 0),
		QueryId:     uuid.New().String(),
	}
	if query == "" {
		result.Took = time.Since(startTime).Microseconds()
		return result
	}

	seen := make(map[string]struct{})
	collect := func(keywords []string, tier model.MatchTier) {
		for _, kw := range keywords {
			for _, id := range r.idx.Lookup(kw) {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				result.Identifiers = append(result.Identifiers, id)
				result.Tiers = append(result.Tiers, tier)
			}
		}
	}

	reverse, forward := r.containing(query)
	collect([]string{query}, model.TierExact)
	collect(reverse, model.TierReverseContains)
	collect(forward, model.TierForwardContains)

	result.Total = len(result.Identifiers)
	if n := r.capFor(limit); n > 0 && n < result.Total {
		result.Identifiers = result.Identifiers[:n]
		result.Tiers = result.Tiers[:n]
	}
	result.Took = time.Since(startTime).Microseconds()
	return result
}

// Identifiers is Search without the metadata, using only the resolver's cap.
func (r *Resolver) Identifiers(keyword string) []string {
	return r.Search(keyword, 0).Identifiers
}

// containing splits the indexed keywords other than query into those that
// contain query and those that query contains, each in ranking order.
func (r *Resolver) containing(query string) (reverse, forward []string) {
	for _, kw := range r.idx.Keywords() {
		if kw == query {
			continue
		}
		if strings.Contains(kw, query) {
			reverse = append(reverse, kw)
		} else if strings.Contains(query, kw) {
			forward = append(forward, kw)
		}
	}

	// Keywords() is in code point order, so stable sorts keep that order for ties.
	sort.SliceStable(reverse, func(i, j int) bool {
		return utf8.RuneCountInString(reverse[i]) < utf8.RuneCountInString(reverse[j])
	})
	sort.SliceStable(forward, func(i, j int) bool {
		return utf8.RuneCountInString(forward[i]) > utf8.RuneCountInString(forward[j])
	})
	return reverse, forward
}

func (r *Resolver) capFor(limit int) int {
	switch {
	case limit > 0 && r.maxResults > 0:
		return min(limit, r.maxResults)
	case limit > 0:
		return limit
	default:
		return r.maxResults
	}
}
