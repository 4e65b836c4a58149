package analytics

import (
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-emoji-video/model"
)

const (
	maxEventsToKeep = 10000 // Keep last 10k events
	defaultTopN     = 10
)

// Service keeps recent search events in memory and reports on them.
// It is safe for concurrent use.
type Service struct {
	mutex  sync.RWMutex
	events []model.SearchEvent
}

// NewService creates an empty analytics service
func NewService() *Service {
	return &Service{events: make([]model.SearchEvent, 0)}
}

// TrackSearchEvent records a search. A zero Timestamp is set to now.
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.events = append(s.events, event)

	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// TrackSearchResult records the outcome of a resolver search.
func (s *Service) TrackSearchResult(source string, result model.SearchResult) {
	event := model.SearchEvent{
		Keyword:      result.Keyword,
		Source:       source,
		ResponseTime: time.Duration(result.Took) * time.Microsecond,
		ResultCount:  result.Total,
	}
	if len(result.Tiers) > 0 {
		event.TopTier = result.Tiers[0]
	}
	s.TrackSearchEvent(event)
}

// GetDashboardData summarizes every kept event. topN bounds the keyword
// lists; a non-positive topN uses 10.
func (s *Service) GetDashboardData(topN int) model.AnalyticsDashboard {
	if topN <= 0 {
		topN = defaultTopN
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	dayAgo := time.Now().Add(-24 * time.Hour)
	all := make(map[string]int)
	unmatched := make(map[string]int)
	dashboard := model.AnalyticsDashboard{
		TotalSearches: len(s.events),
		TopTiers:      make(map[model.MatchTier]int),
	}

	var totalTime time.Duration
	matched := 0
	for _, event := range s.events {
		if event.Timestamp.After(dayAgo) {
			dashboard.Searches24h++
		}
		totalTime += event.ResponseTime
		if event.Keyword == "" {
			continue
		}
		all[event.Keyword]++
		if event.ResultCount > 0 {
			matched++
			dashboard.TopTiers[event.TopTier]++
		} else {
			unmatched[event.Keyword]++
		}
	}

	if len(s.events) > 0 {
		dashboard.AvgResponseTime = (totalTime / time.Duration(len(s.events))).Microseconds()
		dashboard.MatchRate = float64(matched) / float64(len(s.events))
	}
	dashboard.PopularKeywords = topKeywords(all, topN)
	dashboard.UnmatchedKeywords = topKeywords(unmatched, topN)
	return dashboard
}

// topKeywords returns the n most frequent keywords, ties in keyword order.
func topKeywords(counts map[string]int, n int) []model.KeywordCount {
	keywords := make([]model.KeywordCount, 0, len(counts))
	for kw, count := range counts {
		keywords = append(keywords, model.KeywordCount{Keyword: kw, SearchCount: count})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].SearchCount != keywords[j].SearchCount {
			return keywords[i].SearchCount > keywords[j].SearchCount
		}
		return keywords[i].Keyword < keywords[j].Keyword
	})
	if len(keywords) > n {
		keywords = keywords[:n]
	}
	return keywords
}
