package analytics

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gcbaptista/go-questions/model"
)

const (
	maxEventsToKeep   = 10000 // Keep last 10k events
	popularQueryLimit = 5
)

// Service implements in-memory query analytics.
// It implements services.AnalyticsTracker.
type Service struct {
	mutex  sync.RWMutex
	events []model.QueryEvent
	now    func() time.Time
}

// NewService creates a new analytics service
func NewService() *Service {
	return &Service{
		events: make([]model.QueryEvent, 0),
		now:    time.Now,
	}
}

// TrackQuery records a new query event
func (s *Service) TrackQuery(event model.QueryEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// Summary aggregates every retained event
func (s *Service) Summary() model.AnalyticsSummary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := model.AnalyticsSummary{
		TotalQueries:             len(s.events),
		AvgResponseTime:          s.calculateAvgResponseTime(s.events),
		PopularQueries:           s.getPopularQueries(s.events),
		ResponseTimeDistribution: s.getResponseTimeDistribution(s.events),
	}

	for _, event := range s.events {
		if event.Cached {
			summary.CachedQueries++
		}
		if event.SentenceCount == 0 {
			summary.ZeroResultQueries++
		}
	}

	return summary
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func (s *Service) calculateAvgResponseTime(events []model.QueryEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	avgDuration := total / time.Duration(len(events))
	return avgDuration.Milliseconds()
}

// getPopularQueries returns the most frequent queries, compared case-insensitively
func (s *Service) getPopularQueries(events []model.QueryEvent) []model.PopularQuery {
	queryCounts := make(map[string]int)

	for _, event := range events {
		query := strings.ToLower(strings.TrimSpace(event.Query))
		if query != "" {
			queryCounts[query]++
		}
	}

	popular := make([]model.PopularQuery, 0, len(queryCounts))
	for query, count := range queryCounts {
		popular = append(popular, model.PopularQuery{Query: query, QueryCount: count})
	}

	// Sort by count descending, then alphabetically
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].QueryCount != popular[j].QueryCount {
			return popular[i].QueryCount > popular[j].QueryCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > popularQueryLimit {
		popular = popular[:popularQueryLimit]
	}
	return popular
}

// getResponseTimeDistribution returns response time distribution
func (s *Service) getResponseTimeDistribution(events []model.QueryEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)

	if total == 0 {
		return dist
	}

	for _, event := range events {
		ms := event.ResponseTime.Milliseconds()
		switch {
		case ms <= 25:
			dist.Bucket0To25ms++
		case ms <= 50:
			dist.Bucket25To50ms++
		case ms <= 100:
			dist.Bucket50To100ms++
		default:
			dist.Bucket100msPlus++
		}
	}

	// Calculate percentages
	dist.Percentage0To25 = float64(dist.Bucket0To25ms) / float64(total) * 100
	dist.Percentage25To50 = float64(dist.Bucket25To50ms) / float64(total) * 100
	dist.Percentage50To100 = float64(dist.Bucket50To100ms) / float64(total) * 100
	dist.Percentage100Plus = float64(dist.Bucket100msPlus) / float64(total) * 100

	return dist
}
