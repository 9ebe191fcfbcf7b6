package model

import "time"

// QueryEvent represents a single answered query for analytics tracking
type QueryEvent struct {
	QueryID       string        `json:"query_id"`
	Query         string        `json:"query"`
	ResponseTime  time.Duration `json:"response_time"`
	FileCount     int           `json:"file_count"`
	SentenceCount int           `json:"sentence_count"`
	Cached        bool          `json:"cached"`
	Timestamp     time.Time     `json:"timestamp"`
}

// PopularQuery represents aggregated data for a frequently asked query
type PopularQuery struct {
	Query      string `json:"query"`
	QueryCount int    `json:"query_count"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To25ms     int     `json:"bucket_0_25ms"`
	Bucket25To50ms    int     `json:"bucket_25_50ms"`
	Bucket50To100ms   int     `json:"bucket_50_100ms"`
	Bucket100msPlus   int     `json:"bucket_100ms_plus"`
	Percentage0To25   float64 `json:"percentage_0_25"`
	Percentage25To50  float64 `json:"percentage_25_50"`
	Percentage50To100 float64 `json:"percentage_50_100"`
	Percentage100Plus float64 `json:"percentage_100_plus"`
}

// AnalyticsSummary represents the aggregated analytics returned by the API
type AnalyticsSummary struct {
	TotalQueries             int                      `json:"total_queries"`
	CachedQueries            int                      `json:"cached_queries"`
	ZeroResultQueries        int                      `json:"zero_result_queries"`
	AvgResponseTime          int64                    `json:"avg_response_time_ms"`
	PopularQueries           []PopularQuery           `json:"popular_queries"`
	ResponseTimeDistribution ResponseTimeDistribution `json:"response_time_distribution"`
}
