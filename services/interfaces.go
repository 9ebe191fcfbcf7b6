package services

import (
	"context"

	"github.com/gcbaptista/go-questions/model"
)

// FileHit is a document chosen by the first ranking stage.
type FileHit struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"` // TF-IDF score of the document for the query
}

// SentenceHit is a sentence chosen by the second ranking stage.
type SentenceHit struct {
	Text          string  `json:"text"`
	DocumentID    string  `json:"document_id"`
	Position      int     `json:"position"`
	SumIDF        float64 `json:"sum_idf"`
	Density       float64 `json:"density"`
	MatchingCount int     `json:"matching_count"`
}

// Answer is the result of running one query through both ranking stages.
type Answer struct {
	QueryID   string        `json:"query_id"` // unique UUID for this query
	Query     string        `json:"query"`
	Tokens    []string      `json:"tokens"` // normalized query words, sorted
	Files     []FileHit     `json:"files"`
	Sentences []SentenceHit `json:"sentences"`
	Took      int64         `json:"took_ms"`
	Cached    bool          `json:"cached"`
}

// SentenceTexts returns the answer sentences best first.
func (a Answer) SentenceTexts() []string {
	texts := make([]string, len(a.Sentences))
	for i, s := range a.Sentences {
		texts[i] = s.Text
	}
	return texts
}

// QueryRequest is the body of a query request. Nil match counts use the configured defaults.
type QueryRequest struct {
	Query           string `json:"query"`
	FileMatches     *int   `json:"file_matches,omitempty"`
	SentenceMatches *int   `json:"sentence_matches,omitempty"`
}

// CorpusInfo summarizes the loaded corpus.
type CorpusInfo struct {
	Documents  int      `json:"documents"`
	Vocabulary int      `json:"vocabulary"`
	Files      []string `json:"files"`
}

// Answerer runs queries against a loaded corpus
type Answerer interface {
	Answer(ctx context.Context, query string, fileMatches, sentenceMatches int) (Answer, error)
}

// QueryNormalizer exposes the normalized words a query is ranked by
type QueryNormalizer interface {
	QueryTokens(query string) []string
}

// Fingerprinter identifies the corpus and settings answers are computed from.
// Two engines with equal fingerprints give equal answers to equal queries.
type Fingerprinter interface {
	Fingerprint() string
}

// CorpusInspector describes the loaded corpus
type CorpusInspector interface {
	CorpusInfo() CorpusInfo
}

// AnalyticsTracker records query events and summarizes them
type AnalyticsTracker interface {
	TrackQuery(event model.QueryEvent)
	Summary() model.AnalyticsSummary
}
