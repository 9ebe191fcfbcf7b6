package search

import (
	"sort"

	"github.com/gcbaptista/go-questions/model"
)

// Query is the deduplicated set of normalized query words.
type Query map[string]struct{}

// NewQuery builds a Query from a token sequence, dropping duplicates.
func NewQuery(tokens []string) Query {
	query := make(Query, len(tokens))
	for _, token := range tokens {
		query[token] = struct{}{}
	}
	return query
}

// Words returns the query words in lexicographic order.
// Scores are summed in this order so floating point results do not depend on map iteration.
func (q Query) Words() []string {
	words := make([]string, 0, len(q))
	for word := range q {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// IDFTable maps every word of one collection to its inverse document frequency.
// A table is scoped to the collection it was computed from and is never merged with another.
type IDFTable map[string]float64

// ScoredFile is a document identifier with its TF-IDF score.
type ScoredFile struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// ScoredSentence is a sentence with the two keys it is ranked by.
type ScoredSentence struct {
	model.Sentence
	SumIDF        float64 `json:"sum_idf"`
	Density       float64 `json:"density"`
	MatchingCount int     `json:"matching_count"`
}

// Limit returns the first n items of a ranking. n larger than the ranking is
// clamped to its length and reported; n <= 0 selects nothing.
func Limit[T any](ranked []T, n int) (top []T, clamped bool) {
	if n <= 0 {
		return ranked[:0:0], false
	}
	if n > len(ranked) {
		return ranked, true
	}
	return ranked[:n], false
}
