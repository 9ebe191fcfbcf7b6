package search

import (
	"sort"

	"github.com/gcbaptista/go-questions/index"
	"github.com/gcbaptista/go-questions/model"
)

// RankSentences scores sentences against the query and returns them best first.
//
// For each sentence, the distinct query words it contains are counted once each:
// SumIDF adds their idf values and Density is that count divided by the sentence's total
// token count (duplicates included). Sentences are ordered by SumIDF descending, then
// Density descending; sentences equal on both keep their input order.
func RankSentences(query Query, sentences []model.Sentence, idfs IDFTable) []ScoredSentence {
	words := query.Words()

	scored := make([]ScoredSentence, 0, len(sentences))
	for _, sentence := range sentences {
		present := index.CountTerms(sentence.Tokens)

		item := ScoredSentence{Sentence: sentence}
		for _, word := range words {
			if !present.Contains(word) {
				continue
			}
			item.MatchingCount++
			item.SumIDF += idfs[word]
		}
		// An empty sentence keeps density 0.
		if len(sentence.Tokens) > 0 {
			item.Density = float64(item.MatchingCount) / float64(len(sentence.Tokens))
		}
		scored = append(scored, item)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].SumIDF != scored[j].SumIDF {
			return scored[i].SumIDF > scored[j].SumIDF
		}
		return scored[i].Density > scored[j].Density
	})
	return scored
}

// TopSentences returns the n best matching sentences with their scores.
// A request for more sentences than exist is clamped to the number available.
func TopSentences(query Query, sentences []model.Sentence, idfs IDFTable, n int) ([]ScoredSentence, bool) {
	return Limit(RankSentences(query, sentences, idfs), n)
}
