package search

import (
	"sort"

	"github.com/gcbaptista/go-questions/index"
)

// RankFiles scores every document against the query using TF-IDF and returns them best first.
// score = sum over query words present in the document of (raw count in document * idf).
// Query words missing from the document or from idfs contribute nothing.
// Equal scores are ordered by ascending document ID.
func RankFiles(query Query, files map[string][]string, idfs IDFTable) []ScoredFile {
	words := query.Words()

	scored := make([]ScoredFile, 0, len(files))
	for id, tokens := range files {
		counts := index.CountTerms(tokens)

		score := 0.0
		for _, word := range words {
			tf := counts[word]
			if tf == 0 {
				continue
			}
			idf, ok := idfs[word]
			if !ok {
				continue
			}
			score += float64(tf) * idf
		}
		scored = append(scored, ScoredFile{ID: id, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].ID < scored[j].ID
	})
	return scored
}

// TopFiles returns the n best matching documents, best first.
// n larger than the corpus returns every document and reports the clamp; n <= 0 returns none.
func TopFiles(query Query, files map[string][]string, idfs IDFTable, n int) ([]ScoredFile, bool) {
	return Limit(RankFiles(query, files, idfs), n)
}
