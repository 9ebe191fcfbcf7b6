package search

import (
	"math"

	"github.com/gcbaptista/go-questions/index"
)

// ComputeIDFs calculates the inverse document frequency of every word in collection.
// IDF = ln(N / f) where N = number of units and f = units containing the word at least once.
// Every word comes from the collection itself, so f >= 1 and the IDF is never negative;
// a word present in every unit gets 0.
func ComputeIDFs(collection map[string][]string) IDFTable {
	docFreq := make(map[string]int)
	for _, tokens := range collection {
		for word := range index.CountTerms(tokens) {
			docFreq[word]++
		}
	}

	total := float64(len(collection))
	idfs := make(IDFTable, len(docFreq))
	for word, f := range docFreq {
		idfs[word] = math.Log(total / float64(f))
	}
	return idfs
}
