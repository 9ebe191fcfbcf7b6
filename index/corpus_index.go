package index

import (
	"sort"

	"github.com/gcbaptista/go-questions/model"
)

// Tokenizer is the part of the tokenizer the index needs.
type Tokenizer interface {
	Tokenize(text string) []string
}

// CorpusIndex holds the token sequence of every document in the corpus.
// It is built once and never mutated afterwards, so concurrent readers need no locking.
type CorpusIndex struct {
	files      map[string][]string // Document ID to its token sequence, in occurrence order
	ids        []string            // Document IDs in lexicographic order
	vocabulary map[string]int      // Word to number of documents containing it
}

// Build tokenizes every document and returns the resulting index.
// When two documents share an ID the later one wins.
func Build(docs []model.Document, tok Tokenizer) *CorpusIndex {
	ci := &CorpusIndex{
		files:      make(map[string][]string, len(docs)),
		vocabulary: make(map[string]int),
	}

	for _, doc := range docs {
		ci.files[doc.ID] = tok.Tokenize(doc.Text)
	}

	ci.ids = make([]string, 0, len(ci.files))
	for id, tokens := range ci.files {
		ci.ids = append(ci.ids, id)
		for word := range CountTerms(tokens) {
			ci.vocabulary[word]++
		}
	}
	sort.Strings(ci.ids)

	return ci
}

// Files returns the document ID to token sequence mapping.
// Callers must treat it as read-only.
func (ci *CorpusIndex) Files() map[string][]string {
	return ci.files
}

// Tokens returns the token sequence of one document.
func (ci *CorpusIndex) Tokens(id string) ([]string, bool) {
	tokens, ok := ci.files[id]
	return tokens, ok
}

// IDs returns a copy of the document IDs in lexicographic order.
func (ci *CorpusIndex) IDs() []string {
	ids := make([]string, len(ci.ids))
	copy(ids, ci.ids)
	return ids
}

// Len returns the number of indexed documents.
func (ci *CorpusIndex) Len() int {
	return len(ci.files)
}

// VocabularySize returns the number of distinct words in the corpus.
func (ci *CorpusIndex) VocabularySize() int {
	return len(ci.vocabulary)
}

// DocumentFrequency returns how many documents contain word.
func (ci *CorpusIndex) DocumentFrequency(word string) int {
	return ci.vocabulary[word]
}
