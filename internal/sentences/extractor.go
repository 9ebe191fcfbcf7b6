// Package sentences splits ranked documents into tokenized sentences.
package sentences

import (
	"fmt"
	"strings"

	internalErrors "github.com/gcbaptista/go-questions/internal/errors"
	"github.com/gcbaptista/go-questions/internal/segment"
	"github.com/gcbaptista/go-questions/model"
)

// Identity decides when two extracted sentences are the same sentence.
type Identity string

const (
	// IdentityText collapses sentences with identical text; the first occurrence is kept.
	IdentityText Identity = "text"
	// IdentityPosition keys sentences by document ID and position, keeping duplicates.
	IdentityPosition Identity = "position"
)

// ParseIdentity converts a configuration value into an Identity. Empty means IdentityText.
func ParseIdentity(value string) (Identity, error) {
	switch Identity(strings.ToLower(strings.TrimSpace(value))) {
	case "", IdentityText:
		return IdentityText, nil
	case IdentityPosition:
		return IdentityPosition, nil
	default:
		return "", internalErrors.NewValidationError("sentence_identity",
			fmt.Sprintf("must be %q or %q, got %q", IdentityText, IdentityPosition, value))
	}
}

// Tokenizer is the subset of the tokenizer the extractor needs.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Extractor splits documents into sentences and tokenizes each one.
type Extractor struct {
	tokenizer Tokenizer
	identity  Identity
}

// NewExtractor creates an Extractor. An empty identity defaults to IdentityText.
func NewExtractor(tok Tokenizer, identity Identity) *Extractor {
	if identity == "" {
		identity = IdentityText
	}
	return &Extractor{tokenizer: tok, identity: identity}
}

// Identity returns the identity policy in use.
func (e *Extractor) Identity() Identity {
	return e.identity
}

// Extract returns the sentences of docs in document order, then position order.
// Each document is split into lines and each line into sentences; abbreviations
// such as "Mr." and "e.g." do not end a sentence.
// Sentences without any index-worthy word are dropped.
func (e *Extractor) Extract(docs []model.Document) []model.Sentence {
	result := make([]model.Sentence, 0)
	seen := make(map[string]struct{})

	for _, doc := range docs {
		position := 0
		for _, text := range segment.Sentences(doc.Text) {
			tokens := e.tokenizer.Tokenize(text)
			if len(tokens) == 0 {
				continue
			}

			sentence := model.Sentence{
				Text:       text,
				DocumentID: doc.ID,
				Position:   position,
				Tokens:     tokens,
			}
			position++

			key := e.Key(sentence)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, sentence)
		}
	}

	return result
}

// Key returns the identifier of a sentence under the extractor's identity policy.
func (e *Extractor) Key(s model.Sentence) string {
	if e.identity == IdentityPosition {
		return fmt.Sprintf("%s#%d", s.DocumentID, s.Position)
	}
	return s.Text
}

// Collection maps each sentence key to its tokens, ready for IDF computation.
func (e *Extractor) Collection(extracted []model.Sentence) map[string][]string {
	collection := make(map[string][]string, len(extracted))
	for _, s := range extracted {
		collection[e.Key(s)] = s.Tokens
	}
	return collection
}
