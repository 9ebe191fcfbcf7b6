// Package tokenizer turns raw text into the normalized word sequences the rankers score.
package tokenizer

import (
	"strings"
	"unicode"

	internalErrors "github.com/gcbaptista/go-questions/internal/errors"
	"github.com/gcbaptista/go-questions/internal/segment"
)

// Config selects the stopword language and any extra stopwords.
type Config struct {
	Language  string   // Built-in stopword list to use; empty means DefaultLanguage
	Stopwords []string // Additional stopwords, matched case-insensitively
}

// Tokenizer lowercases text, keeps alphabetic words only and drops stopwords.
// It is immutable after construction and safe for concurrent use.
type Tokenizer struct {
	language  string
	stopwords map[string]struct{}
}

// New creates a Tokenizer for the configured language.
func New(cfg Config) (*Tokenizer, error) {
	language := strings.ToLower(strings.TrimSpace(cfg.Language))
	if language == "" {
		language = DefaultLanguage
	}

	builtin, ok := BuiltinStopwords(language)
	if !ok {
		return nil, internalErrors.NewUnsupportedLanguageError(language)
	}

	stopwords := make(map[string]struct{}, len(builtin)+len(cfg.Stopwords))
	for _, word := range builtin {
		stopwords[word] = struct{}{}
	}
	for _, word := range cfg.Stopwords {
		if word = strings.ToLower(strings.TrimSpace(word)); word != "" {
			stopwords[word] = struct{}{}
		}
	}

	return &Tokenizer{language: language, stopwords: stopwords}, nil
}

// Default returns an English tokenizer with the built-in stopword list.
func Default() *Tokenizer {
	t, err := New(Config{Language: DefaultLanguage})
	if err != nil {
		panic(err) // the default language is always registered
	}
	return t
}

// Language returns the stopword language in use.
func (t *Tokenizer) Language() string {
	return t.language
}

// IsStopword reports whether word (already lowercased) is discarded as a stopword.
func (t *Tokenizer) IsStopword(word string) bool {
	_, ok := t.stopwords[word]
	return ok
}

// Tokenize converts text into a slice of normalized words in occurrence order.
// Text is split into sentences and each sentence into units; a unit survives
// only if it is made of letters alone and is not a stopword.
// Duplicates are kept so callers can count term frequency.
func (t *Tokenizer) Tokenize(text string) []string {
	tokens := make([]string, 0) // Initialize as empty slice, not nil

	for _, sentence := range segment.Sentences(text) {
		for _, unit := range segment.Words(sentence) {
			word := strings.ToLower(unit)
			// A letters-only unit can never be a punctuation symbol.
			if !isAlphabetic(word) {
				continue
			}
			if t.IsStopword(word) {
				continue
			}
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func isAlphabetic(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
