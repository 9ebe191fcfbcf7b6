// Package config provides configuration structures for the question-answering pipeline.
// It defines pipeline settings, file-based configuration and environment overrides.
package config

import (
	"fmt"
	"strings"
)

const (
	// SentenceIdentityText collapses sentences with identical text.
	SentenceIdentityText = "text"
	// SentenceIdentityPosition keys sentences by document and position.
	SentenceIdentityPosition = "position"

	// MaxMatches bounds FileMatches and SentenceMatches.
	MaxMatches = 100
)

// PipelineSettings contains the options of the two-stage ranking pipeline.
// FileMatches documents are chosen by TF-IDF, then SentenceMatches sentences
// are ranked within those documents.
type PipelineSettings struct {
	Language         string   `json:"language" yaml:"language"`                  // Stopword language (e.g., "english")
	Stopwords        []string `json:"stopwords" yaml:"stopwords"`                // Extra stopwords on top of the language list
	StopwordsFile    string   `json:"stopwords_file" yaml:"stopwordsFile"`       // Optional file with one extra stopword per line
	FileMatches      int      `json:"file_matches" yaml:"fileMatches"`           // Documents passed to sentence ranking
	SentenceMatches  int      `json:"sentence_matches" yaml:"sentenceMatches"`   // Sentences returned per query
	SentenceIdentity string   `json:"sentence_identity" yaml:"sentenceIdentity"` // "text" or "position"
}

// ApplyDefaults fills unset fields with their default values.
func (settings *PipelineSettings) ApplyDefaults() {
	if strings.TrimSpace(settings.Language) == "" {
		settings.Language = "english"
	}
	if settings.FileMatches == 0 {
		settings.FileMatches = 1
	}
	if settings.SentenceMatches == 0 {
		settings.SentenceMatches = 1
	}
	if settings.SentenceIdentity == "" {
		settings.SentenceIdentity = SentenceIdentityText
	}

	// Initialize empty slices if nil
	if settings.Stopwords == nil {
		settings.Stopwords = []string{}
	}
}

// Validate returns one message per invalid setting. An empty result means the settings are usable.
func (settings *PipelineSettings) Validate() []string {
	var problems []string

	if strings.TrimSpace(settings.Language) == "" {
		problems = append(problems, "language cannot be empty")
	}

	problems = append(problems, checkMatches("file_matches", settings.FileMatches)...)
	problems = append(problems, checkMatches("sentence_matches", settings.SentenceMatches)...)

	switch strings.ToLower(settings.SentenceIdentity) {
	case SentenceIdentityText, SentenceIdentityPosition:
	default:
		problems = append(problems, fmt.Sprintf("invalid sentence_identity '%s' (must be '%s' or '%s')",
			settings.SentenceIdentity, SentenceIdentityText, SentenceIdentityPosition))
	}

	for _, word := range settings.Stopwords {
		if strings.TrimSpace(word) == "" {
			problems = append(problems, "stopwords cannot contain empty or whitespace-only entries")
			break
		}
	}

	return problems
}

// checkMatches validates a match count and returns error messages
func checkMatches(name string, value int) []string {
	if value <= 0 {
		return []string{fmt.Sprintf("%s must be positive, got %d", name, value)}
	}
	if value > MaxMatches {
		return []string{fmt.Sprintf("%s must be at most %d, got %d", name, MaxMatches, value)}
	}
	return nil
}
