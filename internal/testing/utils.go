// Package testing provides utilities and helpers for testing the question-answering pipeline.
package testing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-questions/config"
	"github.com/gcbaptista/go-questions/internal/engine"
	"github.com/gcbaptista/go-questions/internal/logging"
	"github.com/gcbaptista/go-questions/model"
	"github.com/gcbaptista/go-questions/services"
)

// SampleCorpus is a small two-file corpus with one topic per file.
var SampleCorpus = map[string]string{
	"cats.txt": "Cats are small furry animals.\nA cat sleeps most of the day. Cats purr when they are happy.",
	"dogs.txt": "Dogs are loyal animals.\nA dog barks at strangers. Dogs love long walks.",
}

// WriteCorpus writes files into a fresh temporary directory and returns its path.
func WriteCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write corpus file")
	}
	return dir
}

// Documents converts a file map into documents without touching the disk.
func Documents(files map[string]string) []model.Document {
	docs := make([]model.Document, 0, len(files))
	for id, text := range files {
		docs = append(docs, model.Document{ID: id, Text: text})
	}
	return docs
}

// CreateTestEngine builds an engine over docs with default settings and silent logging.
func CreateTestEngine(t *testing.T, docs []model.Document) *engine.Engine {
	t.Helper()
	eng, err := engine.New(docs, config.PipelineSettings{}, logging.Component(logging.Discard(), "engine"))
	require.NoError(t, err, "Failed to create test engine")
	return eng
}

// AnswerTestCase represents a test case for answering a query
type AnswerTestCase struct {
	Name              string
	Query             string
	FileMatches       int
	SentenceMatches   int
	ExpectedFiles     []string // Expected file IDs in rank order
	ExpectedSentences []string // Expected sentence texts in rank order
	ValidateFunc      func(t *testing.T, answer services.Answer)
}

// RunAnswerTests runs a suite of answer tests against an answerer
func RunAnswerTests(t *testing.T, answerer services.Answerer, tests []AnswerTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			fileMatches, sentenceMatches := tt.FileMatches, tt.SentenceMatches
			if fileMatches == 0 {
				fileMatches = 1
			}
			if sentenceMatches == 0 {
				sentenceMatches = 1
			}

			answer, err := answerer.Answer(context.Background(), tt.Query, fileMatches, sentenceMatches)
			require.NoError(t, err, "Answer should not fail")

			if tt.ExpectedFiles != nil {
				ids := make([]string, 0, len(answer.Files))
				for _, f := range answer.Files {
					ids = append(ids, f.ID)
				}
				assert.Equal(t, tt.ExpectedFiles, ids, "File ranking should match")
			}
			if tt.ExpectedSentences != nil {
				assert.Equal(t, tt.ExpectedSentences, answer.SentenceTexts(), "Sentence ranking should match")
			}

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, answer)
			}
		})
	}
}
