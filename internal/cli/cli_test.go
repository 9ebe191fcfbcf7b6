package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "github.com/gcbaptista/go-questions/internal/errors"
	qtesting "github.com/gcbaptista/go-questions/internal/testing"
	"github.com/gcbaptista/go-questions/services"
)

// execute runs a fresh command tree and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no corpus", nil},
		{"two arguments", []string{"a", "b"}},
		{"serve without corpus", []string{"serve"}},
		{"unknown flag", []string{"corpus", "--nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, qerrors.ErrUsage), "expected usage error, got %v", err)
			assert.Contains(t, err.Error(), "Usage: questions")
		})
	}
}

func TestAsk_QueryFlag(t *testing.T) {
	dir := qtesting.WriteCorpus(t, qtesting.SampleCorpus)

	out, err := execute(t, "", dir, "--query", "Why do cats purr?")
	require.NoError(t, err)
	assert.Equal(t, "Cats purr when they are happy.\n", out)
}

func TestAsk_Prompt(t *testing.T) {
	dir := qtesting.WriteCorpus(t, qtesting.SampleCorpus)

	out, err := execute(t, "dog barks\n", dir)
	require.NoError(t, err)
	assert.Equal(t, "Query: A dog barks at strangers.\n", out)
}

func TestAsk_Repeat(t *testing.T) {
	dir := qtesting.WriteCorpus(t, qtesting.SampleCorpus)

	out, err := execute(t, "cats purr\ndog barks\n", dir, "--repeat")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, prompt))
	assert.Contains(t, out, "Cats purr when they are happy.")
	assert.Contains(t, out, "A dog barks at strangers.")
}

func TestAsk_MatchFlags(t *testing.T) {
	dir := qtesting.WriteCorpus(t, qtesting.SampleCorpus)

	out, err := execute(t, "", dir, "-q", "animals", "-f", "2", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "Dogs are loyal animals.\nCats are small furry animals.\n", out)
}

func TestAsk_JSON(t *testing.T) {
	dir := qtesting.WriteCorpus(t, qtesting.SampleCorpus)

	out, err := execute(t, "", dir, "-q", "dog barks", "--json")
	require.NoError(t, err)

	var answer services.Answer
	require.NoError(t, json.Unmarshal([]byte(out), &answer))
	assert.Equal(t, []string{"barks", "dog"}, answer.Tokens)
	require.Len(t, answer.Files, 1)
	assert.Equal(t, "dogs.txt", answer.Files[0].ID)
	assert.Equal(t, []string{"A dog barks at strangers."}, answer.SentenceTexts())
}

func TestAsk_Scores(t *testing.T) {
	dir := qtesting.WriteCorpus(t, qtesting.SampleCorpus)

	out, err := execute(t, "", dir, "-q", "cats purr", "--scores")
	require.NoError(t, err)
	assert.Contains(t, out, "Files:")
	assert.Contains(t, out, "[1] cats.txt")
	assert.Contains(t, out, "[1] Cats purr when they are happy.")
}

func TestAsk_ConfigFile(t *testing.T) {
	dir := qtesting.WriteCorpus(t, qtesting.SampleCorpus)
	configPath := filepath.Join(t.TempDir(), "questions.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("pipeline:\n  sentenceMatches: 2\n"), 0o644))

	out, err := execute(t, "", dir, "--config", configPath, "-q", "cats")
	require.NoError(t, err)
	assert.Equal(t, "Cats purr when they are happy.\nCats are small furry animals.\n", out)
}

func TestAsk_InvalidMatches(t *testing.T) {
	dir := qtesting.WriteCorpus(t, qtesting.SampleCorpus)

	_, err := execute(t, "", dir, "-q", "cats", "-n", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestAsk_MissingCorpus(t *testing.T) {
	_, err := execute(t, "", filepath.Join(t.TempDir(), "missing"), "-q", "cats")
	require.Error(t, err)
	assert.True(t, errors.Is(err, qerrors.ErrCorpusUnavailable))
	assert.False(t, errors.Is(err, qerrors.ErrUsage))
}

func TestVersionCmd(t *testing.T) {
	original := Version
	Version = "test-version-1.0.0"
	defer func() { Version = original }()

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "questions version test-version-1.0.0")
}

func TestServeRouter(t *testing.T) {
	dir := qtesting.WriteCorpus(t, qtesting.SampleCorpus)
	cmd := NewRootCommand()
	cmd.SetErr(io.Discard)

	env, err := prepare(context.Background(), cmd, &options{}, dir)
	require.NoError(t, err)

	router, cleanup, err := newRouter(env)
	require.NoError(t, err)
	defer cleanup()

	query := func() services.Answer {
		req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{"query": "Why do cats purr?"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var answer services.Answer
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &answer))
		return answer
	}

	first := query()
	second := query()
	assert.Equal(t, []string{"Cats purr when they are happy."}, first.SentenceTexts())
	assert.False(t, first.Cached)
	assert.True(t, second.Cached)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "questions_corpus_documents 2")
	assert.Contains(t, rec.Body.String(), "questions_cache_hits_total 1")
}

func TestServeRouter_NoCache(t *testing.T) {
	t.Setenv("QA_CACHE_BACKEND", "none")
	dir := qtesting.WriteCorpus(t, qtesting.SampleCorpus)
	cmd := NewRootCommand()
	cmd.SetErr(io.Discard)

	env, err := prepare(context.Background(), cmd, &options{}, dir)
	require.NoError(t, err)

	router, cleanup, err := newRouter(env)
	require.NoError(t, err)
	defer cleanup()

	qtesting.RunAnswerTests(t, env.engine, []qtesting.AnswerTestCase{
		{
			Name:              "cats",
			Query:             "Why do cats purr?",
			ExpectedFiles:     []string{"cats.txt"},
			ExpectedSentences: []string{"Cats purr when they are happy."},
		},
		{
			Name:              "shared word ties break by file name",
			Query:             "animals",
			FileMatches:       2,
			SentenceMatches:   2,
			ExpectedFiles:     []string{"cats.txt", "dogs.txt"},
			ExpectedSentences: []string{"Dogs are loyal animals.", "Cats are small furry animals."},
		},
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(`{"query": "cats"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"cached":false`)
	}
}

func TestSampleCorpusWithoutDisk(t *testing.T) {
	eng := qtesting.CreateTestEngine(t, qtesting.Documents(qtesting.SampleCorpus))

	qtesting.RunAnswerTests(t, eng, []qtesting.AnswerTestCase{
		{
			Name:              "dog barks",
			Query:             "Which dog barks?",
			ExpectedFiles:     []string{"dogs.txt"},
			ExpectedSentences: []string{"A dog barks at strangers."},
		},
		{
			Name:              "stopwords only",
			Query:             "why is it",
			ExpectedFiles:     []string{},
			ExpectedSentences: []string{},
		},
	})
}
