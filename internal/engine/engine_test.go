package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-questions/config"
	internalErrors "github.com/gcbaptista/go-questions/internal/errors"
	"github.com/gcbaptista/go-questions/internal/logging"
	"github.com/gcbaptista/go-questions/model"
)

func newTestEngine(t *testing.T, docs []model.Document, settings config.PipelineSettings) *Engine {
	t.Helper()
	eng, err := New(docs, settings, logging.Component(logging.Discard(), "engine"))
	require.NoError(t, err)
	return eng
}

func scenarioDocs() []model.Document {
	return []model.Document{
		{ID: "a.txt", Text: "A cat sat."},
		{ID: "b.txt", Text: "A dog ran fast."},
	}
}

func TestAnswer_FileScenario(t *testing.T) {
	eng := newTestEngine(t, scenarioDocs(), config.PipelineSettings{})

	answer, err := eng.Answer(context.Background(), "cat", 1, 1)
	require.NoError(t, err)

	require.Len(t, answer.Files, 1)
	assert.Equal(t, "a.txt", answer.Files[0].ID)
	assert.InDelta(t, 0.693147, answer.Files[0].Score, 1e-6)
	assert.Equal(t, []string{"A cat sat."}, answer.SentenceTexts())
	assert.Equal(t, []string{"cat"}, answer.Tokens)
	assert.NotEmpty(t, answer.QueryID)
	assert.False(t, answer.Cached)
}

func TestAnswer_SentenceScenario(t *testing.T) {
	docs := []model.Document{
		{ID: "pets.txt", Text: "Cat sat on mat. Dog ran far fast."},
		{ID: "other.txt", Text: "Birds fly south."},
	}
	eng := newTestEngine(t, docs, config.PipelineSettings{})

	answer, err := eng.Answer(context.Background(), "Where did the cat sit?", 1, 1)
	require.NoError(t, err)

	require.Len(t, answer.Sentences, 1)
	assert.Equal(t, "Cat sat on mat.", answer.Sentences[0].Text)
	assert.Equal(t, "pets.txt", answer.Sentences[0].DocumentID)
	assert.Equal(t, 1, answer.Sentences[0].MatchingCount)
	assert.InDelta(t, 1.0/3.0, answer.Sentences[0].Density, 1e-9)
}

func TestAnswer_Clamping(t *testing.T) {
	eng := newTestEngine(t, scenarioDocs(), config.PipelineSettings{})

	answer, err := eng.Answer(context.Background(), "cat", 10, 10)
	require.NoError(t, err)

	assert.Len(t, answer.Files, 2, "file matches clamp to the corpus size")
	assert.Equal(t, []string{"A cat sat.", "A dog ran fast."}, answer.SentenceTexts())

	answer, err = eng.Answer(context.Background(), "cat", 0, 1)
	require.NoError(t, err)
	assert.Empty(t, answer.Files)
	assert.Empty(t, answer.Sentences)
}

func TestAnswer_EmptyQuery(t *testing.T) {
	eng := newTestEngine(t, scenarioDocs(), config.PipelineSettings{})

	for _, query := range []string{"", "   ", "the and of", "?!"} {
		answer, err := eng.Answer(context.Background(), query, 1, 1)
		require.NoError(t, err)
		assert.Empty(t, answer.Tokens, query)
		assert.NotNil(t, answer.Files)
		assert.Empty(t, answer.Files, query)
		assert.Empty(t, answer.Sentences, query)
	}
}

func TestAnswer_EmptyCorpus(t *testing.T) {
	eng := newTestEngine(t, nil, config.PipelineSettings{})

	answer, err := eng.Answer(context.Background(), "cat", 1, 1)
	require.NoError(t, err)
	assert.Empty(t, answer.Files)
	assert.Empty(t, answer.Sentences)
}

func TestAnswer_Idempotent(t *testing.T) {
	docs := []model.Document{
		{ID: "ai.txt", Text: "Artificial intelligence is intelligence demonstrated by machines.\nMachines learn from data."},
		{ID: "ml.txt", Text: "Machine learning builds models from data. Models make predictions."},
		{ID: "nn.txt", Text: "Neural networks are inspired by brains. Networks learn weights."},
	}
	eng := newTestEngine(t, docs, config.PipelineSettings{FileMatches: 2, SentenceMatches: 3})

	first, err := eng.Answer(context.Background(), "How do machines learn from data?", 2, 3)
	require.NoError(t, err)
	second, err := eng.Answer(context.Background(), "How do machines learn from data?", 2, 3)
	require.NoError(t, err)

	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, first.Sentences, second.Sentences)
	assert.NotEqual(t, first.QueryID, second.QueryID)
}

func TestAnswer_Concurrent(t *testing.T) {
	eng := newTestEngine(t, scenarioDocs(), config.PipelineSettings{})

	want, err := eng.Answer(context.Background(), "dog", 1, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := eng.Answer(context.Background(), "dog", 1, 1)
			assert.NoError(t, err)
			assert.Equal(t, want.Sentences, got.Sentences)
		}()
	}
	wg.Wait()
}

func TestAnswer_CancelledContext(t *testing.T) {
	eng := newTestEngine(t, scenarioDocs(), config.PipelineSettings{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Answer(ctx, "cat", 1, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnswer_PositionIdentity(t *testing.T) {
	docs := []model.Document{{ID: "echo.txt", Text: "Cats purr. Cats purr. Dogs bark."}}

	byText := newTestEngine(t, docs, config.PipelineSettings{})
	answer, err := byText.Answer(context.Background(), "cats", 1, 5)
	require.NoError(t, err)
	assert.Len(t, answer.Sentences, 2)

	byPosition := newTestEngine(t, docs, config.PipelineSettings{SentenceIdentity: config.SentenceIdentityPosition})
	answer, err = byPosition.Answer(context.Background(), "cats", 1, 5)
	require.NoError(t, err)
	require.Len(t, answer.Sentences, 3)
	assert.Equal(t, 0, answer.Sentences[0].Position)
	assert.Equal(t, 1, answer.Sentences[1].Position)
}

func TestNew_Settings(t *testing.T) {
	t.Run("invalid settings", func(t *testing.T) {
		_, err := New(nil, config.PipelineSettings{SentenceIdentity: "hash"}, nil)
		assert.ErrorIs(t, err, internalErrors.ErrInvalidInput)
	})

	t.Run("unsupported language", func(t *testing.T) {
		_, err := New(nil, config.PipelineSettings{Language: "klingon"}, nil)
		assert.ErrorIs(t, err, internalErrors.ErrUnsupportedLanguage)
	})

	t.Run("stopwords file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stop.txt")
		require.NoError(t, os.WriteFile(path, []byte("cat\n"), 0o600))

		eng := newTestEngine(t, scenarioDocs(), config.PipelineSettings{StopwordsFile: path})
		assert.Empty(t, eng.QueryTokens("cat"))
		assert.Equal(t, []string{"dog"}, eng.QueryTokens("the dog"))
	})

	t.Run("missing stopwords file", func(t *testing.T) {
		_, err := New(nil, config.PipelineSettings{StopwordsFile: filepath.Join(t.TempDir(), "nope")}, nil)
		assert.Error(t, err)
	})
}

func TestCorpusInfo(t *testing.T) {
	eng := newTestEngine(t, scenarioDocs(), config.PipelineSettings{})

	info := eng.CorpusInfo()
	assert.Equal(t, 2, info.Documents)
	assert.Equal(t, 5, info.Vocabulary)
	assert.Equal(t, []string{"a.txt", "b.txt"}, info.Files)
	assert.Equal(t, 1, eng.Settings().FileMatches)
}

func TestFingerprint(t *testing.T) {
	base := newTestEngine(t, scenarioDocs(), config.PipelineSettings{}).Fingerprint()
	require.NotEmpty(t, base)

	reversed := []model.Document{scenarioDocs()[1], scenarioDocs()[0]}
	assert.Equal(t, base, newTestEngine(t, reversed, config.PipelineSettings{}).Fingerprint(), "document order must not matter")

	edited := scenarioDocs()
	edited[0].Text = "A cat sat down."
	assert.NotEqual(t, base, newTestEngine(t, edited, config.PipelineSettings{}).Fingerprint())

	withStopwords := newTestEngine(t, scenarioDocs(), config.PipelineSettings{Stopwords: []string{"cat"}})
	assert.NotEqual(t, base, withStopwords.Fingerprint())

	byPosition := newTestEngine(t, scenarioDocs(), config.PipelineSettings{SentenceIdentity: config.SentenceIdentityPosition})
	assert.NotEqual(t, base, byPosition.Fingerprint())
}
