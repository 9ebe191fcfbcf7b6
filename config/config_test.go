package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "english", cfg.Pipeline.Language)
	assert.Equal(t, 1, cfg.Pipeline.FileMatches)
	assert.Equal(t, 1, cfg.Pipeline.SentenceMatches)
	assert.Equal(t, SentenceIdentityText, cfg.Pipeline.SentenceIdentity)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	content := `
pipeline:
  fileMatches: 2
  sentenceMatches: 3
  sentenceIdentity: position
  stopwords: [chapter]
corpus:
  extensions: [".txt"]
server:
  port: 9000
  shutdownTimeout: 5s
cache:
  backend: none
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Pipeline.FileMatches)
	assert.Equal(t, 3, cfg.Pipeline.SentenceMatches)
	assert.Equal(t, SentenceIdentityPosition, cfg.Pipeline.SentenceIdentity)
	assert.Equal(t, []string{"chapter"}, cfg.Pipeline.Stopwords)
	assert.Equal(t, "english", cfg.Pipeline.Language, "unset fields keep their defaults")
	assert.Equal(t, []string{".txt"}, cfg.Corpus.Extensions)
	assert.Equal(t, 8, cfg.Corpus.Concurrency)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "none", cfg.Cache.Backend)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QA_FILE_MATCHES", "4")
	t.Setenv("QA_SENTENCE_MATCHES", "not-a-number")
	t.Setenv("QA_SERVER_PORT", "7070")
	t.Setenv("QA_LOG_LEVEL", "debug")
	t.Setenv("QA_CACHE_BACKEND", "redis")
	t.Setenv("QA_REDIS_ADDR", "cache:6379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Pipeline.FileMatches)
	assert.Equal(t, 1, cfg.Pipeline.SentenceMatches, "unparsable values are ignored")
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline: [unclosed"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := Default()
	cfg.Cache.Backend = "memcached"
	cfg.Logging.Format = "xml"
	cfg.Pipeline.SentenceMatches = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memcached")
	assert.Contains(t, err.Error(), "xml")
	assert.Contains(t, err.Error(), "sentence_matches")
}
