// Package cache stores answers keyed by the engine fingerprint, the normalized
// query and match counts. Answers are deterministic for a fingerprint, so a
// cached answer is always current, even in a store shared by several servers.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/gcbaptista/go-questions/config"
	"github.com/gcbaptista/go-questions/services"
)

// Store is a backend holding answers by key.
type Store interface {
	Get(ctx context.Context, key string) (services.Answer, bool)
	Set(ctx context.Context, key string, answer services.Answer)
	Close() error
}

// Engine is what the cache wraps: it answers queries, exposes their normalized
// words and identifies its corpus.
type Engine interface {
	services.Answerer
	services.QueryNormalizer
	services.Fingerprinter
}

// Key builds the cache key for an engine fingerprint, a set of query words and match counts.
// Word order and duplicates do not change the key.
func Key(fingerprint string, tokens []string, fileMatches, sentenceMatches int) string {
	words := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		words = append(words, token)
	}
	sort.Strings(words)

	raw := fmt.Sprintf("%s|%s|files=%d|sentences=%d", fingerprint, strings.Join(words, ","), fileMatches, sentenceMatches)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", hash[:16])
}

// AnswerCache serves answers from a Store and computes misses once per key.
// It implements services.Answerer.
type AnswerCache struct {
	engine Engine
	store  Store
	group  singleflight.Group
	logger *logrus.Entry
	hits   atomic.Int64
	misses atomic.Int64
}

// New wraps engine with the given store.
func New(engine Engine, store Store, logger *logrus.Entry) *AnswerCache {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &AnswerCache{engine: engine, store: store, logger: logger}
}

// Answer returns a cached answer when one exists and computes it otherwise.
// Concurrent identical queries share a single computation.
func (c *AnswerCache) Answer(ctx context.Context, query string, fileMatches, sentenceMatches int) (services.Answer, error) {
	start := time.Now()
	key := Key(c.engine.Fingerprint(), c.engine.QueryTokens(query), fileMatches, sentenceMatches)

	if answer, ok := c.store.Get(ctx, key); ok {
		c.hits.Add(1)
		c.logger.WithField("key", key).Debug("cache hit")
		return c.fromCache(answer, query, start), nil
	}

	computed := false
	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		if answer, ok := c.store.Get(ctx, key); ok {
			return answer, nil
		}
		answer, err := c.engine.Answer(ctx, query, fileMatches, sentenceMatches)
		if err != nil {
			return nil, err
		}
		computed = true
		c.store.Set(ctx, key, answer)
		return answer, nil
	})
	if err != nil {
		return services.Answer{}, err
	}

	answer := val.(services.Answer)
	if !computed {
		// Another caller computed it
		c.hits.Add(1)
		return c.fromCache(answer, query, start), nil
	}
	c.misses.Add(1)
	return answer, nil
}

// fromCache stamps a stored answer for the current request
func (c *AnswerCache) fromCache(answer services.Answer, query string, start time.Time) services.Answer {
	answer.QueryID = newQueryID()
	answer.Query = query
	answer.Cached = true
	answer.Took = time.Since(start).Milliseconds()
	return answer
}

// Stats returns the number of hits and misses so far.
func (c *AnswerCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Close releases the underlying store.
func (c *AnswerCache) Close() error {
	return c.store.Close()
}

// NewStore creates the backend selected by cfg. "none" returns a nil Store.
func NewStore(cfg config.CacheConfig, logger *logrus.Entry) (Store, error) {
	switch cfg.Backend {
	case "memory", "":
		return NewMemoryStore(cfg.MaxEntries, cfg.TTL), nil
	case "redis":
		return NewRedisStore(cfg.Redis, cfg.TTL, logger)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend '%s'", cfg.Backend)
	}
}
