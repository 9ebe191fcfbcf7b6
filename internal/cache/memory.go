package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-questions/services"
)

type memoryEntry struct {
	key       string
	answer    services.Answer
	expiresAt time.Time
}

// MemoryStore is a bounded in-process Store with least-recently-used eviction.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	recency    *list.List // Front is the least recently used entry
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

// NewMemoryStore creates a MemoryStore. maxEntries <= 0 means 1024; ttl <= 0 disables expiry.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &MemoryStore{
		entries:    make(map[string]*list.Element),
		recency:    list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get returns the answer stored under key.
func (m *MemoryStore) Get(_ context.Context, key string) (services.Answer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		return services.Answer{}, false
	}
	entry := elem.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.recency.Remove(elem)
		delete(m.entries, key)
		return services.Answer{}, false
	}
	m.recency.MoveToBack(elem)
	return entry.answer, true
}

// Set stores answer under key, evicting the least recently used entry when full.
func (m *MemoryStore) Set(_ context.Context, key string, answer services.Answer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := &memoryEntry{key: key, answer: answer}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}

	if elem, exists := m.entries[key]; exists {
		elem.Value = entry
		m.recency.MoveToBack(elem)
		return
	}
	m.entries[key] = m.recency.PushBack(entry)

	for m.recency.Len() > m.maxEntries {
		oldest := m.recency.Front()
		m.recency.Remove(oldest)
		delete(m.entries, oldest.Value.(*memoryEntry).key)
	}
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

func newQueryID() string {
	return uuid.New().String()
}
