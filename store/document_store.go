package store

import (
	"sort"
	"sync"

	internalErrors "github.com/gcbaptista/go-questions/internal/errors"
	"github.com/gcbaptista/go-questions/model"
)

// DocumentStore keeps the raw text of every loaded document.
// The rankers only need token sequences; raw text is kept so the top documents
// can be split into sentences after document ranking.
type DocumentStore struct {
	Mu   sync.RWMutex
	Docs map[string]model.Document // Document ID to full document
}

// NewDocumentStore creates a store holding docs. When two documents share an ID the later one wins.
func NewDocumentStore(docs []model.Document) *DocumentStore {
	ds := &DocumentStore{Docs: make(map[string]model.Document, len(docs))}
	for _, doc := range docs {
		ds.Docs[doc.ID] = doc
	}
	return ds
}

// Add stores a document, replacing any document with the same ID.
func (ds *DocumentStore) Add(doc model.Document) {
	ds.Mu.Lock()
	defer ds.Mu.Unlock()

	if ds.Docs == nil {
		ds.Docs = make(map[string]model.Document)
	}
	ds.Docs[doc.ID] = doc
}

// Get returns the document with the given ID.
func (ds *DocumentStore) Get(id string) (model.Document, error) {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()

	doc, ok := ds.Docs[id]
	if !ok {
		return model.Document{}, internalErrors.NewDocumentNotFoundError(id)
	}
	return doc, nil
}

// GetMany returns the documents with the given IDs in the order requested.
func (ds *DocumentStore) GetMany(ids []string) ([]model.Document, error) {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()

	docs := make([]model.Document, 0, len(ids))
	for _, id := range ids {
		doc, ok := ds.Docs[id]
		if !ok {
			return nil, internalErrors.NewDocumentNotFoundError(id)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// All returns every stored document ordered by ID.
func (ds *DocumentStore) All() []model.Document {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()

	docs := make([]model.Document, 0, len(ds.Docs))
	for _, doc := range ds.Docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs
}

// Len returns the number of stored documents.
func (ds *DocumentStore) Len() int {
	ds.Mu.RLock()
	defer ds.Mu.RUnlock()
	return len(ds.Docs)
}
