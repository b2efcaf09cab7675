// Package corpus holds the ordered document collection and its file loaders.
package corpus

import "github.com/hyperjump/kensaku/internal/models"

// Store is the ordered, immutable document collection. Indices are
// zero-based and contiguous; both ranking models and result reporting
// reference this same index space. Built once, never mutated, so it is
// safe for concurrent reads without locking.
type Store struct {
	docs []models.Document
}

// NewStore builds a store from documents, assigning positional indices.
func NewStore(docs []models.Document) *Store {
	out := make([]models.Document, len(docs))
	copy(out, docs)
	for i := range out {
		out[i].Index = i
	}
	return &Store{docs: out}
}

// Len returns the number of documents.
func (s *Store) Len() int {
	return len(s.docs)
}

// Get returns the document at index i, or nil if i is out of range.
func (s *Store) Get(i int) *models.Document {
	if i < 0 || i >= len(s.docs) {
		return nil
	}
	return &s.docs[i]
}

// Documents returns the ordered document slice. Callers must not mutate it.
func (s *Store) Documents() []models.Document {
	return s.docs
}
