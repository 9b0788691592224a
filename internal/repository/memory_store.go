package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
)

// MemoryStore keeps documents in process memory. It backs local development and tests.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]json.RawMessage)}
}

// Get decodes the document into dest.
func (s *MemoryStore) Get(_ context.Context, collection, id string, dest interface{}) error {
	s.mu.RLock()
	raw, ok := s.collections[collection][id]
	s.mu.RUnlock()
	if !ok {
		return ErrDocumentNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return nil
}

// List returns every document of collection ordered by ID.
func (s *MemoryStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0, len(s.collections[collection]))
	for id, raw := range s.collections[collection] {
		docs = append(docs, Document{ID: id, Data: append(json.RawMessage(nil), raw...)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Put replaces the document.
func (s *MemoryStore) Put(_ context.Context, collection, id string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(collection, id, raw)
	return nil
}

// Update merges top-level fields into an existing document.
func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.collections[collection][id]
	if !ok {
		return ErrDocumentNotFound
	}
	merged, err := mergeFields(raw, fields)
	if err != nil {
		return err
	}
	s.put(collection, id, merged)
	return nil
}

// ArrayUnion appends values to an array field without duplicating existing entries.
func (s *MemoryStore) ArrayUnion(_ context.Context, collection, id, field string, values ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.collections[collection][id]
	if !ok {
		return ErrDocumentNotFound
	}
	updated, err := unionField(raw, field, values)
	if err != nil {
		return err
	}
	s.put(collection, id, updated)
	return nil
}

func (s *MemoryStore) put(collection, id string, raw json.RawMessage) {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]json.RawMessage)
		s.collections[collection] = docs
	}
	docs[id] = raw
}

// Fixture is the seed file layout: collection name to document ID to document body.
type Fixture map[string]map[string]json.RawMessage

// ReadFixture decodes a seed fixture.
func ReadFixture(r io.Reader) (Fixture, error) {
	var fixture Fixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return fixture, nil
}

// LoadFixture writes every fixture document into store and returns how many were written.
func LoadFixture(ctx context.Context, store DocumentStore, fixture Fixture) (int, error) {
	collections := make([]string, 0, len(fixture))
	for name := range fixture {
		collections = append(collections, name)
	}
	sort.Strings(collections)

	count := 0
	for _, collection := range collections {
		for id, raw := range fixture[collection] {
			if err := store.Put(ctx, collection, id, raw); err != nil {
				return count, fmt.Errorf("seed %s/%s: %w", collection, id, err)
			}
			count++
		}
	}
	return count, nil
}
