package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/agentcore-dev/agentcore/core"
)

// storedRecord is the internal representation persisted by InMemoryStore.
// It mirrors the core.SearchResult shape without a score field since scoring
// is trivial here.
type storedRecord struct {
	id       string
	content  string
	metadata map[string]any
}

// InMemoryStore is a naive process-local core.MemoryStore. It offers:
//  1. Key/value state (GetState / SetState / DeleteState)
//  2. Append-only records with substring Search
//
// Concurrency: protected by RWMutex.
// Search: linear scan with substring matching (case insensitive) assigning a
// constant score of 1.0 to every hit. Suitable only for tests / demos; swap
// for a vector DB or semantic index for production retrieval.
type InMemoryStore struct {
	mu      sync.RWMutex
	state   map[string]any
	records []storedRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		state: make(map[string]any),
	}
}

// GetState returns the value stored under key.
func (m *InMemoryStore) GetState(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.state[key]
	return v, ok
}

// SetState stores value under key, replacing any previous value.
func (m *InMemoryStore) SetState(key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state[key] = value
}

// DeleteState removes key; deleting an absent key is a no-op.
func (m *InMemoryStore) DeleteState(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.state, key)
}

// Store appends a new record generating a simple incremental id.
func (m *InMemoryStore) Store(content string, metadata map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	md := make(map[string]any, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	m.records = append(m.records, storedRecord{
		id:       fmt.Sprintf("mem_%d", len(m.records)),
		content:  content,
		metadata: md,
	})
	return nil
}

// Search performs a simple case-insensitive substring match over stored
// records. Results are returned in insertion order up to the provided limit;
// every hit receives a constant score of 1.0. An empty query matches all
// records.
func (m *InMemoryStore) Search(query string, limit int) ([]core.SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(query)
	results := make([]core.SearchResult, 0, limit)
	for _, rec := range m.records {
		if limit >= 0 && len(results) >= limit {
			break
		}
		if needle != "" && !strings.Contains(strings.ToLower(rec.content), needle) {
			continue
		}
		md := make(map[string]any, len(rec.metadata))
		for k, v := range rec.metadata {
			md[k] = v
		}
		results = append(results, core.SearchResult{
			ID:       rec.id,
			Content:  rec.content,
			Metadata: md,
			Score:    1.0,
		})
	}
	return results, nil
}

// Reset clears all state and records.
func (m *InMemoryStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = make(map[string]any)
	m.records = nil
}
