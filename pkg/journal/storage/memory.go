package storage

import (
	"context"
	"sort"
	"sync"

	"turtlescript/console/pkg/journal"
)

// MemoryStorage implements journal.Storage with an in-memory map.
// Entries are lost when the process exits.
type MemoryStorage struct {
	entries map[string]*journal.Entry
	closed  bool
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]*journal.Entry),
	}
}

// Store persists a copy of entry.
func (s *MemoryStorage) Store(ctx context.Context, entry *journal.Entry) error {
	if err := ctx.Err(); err != nil {
		return journal.NewStorageError("memory", "store", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return journal.NewStorageError("memory", "store", journal.ErrClosed)
	}

	entryCopy := *entry
	s.entries[entry.ID] = &entryCopy
	return nil
}

// Query retrieves entries matching the query.
func (s *MemoryStorage) Query(ctx context.Context, query *journal.Query) ([]*journal.Entry, error) {
	if query == nil {
		query = &journal.Query{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*journal.Entry{}
	for _, entry := range s.entries {
		if matchesQuery(entry, query) {
			entryCopy := *entry
			results = append(results, &entryCopy)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if query.Ascending {
			return results[i].StartedAt.Before(results[j].StartedAt)
		}
		return results[i].StartedAt.After(results[j].StartedAt)
	})

	start := min(query.Offset, len(results))
	results = results[start:]
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}

	return results, nil
}

// Count returns the number of entries matching the query.
func (s *MemoryStorage) Count(ctx context.Context, query *journal.Query) (int64, error) {
	if query == nil {
		query = &journal.Query{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, entry := range s.entries {
		if matchesQuery(entry, query) {
			count++
		}
	}
	return count, nil
}

// Delete removes entries matching the query.
func (s *MemoryStorage) Delete(ctx context.Context, query *journal.Query) (int64, error) {
	if query == nil {
		query = &journal.Query{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, entry := range s.entries {
		if matchesQuery(entry, query) {
			delete(s.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

// Close marks the storage closed. Further writes fail.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// matchesQuery checks if an entry matches all query filters.
func matchesQuery(entry *journal.Entry, query *journal.Query) bool {
	if query.StartTime != nil && entry.StartedAt.Before(*query.StartTime) {
		return false
	}
	if query.EndTime != nil && entry.StartedAt.After(*query.EndTime) {
		return false
	}
	if query.SessionID != "" && entry.SessionID != query.SessionID {
		return false
	}
	if query.Origin != "" && entry.Origin != query.Origin {
		return false
	}
	if query.Status != "" && entry.Status != query.Status {
		return false
	}
	return true
}
