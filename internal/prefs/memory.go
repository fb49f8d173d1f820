package prefs

import (
	"context"
	"sync"
)

// MemoryRepository is a concurrency-safe in-memory Repository used when no
// database is configured (development) and in tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]Record
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string]Record)}
}

func (r *MemoryRepository) Get(_ context.Context, userID string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.data[userID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepository) Upsert(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[rec.UserID] = rec
	return nil
}

func (r *MemoryRepository) Locations(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var locations []string
	for _, rec := range r.data {
		if rec.Location == "" {
			continue
		}
		if _, ok := seen[rec.Location]; ok {
			continue
		}
		seen[rec.Location] = struct{}{}
		locations = append(locations, rec.Location)
	}
	return locations, nil
}
