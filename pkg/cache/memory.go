package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value   string
	expires time.Time
}

// MemoryStore is a thread-safe in-process store. Entries are dropped lazily
// once their TTL has passed.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates a store whose entries live for ttl. A ttl of zero
// or less never expires entries.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl < 0 {
		ttl = 0
	}

	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value stored under key if it has not expired.
func (store *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	store.mu.RLock()
	entry, ok := store.entries[key]
	store.mu.RUnlock()

	if !ok {
		return "", false, nil
	}

	if !entry.expires.IsZero() && store.now().After(entry.expires) {
		store.mu.Lock()
		delete(store.entries, key)
		store.mu.Unlock()

		return "", false, nil
	}

	return entry.value, true, nil
}

// Set stores value under key.
func (store *MemoryStore) Set(_ context.Context, key, value string) error {
	entry := memoryEntry{value: value}
	if store.ttl > 0 {
		entry.expires = store.now().Add(store.ttl)
	}

	store.mu.Lock()
	store.entries[key] = entry
	store.mu.Unlock()

	return nil
}

// Len returns the number of entries, including expired ones not yet dropped.
func (store *MemoryStore) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return len(store.entries)
}

var _ Store = (*MemoryStore)(nil)
