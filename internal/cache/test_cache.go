package cache

import (
	"sync"
	"time"
)

var _ Cache = (*TestCache)(nil)

// TestCache is an in-memory map cache for unit tests,
// with expiry checked on read.
type TestCache struct {
	mu      sync.Mutex
	entries map[string]testCacheEntry
	// Now can be swapped in tests to control entry expiry
	Now func() time.Time
}

type testCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewTestCache() *TestCache {
	return &TestCache{
		entries: make(map[string]testCacheEntry),
		Now:     time.Now,
	}
}

func (tc *TestCache) Get(key string) ([]byte, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	entry, ok := tc.entries[key]
	if !ok {
		return nil, false
	}
	if tc.Now().After(entry.expiresAt) {
		delete(tc.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (tc *TestCache) Set(key string, value []byte, ttl time.Duration) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.entries[key] = testCacheEntry{
		value:     value,
		expiresAt: tc.Now().Add(ttl),
	}
}

func (tc *TestCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.entries = make(map[string]testCacheEntry)
}
