package cache

import "time"

// Cache is a small TTL'd byte cache. Entries are immutable once
// written and are replaced wholesale, never partially invalidated.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Clear()
}
