package cache

import (
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Cache = (*InsightsCache)(nil)

// InsightsCache holds computed insight digests for a few minutes,
// keyed by user and language.
type InsightsCache struct {
	mainCache *freecache.Cache
}

func NewInsightsCache(sizeMegabytes int) *InsightsCache {
	megabyte := 1024 * 1024
	return &InsightsCache{
		mainCache: freecache.NewCache(sizeMegabytes * megabyte),
	}
}

func (ic *InsightsCache) Get(key string) ([]byte, bool) {
	value, err := ic.mainCache.Get([]byte(key))
	if err != nil {
		// freecache returns an error for both "not found" and "expired"
		return nil, false
	}
	return value, true
}

func (ic *InsightsCache) Set(key string, value []byte, ttl time.Duration) {
	if err := ic.mainCache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		log.Errorf("insights cache, set [%s]: %s", key, err)
	}
}

func (ic *InsightsCache) Clear() {
	ic.mainCache.Clear()
}
