package lint

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of file results kept by NewCache(0).
const DefaultCacheSize = 1000

// cacheKey identifies one lint result: the same path with the same content
// under the same options lints the same way.
type cacheKey struct {
	path    string
	content uint64
	options uint64
}

// Cache keeps recent file results in an LRU. A Cache can be shared by
// several Linters, e.g. across configuration reloads in watch mode; the
// options fingerprint keeps their entries apart.
type Cache struct {
	entries *lru.Cache[cacheKey, *FileResult]

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache creates a cache holding up to size results. Zero selects
// DefaultCacheSize.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[cacheKey, *FileResult](size)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}
	return &Cache{entries: entries}
}

func (c *Cache) get(key cacheKey) (*FileResult, bool) {
	res, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return res, ok
}

func (c *Cache) add(key cacheKey, res *FileResult) {
	c.entries.Add(key, res)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries: c.entries.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

// CacheStats contains cache statistics.
type CacheStats struct {
	Entries int
	Hits    int64
	Misses  int64
}

// fingerprint hashes everything about the options that changes results.
// Options that cannot be encoded as JSON have no stable fingerprint.
func fingerprint(opts Options, rules []Rule) (uint64, error) {
	h := xxhash.New()
	enc := json.NewEncoder(h)
	// Settings and rule configuration are plain data; json sorts map keys,
	// so equal options always encode the same way.
	if err := enc.Encode(opts.Settings); err != nil {
		return 0, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := enc.Encode(opts.Rules); err != nil {
		return 0, fmt.Errorf("failed to encode rule options: %w", err)
	}
	for _, r := range rules {
		_, _ = h.WriteString(r.Name)
		_, _ = h.WriteString("\x00")
	}
	return h.Sum64(), nil
}
