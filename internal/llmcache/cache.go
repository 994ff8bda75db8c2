// Package llmcache provides a bounded, repo-scoped cache for LLM
// responses so repeated analyses of the same repository and prompt
// skip the network round trip.
package llmcache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gabkaclassic/repomaintindex/pkg/hash"
	"github.com/gabkaclassic/repomaintindex/pkg/reset"
)

var _ reset.Resetable = (*Cache)(nil)

// Entry is one cached LLM response.
type Entry struct {
	Content    string
	TokensUsed int
	InsertedAt time.Time
	AccessedAt time.Time
}

// Stats summarizes cache occupancy.
type Stats struct {
	Size     int
	Capacity int
}

// Cache is a bounded LRU of Entry values keyed by sha256(repo||prompt).
// It also tracks, per repository full name, the set of keys inserted
// for that repo so clear_repository can evict a subtree without
// scanning the whole keyset.
//
// The underlying LRU already serializes Add/Get internally; the
// additional repoKeys bookkeeping is guarded by mu so the two stay
// consistent under concurrent mutators.
type Cache struct {
	mu       sync.Mutex
	lru      *lru.Cache[string, Entry]
	capacity int
	ttl      time.Duration
	repoKeys map[string]map[string]struct{}
}

// New builds a Cache with the given capacity (entry count) and TTL
// used by Maintenance. A non-positive capacity defaults to 1 so the
// LRU constructor never errors.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 1
	}

	backing, _ := lru.New[string, Entry](capacity)

	return &Cache{
		lru:      backing,
		capacity: capacity,
		ttl:      ttl,
		repoKeys: make(map[string]map[string]struct{}),
	}
}

func cacheKey(repo, prompt string) string {
	return hash.Digest([]byte(repo + prompt))
}

// Get looks up the cached entry for (repo, prompt), touching its
// accessed-at time on hit.
func (c *Cache) Get(repo, prompt string) (Entry, bool) {
	key := cacheKey(repo, prompt)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lru.Get(key)
	if !ok {
		return Entry{}, false
	}

	entry.AccessedAt = time.Now()
	c.lru.Add(key, entry)

	return entry, true
}

// Put inserts or overwrites the cached entry for (repo, prompt). If
// inserting evicts the hashicorp LRU's own least-recently-used entry,
// that key is also removed from repoKeys bookkeeping.
func (c *Cache) Put(repo, prompt, content string, tokensUsed int) {
	key := cacheKey(repo, prompt)
	now := time.Now()

	entry := Entry{
		Content:    content,
		TokensUsed: tokensUsed,
		InsertedAt: now,
		AccessedAt: now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	oldestKey, _, hadOldest := c.lru.GetOldest()
	evicted := c.lru.Add(key, entry)
	c.trackKey(repo, key)

	if evicted && hadOldest {
		c.pruneEvictedKey(oldestKey)
	}
}

func (c *Cache) trackKey(repo, key string) {
	keys, ok := c.repoKeys[repo]
	if !ok {
		keys = make(map[string]struct{})
		c.repoKeys[repo] = keys
	}
	keys[key] = struct{}{}
}

// pruneEvictedKey removes a key the LRU silently dropped from every
// repo's keyset. Called with mu held.
func (c *Cache) pruneEvictedKey(evictedKey string) {
	for repo, keys := range c.repoKeys {
		if _, ok := keys[evictedKey]; ok {
			delete(keys, evictedKey)
			if len(keys) == 0 {
				delete(c.repoKeys, repo)
			}
		}
	}
}

// ResetRepository evicts every cached entry inserted for repo.
func (c *Cache) ResetRepository(repo string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.repoKeys[repo] {
		c.lru.Remove(key)
	}
	delete(c.repoKeys, repo)
}

// ClearAll evicts every cached entry. It also satisfies
// pkg/reset.Resetable so the cache can be reused anywhere a Resetable
// is expected (e.g. test fixtures that reset shared state between runs).
func (c *Cache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Purge()
	c.repoKeys = make(map[string]map[string]struct{})
}

// Reset is an alias for ClearAll so Cache implements reset.Resetable.
func (c *Cache) Reset() {
	c.ClearAll()
}

// Stats reports current occupancy.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{Size: c.lru.Len(), Capacity: c.capacity}
}

// Maintenance evicts entries older than the configured TTL, measured
// from InsertedAt. A zero TTL disables maintenance.
func (c *Cache) Maintenance() {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-c.ttl)

	for _, key := range c.lru.Keys() {
		entry, ok := c.lru.Peek(key)
		if !ok {
			continue
		}
		if entry.InsertedAt.Before(cutoff) {
			c.lru.Remove(key)
			c.pruneEvictedKey(key)
		}
	}
}
