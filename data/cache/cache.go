// Package cache keeps recently fetched quotes in memory for a short time.
package cache

import (
	"container/list"
	"log"
	"strings"
	"sync"
	"time"

	m "pi.service/data/models"
)

const (
	DefaultTTL        = 5 * time.Minute
	DefaultMaxEntries = 500
)

// Stats are counters since the cache was created, they are never persisted
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

type entry struct {
	key       string
	quote     *m.Quote
	createdAt time.Time
}

// Cache maps an uppercase ticker to its last fetched quote.
// Entries expire after ttl, and once maxEntries is exceeded the oldest inserted entry is evicted.
// Overwriting a ticker refreshes its timestamp but keeps its place in the eviction order.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front is the oldest insertion
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	hits   uint64
	misses uint64
}

func New(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	return &Cache{
		entries:    make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Get returns the cached quote while it is younger than the ttl, an expired entry is removed.
// A failure inside the cache is reported as a miss.
func (c *Cache) Get(ticker string) (quote *m.Quote, ok bool) {
	key := normalize(ticker)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("cache read error for %s (treated as miss): %v", key, r)
			quote, ok = nil, false
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	el, found := c.entries[key]
	if !found {
		c.misses++
		log.Printf("cache miss for %s", key)
		return nil, false
	}

	e := el.Value.(*entry)
	if age := c.now().Sub(e.createdAt); age >= c.ttl {
		c.removeElement(el)
		c.misses++
		log.Printf("cache entry for %s expired (age %v, ttl %v)", key, age, c.ttl)
		return nil, false
	}

	c.hits++
	return e.quote, true
}

// Put stores the quote with a fresh timestamp. Failures are logged and dropped.
func (c *Cache) Put(ticker string, quote *m.Quote) {
	if quote == nil {
		return
	}
	key := normalize(ticker)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("cache write error for %s (ignored): %v", key, r)
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, found := c.entries[key]; found {
		e := el.Value.(*entry)
		e.quote = quote
		e.createdAt = c.now()
		return
	}

	c.entries[key] = c.order.PushBack(&entry{
		key:       key,
		quote:     quote,
		createdAt: c.now(),
	})

	for c.order.Len() > c.maxEntries {
		oldest := c.order.Front()
		log.Printf("cache evicting oldest entry %s", oldest.Value.(*entry).key)
		c.removeElement(oldest)
	}
}

func (c *Cache) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.entries, el.Value.(*entry).key)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge drops every entry, counters are kept
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element, c.maxEntries)
	c.order.Init()
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Entries: c.order.Len(),
	}
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) MaxEntries() int {
	return c.maxEntries
}
