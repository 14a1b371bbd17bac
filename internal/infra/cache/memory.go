package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Memory is a process-local LRU cache whose entries also expire after a TTL.
// It is safe for concurrent use.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

type memoryEntry struct {
	key       string
	summary   string
	expiresAt time.Time
}

// NewMemory creates a cache holding at most maxEntries summaries for ttl each.
func NewMemory(maxEntries int, ttl time.Duration) *Memory {
	return &Memory{
		entries:    make(map[string]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Get implements summarize.Cache. Expired entries are dropped on access.
func (c *Memory) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return "", false, nil
	}

	entry := elem.Value.(*memoryEntry)
	if c.now().After(entry.expiresAt) {
		c.removeElement(elem)
		return "", false, nil
	}

	c.order.MoveToFront(elem)
	return entry.summary, true, nil
}

// Set implements summarize.Cache. Empty keys and summaries are ignored.
func (c *Memory) Set(_ context.Context, key, summary string) error {
	if key == "" || summary == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expiresAt := now.Add(c.ttl)

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.summary = summary
		entry.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return nil
	}

	c.entries[key] = c.order.PushFront(&memoryEntry{
		key:       key,
		summary:   summary,
		expiresAt: expiresAt,
	})

	c.evictExpiredLocked(now)
	c.enforceSizeLimitLocked()
	return nil
}

// Len returns the number of stored entries, expired ones included until evicted.
func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Memory) evictExpiredLocked(now time.Time) {
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if now.After(elem.Value.(*memoryEntry).expiresAt) {
			c.removeElement(elem)
		}
		elem = prev
	}
}

func (c *Memory) enforceSizeLimitLocked() {
	for len(c.entries) > c.maxEntries {
		elem := c.order.Back()
		if elem == nil {
			return
		}
		c.removeElement(elem)
	}
}

func (c *Memory) removeElement(elem *list.Element) {
	delete(c.entries, elem.Value.(*memoryEntry).key)
	c.order.Remove(elem)
}
