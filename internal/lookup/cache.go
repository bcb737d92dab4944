package lookup

import (
	"container/list"
	"sync"
)

// DefaultCacheSize bounds a Cache created with a non-positive capacity.
const DefaultCacheSize = 4096

// Cache is a size-bounded map with O(1) hit/insert and least-recently-used
// eviction. It is safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu  sync.Mutex
	cap int
	ll  *list.List
	m   map[K]*list.Element
}

type cacheNode[K comparable, V any] struct {
	k K
	v V
}

func NewCache[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache[K, V]{cap: capacity, ll: list.New(), m: make(map[K]*list.Element)}
}

// Get returns the value stored for k and marks it recently used.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[k]; ok {
		c.ll.MoveToFront(e)
		return e.Value.(*cacheNode[K, V]).v, true
	}
	var zero V
	return zero, false
}

// Put stores v for k, evicting the least recently used entry when full.
func (c *Cache[K, V]) Put(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[k]; ok {
		e.Value.(*cacheNode[K, V]).v = v
		c.ll.MoveToFront(e)
		return
	}
	c.m[k] = c.ll.PushFront(&cacheNode[K, V]{k: k, v: v})
	if c.ll.Len() > c.cap {
		if tail := c.ll.Back(); tail != nil {
			c.ll.Remove(tail)
			delete(c.m, tail.Value.(*cacheNode[K, V]).k)
		}
	}
}

// Len is the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
