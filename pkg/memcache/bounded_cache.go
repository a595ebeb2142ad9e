// pkg/memcache/bounded_cache.go
package mem

import (
	"container/list"
	"sync"
	"time"
)

// BoundedStore is a capacity-limited key/value store with per-entry expiry.
type BoundedStore[V any] interface {
	Set(key string, value V)

	// Get returns the value for key if present and not expired, and marks it
	// as most recently used.
	Get(key string) (V, bool)

	Len() int
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// BoundedCache evicts the least recently used entry once capacity is reached.
type BoundedCache[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List
	data     map[string]*list.Element
	now      func() time.Time
}

func NewBoundedCache[V any](capacity int, ttl time.Duration) *BoundedCache[V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &BoundedCache[V]{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		data:     make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

func (c *BoundedCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if el, ok := c.data[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	for c.order.Len() >= c.capacity {
		c.removeElement(c.order.Back())
	}
	c.data[key] = c.order.PushFront(&entry[V]{key: key, value: value, expiresAt: expiresAt})
}

func (c *BoundedCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.data[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[V])
	if c.ttl > 0 && c.now().After(e.expiresAt) {
		c.removeElement(el) // cleanup expired
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

func (c *BoundedCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *BoundedCache[V]) removeElement(el *list.Element) {
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.data, el.Value.(*entry[V]).key)
}
