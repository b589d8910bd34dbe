// Package cache memoizes solve results keyed by roster fingerprint.
package cache

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"io"
	"sync"
	"sync/atomic"

	"github.com/okian/rondo/internal/domain/model"
)

// Cache stores finished solve results for identical requests. Cached
// results are shared, not copied; callers must treat them as read-only.
type Cache interface {
	// Get returns the cached result for key and whether it was present.
	// A hit refreshes the entry's recency.
	Get(ctx context.Context, key uint64) (model.SolveResult, bool)

	// Put stores a result under key, evicting the least recently used
	// entry when the cache is full.
	Put(ctx context.Context, key uint64, res model.SolveResult)

	Size() int64
}

// entry is a single cached result in the recency list.
type entry struct {
	key        uint64
	res        model.SolveResult
	prev, next *entry
}

// reset clears the entry state for reuse.
func (e *entry) reset() {
	e.key = 0
	e.res = model.SolveResult{}
	e.prev = nil
	e.next = nil
}

// lruCache implements Cache with a map plus a doubly linked recency
// list. Head is most recently used, tail gets evicted.
// For capacity <= 0 the cache is disabled: Get always misses and Put
// drops everything.
type lruCache struct {
	mu        sync.Mutex
	items     map[uint64]*entry
	head      *entry
	tail      *entry
	capacity  int
	size      atomic.Int64
	entryPool sync.Pool
}

// New creates a result cache with configuration options.
func New(opts ...Option) Cache {
	c := &lruCache{
		capacity: 256, // default capacity
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	c.items = make(map[uint64]*entry)

	if c.capacity > 0 {
		c.entryPool = sync.Pool{
			New: func() interface{} {
				return &entry{}
			},
		}
	}

	return c
}

// Get returns the cached result for key and refreshes its recency.
func (c *lruCache) Get(_ context.Context, key uint64) (model.SolveResult, bool) {
	if c.capacity <= 0 {
		return model.SolveResult{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return model.SolveResult{}, false
	}
	c.moveToFront(e)
	return e.res, true
}

// Put stores a result under key, evicting the coldest entry if needed.
func (c *lruCache) Put(_ context.Context, key uint64, res model.SolveResult) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.res = res
		c.moveToFront(e)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictTail()
	}

	e := c.entryPool.Get().(*entry)
	e.key = key
	e.res = res
	c.pushFront(e)
	c.items[key] = e
	c.size.Add(1)
}

// Size returns the current number of cached results.
func (c *lruCache) Size() int64 {
	return c.size.Load()
}

// pushFront links e as the new head.
// Must be called with c.mu held.
func (c *lruCache) pushFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

// unlink removes e from the recency list without touching the map.
// Must be called with c.mu held.
func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

// moveToFront marks e as most recently used.
// Must be called with c.mu held.
func (c *lruCache) moveToFront(e *entry) {
	if c.head == e {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

// evictTail drops the least recently used entry.
// Must be called with c.mu held.
func (c *lruCache) evictTail() {
	e := c.tail
	if e == nil {
		return
	}
	c.unlink(e)
	delete(c.items, e.key)
	e.reset()
	c.entryPool.Put(e)
	c.size.Add(-1)
}

// Fingerprint derives a cache key from the parsed roster and seed.
// The roster order matters: the check-in split depends on it, so two
// orderings of the same players are distinct requests.
func Fingerprint(players []model.Player, seed int64) uint64 {
	h := fnv.New64a()
	writeInt64(h, seed)
	writeInt(h, len(players))
	for _, p := range players {
		writeString(h, p.ID)
		writeString(h, p.Name)
		writeInt(h, p.Age)
		writeInt(h, p.Rating)
		_, _ = h.Write([]byte{byte(p.Main), byte(p.Alt)})
		if p.CheckedInAt.IsZero() {
			writeInt64(h, 0)
		} else {
			writeInt64(h, p.CheckedInAt.UnixNano())
		}
	}
	return h.Sum64()
}

// writeString writes a length-prefixed string so adjacent fields
// cannot collide.
func writeString(w io.Writer, s string) {
	writeInt(w, len(s))
	_, _ = io.WriteString(w, s)
}

func writeInt(w io.Writer, v int) {
	writeInt64(w, int64(v))
}

func writeInt64(w io.Writer, v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	_, _ = w.Write(buf[:])
}
