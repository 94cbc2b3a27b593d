package cache

import (
	"container/list"
	"sync"
	"time"
)

// Entry is one cached value with its creation timestamp and TTL.
type Entry[K comparable, V any] struct {
	Key       K
	Value     V
	CreatedAt time.Time
	TTL       time.Duration
}

func (e *Entry[K, V]) expired(now time.Time) bool {
	return e.TTL > 0 && now.Sub(e.CreatedAt) > e.TTL
}

// Stats is a point-in-time snapshot of store activity.
type Stats struct {
	Size        int
	Capacity    int
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Expirations uint64
}

// Store is a capacity-bounded key/value store with per-entry TTL and strict
// oldest-created-first eviction.
type Store[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	creation *list.List // front = newest created, back = oldest
	mu       sync.Mutex
	now      func() time.Time

	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
}

// StoreOption configures store construction.
type StoreOption[K comparable, V any] func(*Store[K, V])

// WithClock replaces the store's time source. Tests use this to drive TTL
// expiry deterministically.
func WithClock[K comparable, V any](now func() time.Time) StoreOption[K, V] {
	return func(s *Store[K, V]) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a store with the given capacity. The capacity must be
// positive, otherwise it panics: a zero-capacity cache is a configuration
// defect, not a runtime condition.
func New[K comparable, V any](capacity int, opts ...StoreOption[K, V]) *Store[K, V] {
	if capacity <= 0 {
		panic("cache: capacity must be positive")
	}
	s := &Store[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		creation: list.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value for key if present and not expired. An expired
// entry counts as a miss and is removed lazily.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	elem, ok := s.items[key]
	if !ok {
		s.misses++
		return zero, false
	}

	entry := elem.Value.(*Entry[K, V])
	if entry.expired(s.now()) {
		s.removeElement(elem)
		s.expirations++
		s.misses++
		return zero, false
	}

	s.hits++
	return entry.Value, true
}

// Put inserts or replaces the value for key with the given TTL. A replaced
// entry takes a fresh creation timestamp. Inserting at capacity first
// evicts the single entry with the oldest creation timestamp.
func (s *Store[K, V]) Put(key K, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		s.removeElement(elem)
	}

	if s.creation.Len() >= s.capacity {
		if oldest := s.creation.Back(); oldest != nil {
			s.removeElement(oldest)
			s.evictions++
		}
	}

	entry := &Entry[K, V]{Key: key, Value: value, CreatedAt: s.now(), TTL: ttl}
	s.items[key] = s.creation.PushFront(entry)
}

// Remove deletes the entry for key if present.
func (s *Store[K, V]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if ok {
		s.removeElement(elem)
	}
	return ok
}

// Sweep removes every expired entry and returns how many were removed. It
// runs independently of capacity pressure.
func (s *Store[K, V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for elem := s.creation.Back(); elem != nil; {
		prev := elem.Prev()
		if entry := elem.Value.(*Entry[K, V]); entry.expired(now) {
			s.removeElement(elem)
			s.expirations++
			removed++
		}
		elem = prev
	}
	return removed
}

// Len returns the number of entries currently held, expired or not.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creation.Len()
}

// Clear removes all entries and leaves the counters untouched.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[K]*list.Element)
	s.creation.Init()
}

// Stats returns a snapshot of activity counters.
func (s *Store[K, V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Size:        s.creation.Len(),
		Capacity:    s.capacity,
		Hits:        s.hits,
		Misses:      s.misses,
		Evictions:   s.evictions,
		Expirations: s.expirations,
	}
}

// Must be called with the lock held.
func (s *Store[K, V]) removeElement(elem *list.Element) {
	s.creation.Remove(elem)
	entry := elem.Value.(*Entry[K, V])
	delete(s.items, entry.Key)
}
