// Package repository provides the keyed-store and indexed-heap primitives
// backing the matching engine.
package repository

import "math"

// entry stores one key/value pair inside a bucket chain.
type entry[V any] struct {
	key   string
	value V
}

// KeyedStore is a fixed-capacity string-keyed table using separate chaining.
// The bucket count is chosen at construction and never changes; callers pick
// a capacity appropriate to the expected load (a large prime for global
// tables, a small prime for per-customer blacklists).
type KeyedStore[V any] struct {
	capacity int
	size     int
	buckets  [][]entry[V]
}

// NewKeyedStore constructs a store with configuration options.
func NewKeyedStore[V any](opts ...StoreOption) *KeyedStore[V] {
	cfg := storeConfig{capacity: defaultStoreCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &KeyedStore[V]{
		capacity: cfg.capacity,
		buckets:  make([][]entry[V], cfg.capacity),
	}
}

// hashKey computes a Horner polynomial hash over key with multiplier 31 in
// 32-bit arithmetic. Wraparound is intentional; the most-negative value maps
// to 0 and other negative values are negated before the caller's modulo.
func hashKey(key string) int {
	var h int32
	for _, r := range key {
		h = 31*h + int32(r)
	}
	if h == math.MinInt32 {
		return 0
	}
	if h < 0 {
		h = -h
	}
	return int(h)
}

func (s *KeyedStore[V]) bucketFor(key string) int {
	return hashKey(key) % s.capacity
}

// Put inserts the value under key, overwriting any existing mapping.
func (s *KeyedStore[V]) Put(key string, value V) {
	pos := s.bucketFor(key)
	chain := s.buckets[pos]

	for i := range chain {
		if chain[i].key == key {
			chain[i].value = value
			return
		}
	}

	s.buckets[pos] = append(chain, entry[V]{key: key, value: value})
	s.size++
}

// Get returns the value stored under key, or false when absent.
func (s *KeyedStore[V]) Get(key string) (V, bool) {
	chain := s.buckets[s.bucketFor(key)]
	for i := range chain {
		if chain[i].key == key {
			return chain[i].value, true
		}
	}
	var zero V
	return zero, false
}

// Remove deletes the mapping for key if present. Removing a missing key is
// a no-op reported as false.
func (s *KeyedStore[V]) Remove(key string) bool {
	pos := s.bucketFor(key)
	chain := s.buckets[pos]

	for i := range chain {
		if chain[i].key == key {
			s.buckets[pos] = append(chain[:i], chain[i+1:]...)
			s.size--
			return true
		}
	}
	return false
}

// Contains reports whether key has a mapping.
func (s *KeyedStore[V]) Contains(key string) bool {
	chain := s.buckets[s.bucketFor(key)]
	for i := range chain {
		if chain[i].key == key {
			return true
		}
	}
	return false
}

// Size returns the number of mappings.
func (s *KeyedStore[V]) Size() int {
	return s.size
}

// Values returns a snapshot of all stored values. The order is unspecified
// but stable for an unmutated store.
func (s *KeyedStore[V]) Values() []V {
	values := make([]V, 0, s.size)
	for _, chain := range s.buckets {
		for i := range chain {
			values = append(values, chain[i].value)
		}
	}
	return values
}
