package ident

import "math"

// Indexer is a bidirectional key <-> index table.
//
// Indexer is not safe for concurrent mutation. Concurrent reads are safe once
// construction is complete.
type Indexer[K comparable] struct {
	byKey map[K]uint32
	keys  []K // keys[i-1] is the key assigned index i
}

// New creates an empty Indexer.
func New[K comparable]() *Indexer[K] {
	return &Indexer[K]{byKey: make(map[K]uint32)}
}

// NewWithCapacity creates an empty Indexer sized for n keys.
func NewWithCapacity[K comparable](n int) *Indexer[K] {
	return &Indexer[K]{
		byKey: make(map[K]uint32, n),
		keys:  make([]K, 0, n),
	}
}

// Assign returns the index for key, allocating the next unused index on first
// sight.
//
// Assign panics if more than math.MaxUint32 distinct keys are assigned.
func (x *Indexer[K]) Assign(key K) uint32 {
	if idx, ok := x.byKey[key]; ok {
		return idx
	}
	if len(x.keys) == math.MaxUint32 {
		panic("ident: index space exhausted")
	}
	x.keys = append(x.keys, key)
	idx := uint32(len(x.keys))
	x.byKey[key] = idx
	return idx
}

// Lookup returns the index previously assigned to key.
func (x *Indexer[K]) Lookup(key K) (uint32, bool) {
	idx, ok := x.byKey[key]
	return idx, ok
}

// Key returns the key that was assigned index idx.
func (x *Indexer[K]) Key(idx uint32) (K, bool) {
	if idx == 0 || int(idx) > len(x.keys) {
		var zero K
		return zero, false
	}
	return x.keys[idx-1], true
}

// Len returns the number of assigned keys. Indices span [1, Len()].
func (x *Indexer[K]) Len() int {
	return len(x.keys)
}

// Keys returns all keys ordered by index.
func (x *Indexer[K]) Keys() []K {
	out := make([]K, len(x.keys))
	copy(out, x.keys)
	return out
}

// Range calls fn for every (index, key) pair in index order until fn returns
// false.
func (x *Indexer[K]) Range(fn func(idx uint32, key K) bool) {
	for i, k := range x.keys {
		if !fn(uint32(i+1), k) {
			return
		}
	}
}
