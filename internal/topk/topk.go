// Package topk implements a bounded heap that keeps the k best-scored entries.
package topk

import "slices"

// Item is a scored entry. ID is a user or item index.
type Item struct {
	ID    uint32
	Score float64
}

// better reports whether a ranks ahead of b: higher score first, lower ID on
// ties.
func better(a, b Item) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.ID < b.ID
}

// Heap keeps at most k items. The root is the worst retained item so that a
// full heap can reject or replace candidates in O(log k).
// It does NOT implement container/heap to avoid interface overhead.
type Heap struct {
	k     int
	items []Item
}

// New creates a Heap bounded to k items. k <= 0 yields a heap that rejects
// everything.
func New(k int) *Heap {
	capHint := k
	if capHint > 64 {
		capHint = 64
	}
	if capHint < 0 {
		capHint = 0
	}
	return &Heap{k: k, items: make([]Item, 0, capHint)}
}

// Push offers an item to the heap.
func (h *Heap) Push(it Item) {
	if h.k <= 0 {
		return
	}
	if len(h.items) < h.k {
		h.items = append(h.items, it)
		h.siftUp(len(h.items) - 1)
		return
	}
	// Heap is full: replace the root only if the candidate ranks ahead of it.
	if better(it, h.items[0]) {
		h.items[0] = it
		h.siftDown(0)
	}
}

// Len returns the number of retained items.
func (h *Heap) Len() int {
	return len(h.items)
}

// Reset clears the heap for reuse.
func (h *Heap) Reset() {
	h.items = h.items[:0]
}

// Sorted returns the retained items best first. The heap is left untouched.
func (h *Heap) Sorted() []Item {
	out := slices.Clone(h.items)
	slices.SortFunc(out, func(a, b Item) int {
		switch {
		case better(a, b):
			return -1
		case better(b, a):
			return 1
		default:
			return 0
		}
	})
	return out
}

// less orders the heap with the worst item at the root.
func (h *Heap) less(i, j int) bool {
	return better(h.items[j], h.items[i])
}

func (h *Heap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(i, parent) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *Heap) siftDown(i int) {
	n := len(h.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		if right := left + 1; right < n && h.less(right, left) {
			child = right
		}
		if !h.less(child, i) {
			break
		}
		h.items[i], h.items[child] = h.items[child], h.items[i]
		i = child
	}
}
