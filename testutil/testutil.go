package testutil

import (
	"math"
	"math/rand"
	"slices"
	"strconv"
	"sync"

	"github.com/hupe1980/recgo/ingest"
	"github.com/hupe1980/recgo/sparse"
)

// Neighbor is a reference neighbor.
type Neighbor struct {
	User       uint32
	Similarity float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1
		}
	}

	return n - 1
}

// Ratings generates rating triples for users u1..uN over items i1..iM.
// Each user rates between 1 and maxPerUser items drawn with Zipf
// popularity; ratings are integers in [0, 10] like the Book-Crossing scale.
// Users appear in ascending order, so user keys map to indices 1..N.
func (r *RNG) Ratings(users, items, maxPerUser int) []ingest.Rating {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []ingest.Rating
	for u := 1; u <= users; u++ {
		n := 1 + r.rand.Intn(maxPerUser)
		for range n {
			item := 1 + r.zipfLocked(items, 1.1)
			out = append(out, ingest.Rating{
				User:  "u" + strconv.Itoa(u),
				Item:  "i" + strconv.Itoa(item),
				Value: float64(r.rand.Intn(11)),
			})
		}
	}
	return out
}

// StoreOf indexes ratings in first-seen order and returns the store.
func StoreOf(ratings []ingest.Rating) *sparse.Store {
	users := map[string]uint32{}
	items := map[string]uint32{}
	assign := func(m map[string]uint32, k string) uint32 {
		if v, ok := m[k]; ok {
			return v
		}
		v := uint32(len(m) + 1)
		m[k] = v
		return v
	}

	s := sparse.NewStore()
	for _, r := range ratings {
		s.Set(assign(users, r.User), assign(items, r.Item), r.Value)
	}
	return s
}

// Cosine computes the co-rated cosine similarity of two users directly from
// their vectors.
func Cosine(s *sparse.Store, a, b uint32) float64 {
	va, vb := s.Get(a), s.Get(b)
	na, nb := va.Norm(), vb.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for item, x := range va {
		if y, ok := vb[item]; ok {
			dot += x * y
		}
	}
	return dot / (na * nb)
}

// ExactNeighbors returns the k users most similar to target by sorting every
// candidate, best first, ties by ascending user index.
func ExactNeighbors(s *sparse.Store, target uint32, k int) []Neighbor {
	var all []Neighbor
	for _, u := range s.Users() {
		if u == target {
			continue
		}
		if sim := Cosine(s, target, u); sim > 0 {
			all = append(all, Neighbor{User: u, Similarity: sim})
		}
	}
	slices.SortFunc(all, func(x, y Neighbor) int {
		switch {
		case x.Similarity > y.Similarity:
			return -1
		case x.Similarity < y.Similarity:
			return 1
		case x.User < y.User:
			return -1
		case x.User > y.User:
			return 1
		}
		return 0
	})
	if len(all) > k {
		all = all[:k]
	}
	return all
}
