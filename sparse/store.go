package sparse

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Store is the sparse user -> item -> rating table.
//
// Store is not safe for concurrent mutation. Once construction is finished it
// may be read from multiple goroutines.
type Store struct {
	vectors map[uint32]Vector
	items   map[uint32]*roaring.Bitmap
	nnz     int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		vectors: make(map[uint32]Vector),
		items:   make(map[uint32]*roaring.Bitmap),
	}
}

// Set inserts or overwrites the rating for (user, item). Last write wins.
func (s *Store) Set(user, item uint32, rating float64) {
	vec, ok := s.vectors[user]
	if !ok {
		vec = make(Vector)
		s.vectors[user] = vec
		s.items[user] = roaring.New()
	}
	if _, dup := vec[item]; !dup {
		s.nnz++
		s.items[user].Add(item)
	}
	vec[item] = rating
}

// Get returns the rating vector for user. Unknown users yield an empty vector.
//
// The returned vector is owned by the Store and must not be modified.
func (s *Store) Get(user uint32) Vector {
	if vec, ok := s.vectors[user]; ok {
		return vec
	}
	return Vector{}
}

// Rating returns a single rating.
func (s *Store) Rating(user, item uint32) (float64, bool) {
	r, ok := s.vectors[user][item]
	return r, ok
}

// Has reports whether user has at least one stored rating.
func (s *Store) Has(user uint32) bool {
	_, ok := s.vectors[user]
	return ok
}

// Items returns the set of items rated by user, or an empty bitmap.
//
// The returned bitmap is owned by the Store and must not be modified.
func (s *Store) Items(user uint32) *roaring.Bitmap {
	if bm, ok := s.items[user]; ok {
		return bm
	}
	return roaring.New()
}

// Users returns all user indices in ascending order.
func (s *Store) Users() []uint32 {
	users := make([]uint32, 0, len(s.vectors))
	for u := range s.vectors {
		users = append(users, u)
	}
	slices.Sort(users)
	return users
}

// ItemUniverse returns the union of all rated item indices.
func (s *Store) ItemUniverse() *roaring.Bitmap {
	all := make([]*roaring.Bitmap, 0, len(s.items))
	for _, bm := range s.items {
		all = append(all, bm)
	}
	return roaring.FastOr(all...)
}

// Len returns the number of users with at least one rating.
func (s *Store) Len() int {
	return len(s.vectors)
}

// NNZ returns the number of stored (user, item) entries.
func (s *Store) NNZ() int {
	return s.nnz
}
