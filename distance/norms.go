package distance

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/recgo/sparse"
)

// Norms caches the Euclidean norm of every eligible user.
type Norms struct {
	norms    map[uint32]float64
	eligible *roaring.Bitmap
}

// ComputeNorms builds the norm cache from store.
//
// Users whose squared rating sum is not strictly positive are excluded.
func ComputeNorms(store *sparse.Store) *Norms {
	n := &Norms{
		norms:    make(map[uint32]float64, store.Len()),
		eligible: roaring.New(),
	}
	for _, u := range store.Users() {
		sq := store.Get(u).SquaredNorm()
		if sq > 0 {
			n.norms[u] = math.Sqrt(sq)
			n.eligible.Add(u)
		}
	}
	return n
}

// Norm returns the cached norm of user.
func (n *Norms) Norm(user uint32) (float64, bool) {
	v, ok := n.norms[user]
	return v, ok
}

// Eligible reports whether user may take part in similarity computation.
func (n *Norms) Eligible(user uint32) bool {
	return n.eligible.Contains(user)
}

// Users returns the eligible users in ascending order.
func (n *Norms) Users() []uint32 {
	return n.eligible.ToArray()
}

// Len returns the number of eligible users.
func (n *Norms) Len() int {
	return len(n.norms)
}
