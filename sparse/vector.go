package sparse

import (
	"math"
	"slices"
)

// Vector is a sparse rating vector: item index -> rating.
type Vector map[uint32]float64

// SortedItems returns the item indices in ascending order.
func (v Vector) SortedItems() []uint32 {
	items := make([]uint32, 0, len(v))
	for it := range v {
		items = append(items, it)
	}
	slices.Sort(items)
	return items
}

// SquaredNorm returns the sum of squared ratings.
func (v Vector) SquaredNorm() float64 {
	var s float64
	for _, r := range v {
		s += r * r
	}
	return s
}

// Norm returns the Euclidean norm of the vector.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.SquaredNorm())
}

// Clone returns a copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for k, r := range v {
		out[k] = r
	}
	return out
}
