package distance

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/recgo/sparse"
)

// Func computes the similarity of two users.
type Func func(a, b uint32) float64

// Cosine computes cosine similarity between users of a store.
//
// Cosine only reads from the store and the norm cache, so it is safe for
// concurrent use once both are built.
type Cosine struct {
	store *sparse.Store
	norms *Norms
}

// NewCosine creates a cosine similarity engine over store and norms.
func NewCosine(store *sparse.Store, norms *Norms) *Cosine {
	return &Cosine{store: store, norms: norms}
}

// Similarity returns the cosine similarity of users a and b over their
// commonly rated items. It returns 0 if either user is ineligible or they
// share no item.
func (c *Cosine) Similarity(a, b uint32) float64 {
	na, okA := c.norms.Norm(a)
	nb, okB := c.norms.Norm(b)
	if !okA || !okB {
		return 0
	}

	common := roaring.And(c.store.Items(a), c.store.Items(b))
	if common.IsEmpty() {
		return 0
	}

	va, vb := c.store.Get(a), c.store.Get(b)
	var dot float64
	it := common.Iterator()
	for it.HasNext() {
		item := it.Next()
		dot += va[item] * vb[item]
	}

	denom := na * nb
	if denom == 0 {
		return 0
	}
	return dot / denom
}

// Func returns Similarity as a Func.
func (c *Cosine) Func() Func {
	return c.Similarity
}

// Eligible reports whether user is in the eligible set.
func (c *Cosine) Eligible(user uint32) bool {
	return c.norms.Eligible(user)
}
