// Package distance provides similarity computation over sparse rating vectors.
//
// # Norm Cache
//
// ComputeNorms precomputes the Euclidean norm of every user's rating vector.
// Only users with a strictly positive norm are kept; they form the eligible
// set. Users outside the eligible set never participate in similarity, neither
// as query nor as candidate.
//
// # Cosine Similarity
//
// Cosine is computed on the overlap of rated items only. Items rated by just
// one of the two users contribute zero to the dot product, which is exact for
// sparse vectors; the denominator uses the full-vector norms from the cache.
//
// # Usage
//
//	norms := distance.ComputeNorms(store)
//	sim := distance.NewCosine(store, norms)
//	s := sim.Similarity(a, b)
package distance
