// Package recommend implements memory-based, user-user collaborative filtering.
//
// For a target user the Generator ranks every other user by cosine similarity,
// keeps the K most similar users with a strictly positive score as neighbors,
// and aggregates their ratings of items the target has not rated yet:
//
//	score(item) = sum over neighbors n that rated item of rating(n, item) * sim(target, n)
//
// The N highest-scoring items are returned. Ties are broken by ascending index
// so identical input always yields identical output.
//
// A Normalizer maps raw scores onto the display scale. It is applied after
// ranking and never feeds back into it.
package recommend
