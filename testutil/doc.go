// Package testutil provides testing utilities for recgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating deterministic rating fixtures and a
// brute-force reference for neighbor selection.
//
// # Random Ratings
//
//	rng := testutil.NewRNG(seed)
//	ratings := rng.Ratings(100, 50, 8) // 100 users, 50 items, <=8 ratings each
//	store := testutil.StoreOf(ratings)
//
// Item popularity follows a Zipf distribution, so a few items are rated by
// many users, as in real rating dumps.
//
// # Ground Truth
//
//	want := testutil.ExactNeighbors(store, target, k)
package testutil
