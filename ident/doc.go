// Package ident assigns dense, 1-based integer indices to opaque keys.
//
// An Indexer hands out indices in first-seen order. The first key ever passed
// to Assign receives index 1, the next distinct key index 2, and so on. Indices
// are never reassigned or reclaimed, so the mapping is stable for the lifetime
// of the Indexer and reproducible for identical input order.
//
//	users := ident.New[string]()
//	items := ident.New[string]()
//
//	u := users.Assign("276725") // 1
//	i := items.Assign("034545104X") // 1 (independent counter)
//
// The counter lives inside the Indexer, so independent runs (and tests) never
// share state.
package ident
