// Package recgo provides an in-memory user-user collaborative-filtering
// recommender.
//
// Ratings are mapped to dense 1-based user and item indices in first-seen
// order, kept as sparse per-user vectors, and compared with cosine similarity
// restricted to co-rated items. For each user the K most similar users
// (default 10) vote on unseen items, weighted by similarity, and the top N
// items (default 5) are returned with a display score clamp(raw*5, 1, 10).
//
// # Quick Start
//
//	ctx := context.Background()
//	f, _ := os.Open("Ratings.csv")
//	src := ingest.NewCSVRatings(f, ingest.DefaultDialect)
//
//	e, err := recgo.Build(ctx, src,
//	    recgo.WithNeighbors(10),
//	    recgo.WithTopN(5),
//	    recgo.WithWorkers(runtime.NumCPU()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	recs, err := e.Recommend(ctx, "276725")
//
// # Batch Output
//
// RecommendAll visits every user in ascending index order, regardless of the
// worker count:
//
//	w := output.NewCSVWriter(os.Stdout)
//	err := e.WriteRows(ctx, w)
//
// # Two Phases
//
// The encode phase persists the store as LIBSVM plus index maps; the
// recommend phase rebuilds an engine with FromStore. See cmd/recgo.
//
// # Errors
//
// Unknown users yield *ErrUnknownUser, which matches ErrNotFound:
//
//	if errors.Is(err, recgo.ErrNotFound) { ... }
package recgo
