package recgo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/recgo/catalog"
	"github.com/hupe1980/recgo/distance"
	"github.com/hupe1980/recgo/ident"
	"github.com/hupe1980/recgo/ingest"
	"github.com/hupe1980/recgo/libsvm"
	"github.com/hupe1980/recgo/output"
	"github.com/hupe1980/recgo/recommend"
	"github.com/hupe1980/recgo/sparse"
)

// usersPerWorker sizes RecommendAll batches. Results of a batch are held in
// memory until the whole batch is emitted in user order.
const usersPerWorker = 64

// Recommendation is a suggestion resolved for display.
type Recommendation struct {
	Item    uint32
	ItemKey string
	Title   string
	// Score is the normalized display score.
	Score float64
	// RawScore is the aggregated similarity-weighted rating.
	RawScore float64
}

// Engine is a built recommender. It is immutable and safe for concurrent use.
type Engine struct {
	users  *ident.Indexer[string]
	items  *ident.Indexer[string]
	store  *sparse.Store
	norms  *distance.Norms
	gen    *recommend.Generator
	bridge *catalog.Bridge
	opts   options
}

// Build reads every rating from src, assigns dense indices in first-seen
// order and prepares the engine.
//
// Example:
//
//	src := ingest.Ratings{
//	    {User: "alice", Item: "book-1", Value: 5},
//	    {User: "bob", Item: "book-1", Value: 4},
//	    {User: "bob", Item: "book-2", Value: 3},
//	}
//	e, err := recgo.Build(ctx, src)
//	recs, err := e.Recommend(ctx, "alice")
func Build(ctx context.Context, src ingest.RatingSource, optFns ...Option) (*Engine, error) {
	start := time.Now()
	opts := applyOptions(optFns)

	users := ident.New[string]()
	items := ident.New[string]()
	store := sparse.NewStore()

	err := src.Each(ctx, func(r ingest.Rating) error {
		store.Set(users.Assign(r.User), items.Assign(r.Item), r.Value)
		return nil
	})
	if err != nil {
		err = fmt.Errorf("read ratings: %w", err)
		opts.logger.LogBuild(ctx, 0, 0, 0, 0, err)
		opts.metricsCollector.RecordBuild(0, 0, 0, time.Since(start), err)
		return nil, err
	}

	skipped := 0
	if s, ok := src.(interface{ Stats() ingest.Stats }); ok {
		skipped = s.Stats().Skipped
		opts.logger.DebugContext(ctx, "ratings ingested",
			"records", s.Stats().Records,
			"skipped", skipped,
		)
	}

	return newEngine(ctx, store, users, items, skipped, start, opts)
}

// FromStore wraps an already encoded store, such as one decoded from LIBSVM.
//
// users and items map indices back to source keys and may be nil. Without a
// user map, user keys are decimal indices. Without an item map, titles can
// only be resolved through the catalog-ordinal bridge.
func FromStore(ctx context.Context, store *sparse.Store, users, items *ident.Indexer[string], optFns ...Option) (*Engine, error) {
	start := time.Now()
	opts := applyOptions(optFns)
	return newEngine(ctx, store, users, items, 0, start, opts)
}

func newEngine(ctx context.Context, store *sparse.Store, users, items *ident.Indexer[string], skipped int, start time.Time, opts options) (*Engine, error) {
	e, err := assemble(ctx, store, users, items, opts)

	var nUsers, nItems, nRatings int
	if err == nil {
		nUsers, nItems, nRatings = store.Len(), int(store.ItemUniverse().GetCardinality()), store.NNZ()
	}
	opts.logger.WithK(opts.neighbors).LogBuild(ctx, nUsers, nItems, nRatings, skipped, err)
	opts.metricsCollector.RecordBuild(nUsers, nItems, nRatings, time.Since(start), err)

	return e, err
}

func assemble(ctx context.Context, store *sparse.Store, users, items *ident.Indexer[string], opts options) (*Engine, error) {
	if opts.workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, opts.workers)
	}
	if err := opts.normalizer.Validate(); err != nil {
		return nil, translateError(err)
	}

	norms := distance.ComputeNorms(store)
	gen, err := recommend.New(store, norms,
		recommend.WithNeighbors(opts.neighbors),
		recommend.WithTopN(opts.topN),
		recommend.WithEligiblePrefilter(opts.prefilter),
	)
	if err != nil {
		return nil, translateError(err)
	}

	bridge, err := resolveBridge(opts, items)
	if err != nil {
		return nil, err
	}
	if bridge == nil {
		opts.logger.WarnContext(ctx, "no item map, titles resolve by index")
	} else if verr := bridge.Validate(store.ItemUniverse()); verr != nil {
		if opts.strictBridge {
			return nil, verr
		}
		opts.logger.WarnContext(ctx, "item bridge incomplete", "mode", bridge.Mode(), "error", verr)
	}

	return &Engine{
		users:  users,
		items:  items,
		store:  store,
		norms:  norms,
		gen:    gen,
		bridge: bridge,
		opts:   opts,
	}, nil
}

func resolveBridge(opts options, items *ident.Indexer[string]) (*catalog.Bridge, error) {
	switch opts.bridgeMode {
	case catalog.BridgeKeys, "":
		if items == nil {
			return nil, nil
		}
		return catalog.BridgeFromKeys(items.Keys()), nil
	case catalog.BridgeCatalogOrdinal:
		if opts.catalog == nil {
			return nil, ErrNoCatalog
		}
		return catalog.BridgeFromCatalog(opts.catalog), nil
	default:
		return nil, fmt.Errorf("unknown bridge mode %q", opts.bridgeMode)
	}
}

// Users returns the number of users with ratings.
func (e *Engine) Users() int { return e.store.Len() }

// Ratings returns the number of stored ratings.
func (e *Engine) Ratings() int { return e.store.NNZ() }

// Eligible returns the number of users with a non-zero norm.
func (e *Engine) Eligible() int { return e.norms.Len() }

// K returns the neighborhood size.
func (e *Engine) K() int { return e.gen.K() }

// TopN returns the suggestion count.
func (e *Engine) TopN() int { return e.gen.TopN() }

// Store returns the underlying rating store. Callers must not modify it.
func (e *Engine) Store() *sparse.Store { return e.store }

// Bridge returns the item bridge, or nil if item keys are unknown.
func (e *Engine) Bridge() *catalog.Bridge { return e.bridge }

// UserKey returns the source key of a user index.
func (e *Engine) UserKey(idx uint32) string {
	if e.users != nil {
		if k, ok := e.users.Key(idx); ok {
			return k
		}
	}
	return strconv.FormatUint(uint64(idx), 10)
}

// UserIndex resolves a user key to its index.
func (e *Engine) UserIndex(key string) (uint32, error) {
	var (
		idx uint32
		ok  bool
	)
	if e.users != nil {
		idx, ok = e.users.Lookup(key)
	} else if v, err := strconv.ParseUint(key, 10, 32); err == nil {
		idx, ok = uint32(v), true
	}
	if !ok || !e.store.Has(idx) {
		return 0, &ErrUnknownUser{Key: key}
	}
	return idx, nil
}

// Title returns the display title of an item index.
func (e *Engine) Title(item uint32) string {
	if e.opts.catalog == nil {
		return catalog.Placeholder(item)
	}
	return e.opts.catalog.Title(e.bridge, item)
}

// Similarity returns the cosine similarity of two users.
func (e *Engine) Similarity(a, b string) (float64, error) {
	ia, err := e.UserIndex(a)
	if err != nil {
		return 0, err
	}
	ib, err := e.UserIndex(b)
	if err != nil {
		return 0, err
	}
	return e.gen.Similarity().Similarity(ia, ib), nil
}

// Neighbors returns the users selected into key's neighborhood, best first.
func (e *Engine) Neighbors(key string) ([]recommend.Neighbor, error) {
	idx, err := e.UserIndex(key)
	if err != nil {
		return nil, err
	}
	n, err := e.gen.Neighbors(idx)
	if err != nil {
		return nil, &ErrUnknownUser{Key: key, cause: err}
	}
	return n, nil
}

// Recommend returns up to TopN suggestions for a user, best first.
//
// A user without suggestions yields an empty result and no error. A key
// without ratings yields *ErrUnknownUser.
func (e *Engine) Recommend(ctx context.Context, key string) ([]Recommendation, error) {
	idx, err := e.UserIndex(key)
	if err != nil {
		e.opts.logger.LogRecommend(ctx, key, 0, err)
		e.opts.metricsCollector.RecordRecommend(0, 0, err)
		return nil, err
	}
	return e.recommend(ctx, idx, key)
}

func (e *Engine) recommend(ctx context.Context, idx uint32, key string) ([]Recommendation, error) {
	start := time.Now()

	suggestions, err := e.gen.Recommend(idx)
	if err != nil {
		if errors.Is(err, recommend.ErrUnknownUser) {
			err = &ErrUnknownUser{Key: key, cause: err}
		}
		e.opts.logger.LogRecommend(ctx, key, 0, err)
		e.opts.metricsCollector.RecordRecommend(0, time.Since(start), err)
		return nil, err
	}

	out := make([]Recommendation, len(suggestions))
	for i, s := range suggestions {
		itemKey, _ := e.bridge.Key(s.Item)
		out[i] = Recommendation{
			Item:     s.Item,
			ItemKey:  itemKey,
			Title:    e.Title(s.Item),
			Score:    e.opts.normalizer.Normalize(s.Score),
			RawScore: s.Score,
		}
	}

	e.opts.logger.LogRecommend(ctx, key, len(out), nil)
	e.opts.metricsCollector.RecordRecommend(len(out), time.Since(start), nil)
	return out, nil
}

// RecommendAll computes suggestions for every user and passes one row per
// suggestion to fn, in ascending user-index order.
//
// Users are processed by up to WithWorkers goroutines. fn is always called
// from the calling goroutine. Cancellation is honored between users.
func (e *Engine) RecommendAll(ctx context.Context, fn func(output.Row) error) error {
	users := e.store.Users()
	total := len(users)
	batch := e.opts.workers * usersPerWorker
	results := make([][]Recommendation, batch)
	progress := rate.Sometimes{Interval: e.opts.progressEvery}

	rows := 0
	for lo := 0; lo < total; lo += batch {
		if err := ctx.Err(); err != nil {
			return err
		}

		hi := min(lo+batch, total)
		chunk := users[lo:hi]

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.opts.workers)
		for i, u := range chunk {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				recs, err := e.recommend(gctx, u, e.UserKey(u))
				if err != nil {
					return err
				}
				results[i] = recs
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, u := range chunk {
			key := e.UserKey(u)
			for _, r := range results[i] {
				if err := fn(output.Row{
					User:      key,
					ItemIndex: r.Item,
					ItemKey:   r.ItemKey,
					Title:     r.Title,
					Score:     r.Score,
					RawScore:  r.RawScore,
				}); err != nil {
					return err
				}
				rows++
			}
			results[i] = nil
		}

		if e.opts.progressEvery > 0 {
			progress.Do(func() { e.opts.logger.LogProgress(ctx, hi, total, rows) })
		}
	}

	e.opts.logger.InfoContext(ctx, "recommendations completed", "users", total, "rows", rows)
	return nil
}

// WriteRows runs RecommendAll into w and flushes it.
func (e *Engine) WriteRows(ctx context.Context, w output.Writer) error {
	if err := e.RecommendAll(ctx, w.Write); err != nil {
		return err
	}
	return w.Flush()
}

// EncodeLIBSVM writes the rating store in LIBSVM form and returns the number
// of lines written.
func (e *Engine) EncodeLIBSVM(ctx context.Context, w io.Writer) (int, error) {
	n, err := libsvm.Encode(w, e.store)
	e.opts.logger.LogEncode(ctx, "libsvm", n, err)
	return n, err
}

// WriteUserMap writes the user index map.
func (e *Engine) WriteUserMap(ctx context.Context, w io.Writer) error {
	return e.writeMap(ctx, "users", e.users, w)
}

// WriteItemMap writes the item index map.
func (e *Engine) WriteItemMap(ctx context.Context, w io.Writer) error {
	return e.writeMap(ctx, "items", e.items, w)
}

func (e *Engine) writeMap(ctx context.Context, name string, x *ident.Indexer[string], w io.Writer) error {
	if x == nil {
		return fmt.Errorf("%s map: %w", name, ErrNotFound)
	}
	err := ident.WriteMap(w, x)
	e.opts.logger.LogEncode(ctx, name, x.Len(), err)
	return err
}
