package recommend

import (
	"fmt"

	"github.com/hupe1980/recgo/distance"
	"github.com/hupe1980/recgo/internal/topk"
	"github.com/hupe1980/recgo/sparse"
)

// Neighbor is a user selected into another user's top-K similarity ranking.
type Neighbor struct {
	User       uint32
	Similarity float64
}

// Suggestion is an item the target has not rated with its raw aggregated
// score.
type Suggestion struct {
	Item  uint32
	Score float64
}

// Generator produces suggestions from a finished store and norm cache.
//
// Generator only reads shared state and is safe for concurrent use.
type Generator struct {
	store      *sparse.Store
	sim        *distance.Cosine
	candidates []uint32
	neighbors  int
	topN       int
}

// New creates a Generator over store and norms.
func New(store *sparse.Store, norms *distance.Norms, optFns ...Option) (*Generator, error) {
	opts := options{
		neighbors: DefaultNeighbors,
		topN:      DefaultTopN,
		prefilter: true,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.neighbors <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, opts.neighbors)
	}
	if opts.topN <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTopN, opts.topN)
	}

	candidates := store.Users()
	if opts.prefilter {
		candidates = norms.Users()
	}

	return &Generator{
		store:      store,
		sim:        distance.NewCosine(store, norms),
		candidates: candidates,
		neighbors:  opts.neighbors,
		topN:       opts.topN,
	}, nil
}

// K returns the configured neighborhood size.
func (g *Generator) K() int { return g.neighbors }

// TopN returns the configured suggestion count.
func (g *Generator) TopN() int { return g.topN }

// Similarity exposes the underlying similarity engine.
func (g *Generator) Similarity() *distance.Cosine { return g.sim }

// Neighbors returns the top-K users most similar to target, best first.
// Only users with strictly positive similarity qualify.
func (g *Generator) Neighbors(target uint32) ([]Neighbor, error) {
	if !g.store.Has(target) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUser, target)
	}
	return g.neighborsOf(target), nil
}

func (g *Generator) neighborsOf(target uint32) []Neighbor {
	h := topk.New(g.neighbors)
	for _, other := range g.candidates {
		if other == target {
			continue
		}
		if s := g.sim.Similarity(target, other); s > 0 {
			h.Push(topk.Item{ID: other, Score: s})
		}
	}

	ranked := h.Sorted()
	if len(ranked) == 0 {
		return nil
	}
	out := make([]Neighbor, len(ranked))
	for i, it := range ranked {
		out[i] = Neighbor{User: it.ID, Similarity: it.Score}
	}
	return out
}

// Recommend returns up to TopN suggestions for target, best first.
//
// An empty result is a valid outcome: the target has no neighbors, or every
// item its neighbors rated is already rated by the target.
func (g *Generator) Recommend(target uint32) ([]Suggestion, error) {
	if !g.store.Has(target) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUser, target)
	}

	neighbors := g.neighborsOf(target)
	if len(neighbors) == 0 {
		return nil, nil
	}

	seen := g.store.Items(target)
	scores := make(map[uint32]float64)
	for _, n := range neighbors {
		for item, rating := range g.store.Get(n.User) {
			if seen.Contains(item) {
				continue
			}
			scores[item] += rating * n.Similarity
		}
	}
	if len(scores) == 0 {
		return nil, nil
	}

	h := topk.New(g.topN)
	for item, score := range scores {
		h.Push(topk.Item{ID: item, Score: score})
	}

	ranked := h.Sorted()
	out := make([]Suggestion, len(ranked))
	for i, it := range ranked {
		out[i] = Suggestion{Item: it.ID, Score: it.Score}
	}
	return out, nil
}
