package recgo

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/catalog"
	"github.com/hupe1980/recgo/ident"
	"github.com/hupe1980/recgo/ingest"
	"github.com/hupe1980/recgo/libsvm"
	"github.com/hupe1980/recgo/output"
	"github.com/hupe1980/recgo/recommend"
	"github.com/hupe1980/recgo/testutil"
)

func workedExample() ingest.Ratings {
	return ingest.Ratings{
		{User: "A", Item: "item1", Value: 5},
		{User: "A", Item: "item2", Value: 3},
		{User: "B", Item: "item1", Value: 4},
		{User: "B", Item: "item2", Value: 4},
		{User: "B", Item: "item3", Value: 5},
		{User: "C", Item: "item1", Value: 1},
	}
}

func collectRows(t *testing.T, e *Engine) []output.Row {
	t.Helper()

	var rows []output.Row
	require.NoError(t, e.RecommendAll(context.Background(), func(r output.Row) error {
		rows = append(rows, r)
		return nil
	}))
	return rows
}

func TestEngine(t *testing.T) {
	ctx := context.Background()

	c := catalog.New()
	c.Add("item3", "The Third Book")

	e, err := Build(ctx, workedExample(), WithCatalog(c))
	require.NoError(t, err)

	assert.Equal(t, 3, e.Users())
	assert.Equal(t, 6, e.Ratings())
	assert.Equal(t, 3, e.Eligible())
	assert.Equal(t, 10, e.K())
	assert.Equal(t, 5, e.TopN())

	t.Run("Similarity", func(t *testing.T) {
		ac, err := e.Similarity("A", "C")
		require.NoError(t, err)
		assert.InDelta(t, 0.857, ac, 1e-3)

		ca, err := e.Similarity("C", "A")
		require.NoError(t, err)
		assert.Equal(t, ac, ca)
	})

	t.Run("Recommend", func(t *testing.T) {
		recs, err := e.Recommend(ctx, "A")
		require.NoError(t, err)
		require.Len(t, recs, 1)

		sim, err := e.Similarity("A", "B")
		require.NoError(t, err)

		assert.Equal(t, uint32(3), recs[0].Item)
		assert.Equal(t, "item3", recs[0].ItemKey)
		assert.Equal(t, "The Third Book", recs[0].Title)
		assert.InDelta(t, 5*sim, recs[0].RawScore, 1e-12)
		assert.Equal(t, 10.0, recs[0].Score)
	})

	t.Run("Neighbors", func(t *testing.T) {
		n, err := e.Neighbors("A")
		require.NoError(t, err)
		// B also rated item3, which lowers its similarity to A below C's.
		require.Len(t, n, 2)
		assert.Equal(t, uint32(3), n[0].User)
		assert.Equal(t, uint32(2), n[1].User)
	})

	t.Run("NoSuggestionsIsNotAnError", func(t *testing.T) {
		// B already rated everything its neighbors rated.
		recs, err := e.Recommend(ctx, "B")
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := e.Recommend(ctx, "Z")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))

		var uu *ErrUnknownUser
		require.ErrorAs(t, err, &uu)
		assert.Equal(t, "Z", uu.Key)

		_, err = e.Similarity("A", "Z")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = e.Neighbors("Z")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PlaceholderTitle", func(t *testing.T) {
		assert.Equal(t, "Book_1", e.Title(1))
	})
}

func TestEngine_EmptyNeighborhood(t *testing.T) {
	src := append(workedExample(), ingest.Rating{User: "D", Item: "lonely", Value: 4})

	e, err := Build(context.Background(), src)
	require.NoError(t, err)

	recs, err := e.Recommend(context.Background(), "D")
	require.NoError(t, err)
	assert.Empty(t, recs)

	n, err := e.Neighbors("D")
	require.NoError(t, err)
	assert.Empty(t, n)
}

func TestEngine_RatedItemsNeverSuggested(t *testing.T) {
	ratings := testutil.NewRNG(11).Ratings(60, 30, 8)
	e, err := Build(context.Background(), ingest.Ratings(ratings))
	require.NoError(t, err)

	rated := map[string]map[string]bool{}
	for _, r := range ratings {
		if rated[r.User] == nil {
			rated[r.User] = map[string]bool{}
		}
		rated[r.User][r.Item] = true
	}

	for _, row := range collectRows(t, e) {
		assert.False(t, rated[row.User][row.ItemKey], "%s got rated item %s", row.User, row.ItemKey)
		assert.GreaterOrEqual(t, row.Score, 1.0)
		assert.LessOrEqual(t, row.Score, 10.0)
	}
}

func TestEngine_RecommendAllIsOrderedAndWorkerIndependent(t *testing.T) {
	ratings := ingest.Ratings(testutil.NewRNG(5).Ratings(300, 60, 12))

	serial, err := Build(context.Background(), ratings)
	require.NoError(t, err)
	parallel, err := Build(context.Background(), ratings, WithWorkers(8))
	require.NoError(t, err)

	want := collectRows(t, serial)
	got := collectRows(t, parallel)
	require.NotEmpty(t, want)
	assert.Equal(t, want, got)

	last := uint32(0)
	for _, r := range want {
		idx, err := serial.UserIndex(r.User)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, idx, last)
		last = idx
	}
}

func TestEngine_RecommendAllStops(t *testing.T) {
	e, err := Build(context.Background(), ingest.Ratings(testutil.NewRNG(1).Ratings(50, 20, 6)))
	require.NoError(t, err)

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := e.RecommendAll(ctx, func(output.Row) error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("CallbackError", func(t *testing.T) {
		boom := errors.New("boom")
		err := e.RecommendAll(context.Background(), func(output.Row) error { return boom })
		assert.ErrorIs(t, err, boom)
	})
}

func TestEngine_InvalidOptions(t *testing.T) {
	ctx := context.Background()

	_, err := Build(ctx, workedExample(), WithNeighbors(0))
	assert.ErrorIs(t, err, ErrInvalidK)
	assert.ErrorIs(t, err, recommend.ErrInvalidK)

	_, err = Build(ctx, workedExample(), WithTopN(-1))
	assert.ErrorIs(t, err, ErrInvalidTopN)

	_, err = Build(ctx, workedExample(), WithWorkers(0))
	assert.ErrorIs(t, err, ErrInvalidWorkers)

	_, err = Build(ctx, workedExample(), WithNormalizer(recommend.Normalizer{}))
	assert.ErrorIs(t, err, ErrInvalidNormalizer)
	assert.ErrorIs(t, err, recommend.ErrInvalidNormalizer)

	_, err = Build(ctx, workedExample(), WithNormalizer(recommend.Normalizer{Scale: 5, Min: 10, Max: 1}))
	assert.ErrorIs(t, err, ErrInvalidNormalizer)

	_, err = Build(ctx, workedExample(), WithBridgeMode(catalog.BridgeCatalogOrdinal))
	assert.ErrorIs(t, err, ErrNoCatalog)

	_, err = Build(ctx, workedExample(), WithBridgeMode("bogus"))
	assert.Error(t, err)
}

func TestEngine_BridgeModes(t *testing.T) {
	ctx := context.Background()

	t.Run("CatalogOrdinalIncomplete", func(t *testing.T) {
		c := catalog.New()
		c.Add("item1", "One")

		_, err := Build(ctx, workedExample(),
			WithCatalog(c),
			WithBridgeMode(catalog.BridgeCatalogOrdinal),
			WithStrictBridge(true),
		)
		var ib *catalog.ErrIncompleteBridge
		require.ErrorAs(t, err, &ib)
		assert.Equal(t, []uint32{2, 3}, ib.Missing)

		e, err := Build(ctx, workedExample(),
			WithCatalog(c),
			WithBridgeMode(catalog.BridgeCatalogOrdinal),
		)
		require.NoError(t, err)
		assert.Equal(t, catalog.BridgeCatalogOrdinal, e.Bridge().Mode())
	})

	t.Run("CatalogOrdinalMisaligned", func(t *testing.T) {
		// Catalog order differs from rating-stream order, so the positional
		// bridge resolves item 3 to the wrong title.
		c := catalog.New()
		c.Add("item3", "Three")
		c.Add("item2", "Two")
		c.Add("item1", "One")

		positional, err := Build(ctx, workedExample(), WithCatalog(c), WithBridgeMode(catalog.BridgeCatalogOrdinal))
		require.NoError(t, err)
		keyed, err := Build(ctx, workedExample(), WithCatalog(c))
		require.NoError(t, err)

		assert.Equal(t, "One", positional.Title(3))
		assert.Equal(t, "Three", keyed.Title(3))
	})
}

func TestEngine_EncodeRoundTrip(t *testing.T) {
	ctx := context.Background()
	ratings := ingest.Ratings(testutil.NewRNG(77).Ratings(120, 40, 9))

	e, err := Build(ctx, ratings)
	require.NoError(t, err)

	var svm, users, items bytes.Buffer
	n, err := e.EncodeLIBSVM(ctx, &svm)
	require.NoError(t, err)
	assert.Equal(t, 120, n)
	require.NoError(t, e.WriteUserMap(ctx, &users))
	require.NoError(t, e.WriteItemMap(ctx, &items))

	store, err := libsvm.Read(&svm)
	require.NoError(t, err)
	userMap, err := ident.ReadMap(&users)
	require.NoError(t, err)
	itemMap, err := ident.ReadMap(&items)
	require.NoError(t, err)

	decoded, err := FromStore(ctx, store, userMap, itemMap)
	require.NoError(t, err)

	assert.Equal(t, collectRows(t, e), collectRows(t, decoded))
}

func TestEngine_FromStoreWithoutMaps(t *testing.T) {
	ctx := context.Background()

	e, err := Build(ctx, workedExample())
	require.NoError(t, err)

	var svm bytes.Buffer
	_, err = e.EncodeLIBSVM(ctx, &svm)
	require.NoError(t, err)

	store, err := libsvm.Read(&svm)
	require.NoError(t, err)

	bare, err := FromStore(ctx, store, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, bare.Bridge())

	recs, err := bare.Recommend(ctx, "1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, uint32(3), recs[0].Item)
	assert.Equal(t, "Book_3", recs[0].Title)

	_, err = bare.Recommend(ctx, "not-a-number")
	assert.ErrorIs(t, err, ErrNotFound)

	err = bare.WriteUserMap(ctx, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEngine_WriteRows(t *testing.T) {
	ctx := context.Background()

	c := catalog.New()
	c.Add("item3", `The "Third" Book`)

	e, err := Build(ctx, workedExample(), WithCatalog(c))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.WriteRows(ctx, output.NewCSVWriter(&buf)))

	assert.Equal(t, output.Header+"\n"+
		`A,3,"The ""Third"" Book",10.0`+"\n"+
		`C,2,"Book_2",10.0`+"\n"+
		`C,3,"The ""Third"" Book",10.0`+"\n", buf.String())
}

func TestEngine_Metrics(t *testing.T) {
	ctx := context.Background()
	mc := &BasicMetricsCollector{}

	e, err := Build(ctx, workedExample(), WithMetricsCollector(mc))
	require.NoError(t, err)

	_, _ = e.Recommend(ctx, "A")
	_, _ = e.Recommend(ctx, "B")
	_, _ = e.Recommend(ctx, "nobody")

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, int64(3), stats.Users)
	assert.Equal(t, int64(3), stats.Items)
	assert.Equal(t, int64(6), stats.Ratings)
	assert.Equal(t, int64(3), stats.RecommendCount)
	assert.Equal(t, int64(1), stats.RecommendErrors)
	assert.Equal(t, int64(1), stats.RecommendEmpty)
	assert.Equal(t, int64(1), stats.Suggestions)
}

func TestEngine_BuildSourceError(t *testing.T) {
	mc := &BasicMetricsCollector{}
	src := ingest.NewCSVRatings(failingReader{}, ingest.DefaultDialect)

	_, err := Build(context.Background(), src, WithMetricsCollector(mc))
	require.Error(t, err)
	assert.Equal(t, int64(1), mc.GetStats().BuildErrors)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }
