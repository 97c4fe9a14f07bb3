package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/recgo"
	"github.com/hupe1980/recgo/blobstore"
	miniostore "github.com/hupe1980/recgo/blobstore/minio"
	s3store "github.com/hupe1980/recgo/blobstore/s3"
	"github.com/hupe1980/recgo/catalog"
	"github.com/hupe1980/recgo/codec"
	"github.com/hupe1980/recgo/config"
	"github.com/hupe1980/recgo/ident"
	"github.com/hupe1980/recgo/ingest"
	"github.com/hupe1980/recgo/libsvm"
	"github.com/hupe1980/recgo/metric/prom"
	"github.com/hupe1980/recgo/output"
	"github.com/hupe1980/recgo/recommend"
)

type app struct {
	cfg      *config.Config
	store    blobstore.BlobStore
	logger   *recgo.Logger
	stderr   io.Writer
	registry *prometheus.Registry
	metrics  recgo.MetricsCollector
}

func newApp(ctx context.Context, cfg *config.Config, stderr io.Writer) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  newLogger(cfg.Logging, stderr),
		stderr:  stderr,
		metrics: recgo.NoopMetricsCollector{},
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	a.store = store

	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		c, err := prom.New(a.registry, cfg.Metrics.Namespace)
		if err != nil {
			return nil, err
		}
		a.metrics = c
	}

	return a, nil
}

func newLogger(cfg config.LoggingConfig, w io.Writer) *recgo.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return recgo.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return recgo.NewLogger(slog.NewTextHandler(w, opts))
}

func openStore(ctx context.Context, cfg config.StoreConfig) (blobstore.BlobStore, error) {
	switch cfg.Backend {
	case "s3":
		var optFns []func(*awsconfig.LoadOptions) error
		if cfg.Region != "" {
			optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
		}
		return s3store.NewFromDefaultConfig(ctx, cfg.Bucket, cfg.Prefix, optFns...)
	case "minio":
		return miniostore.Dial(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Secure, cfg.Bucket, cfg.Prefix)
	default:
		return blobstore.NewLocalStore(cfg.Root), nil
	}
}

func (a *app) engineOptions(cat *catalog.Catalog) []recgo.Option {
	rc := a.cfg.Recommend
	workers := rc.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	return []recgo.Option{
		recgo.WithNeighbors(rc.Neighbors),
		recgo.WithTopN(rc.TopN),
		recgo.WithWorkers(workers),
		recgo.WithEligiblePrefilter(rc.Prefilter),
		recgo.WithNormalizer(recommend.Normalizer{Scale: rc.Scale, Min: rc.MinScore, Max: rc.MaxScore}),
		recgo.WithBridgeMode(catalog.BridgeMode(rc.BridgeMode)),
		recgo.WithStrictBridge(rc.StrictBridge),
		recgo.WithCatalog(cat),
		recgo.WithLogger(a.logger),
		recgo.WithMetricsCollector(a.metrics),
	}
}

func (a *app) dialect() ingest.Dialect {
	return ingest.Dialect{Comma: a.cfg.Input.Comma(), SkipHeader: a.cfg.Input.Header}
}

// encode writes the LIBSVM store and index maps.
func (a *app) encode(ctx context.Context) error {
	// Encoding never resolves titles.
	e, err := a.buildFromRatings(ctx, nil, recgo.WithBridgeMode(catalog.BridgeKeys))
	if err != nil {
		return err
	}

	art := a.cfg.Artifacts
	if err := a.writeArtifact(ctx, art.LIBSVM, func(w io.Writer) error {
		_, err := e.EncodeLIBSVM(ctx, w)
		return err
	}); err != nil {
		return err
	}
	if art.UserMap != "" {
		if err := a.writeArtifact(ctx, art.UserMap, func(w io.Writer) error {
			return e.WriteUserMap(ctx, w)
		}); err != nil {
			return err
		}
	}
	if art.ItemMap != "" {
		if err := a.writeArtifact(ctx, art.ItemMap, func(w io.Writer) error {
			return e.WriteItemMap(ctx, w)
		}); err != nil {
			return err
		}
	}
	return nil
}

// recommend rebuilds the engine from encode artifacts.
func (a *app) recommend(ctx context.Context) error {
	art := a.cfg.Artifacts

	r, err := blobstore.OpenStream(ctx, a.store, art.LIBSVM)
	if err != nil {
		return fmt.Errorf("open %s: %w", art.LIBSVM, err)
	}
	store, err := libsvm.Read(r)
	_ = r.Close()
	if err != nil {
		return fmt.Errorf("read %s: %w", art.LIBSVM, err)
	}

	users, err := a.readMap(ctx, art.UserMap)
	if err != nil {
		return err
	}
	items, err := a.readMap(ctx, art.ItemMap)
	if err != nil {
		return err
	}
	cat, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}

	e, err := recgo.FromStore(ctx, store, users, items, a.engineOptions(cat)...)
	if err != nil {
		return err
	}
	return a.writeOutput(ctx, e)
}

// run goes straight from raw ratings to suggestions.
func (a *app) run(ctx context.Context) error {
	cat, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}
	e, err := a.buildFromRatings(ctx, cat)
	if err != nil {
		return err
	}
	return a.writeOutput(ctx, e)
}

func (a *app) buildFromRatings(ctx context.Context, cat *catalog.Catalog, extra ...recgo.Option) (*recgo.Engine, error) {
	name := a.cfg.Input.Ratings
	if name == "" {
		return nil, errors.New("input.ratings is not set")
	}
	r, err := blobstore.OpenStream(ctx, a.store, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer r.Close()

	return recgo.Build(ctx, ingest.NewCSVRatings(r, a.dialect()), append(a.engineOptions(cat), extra...)...)
}

// readMap loads an index map. A missing or unset map yields nil.
func (a *app) readMap(ctx context.Context, name string) (*ident.Indexer[string], error) {
	if name == "" {
		return nil, nil
	}
	r, err := blobstore.OpenStream(ctx, a.store, name)
	if errors.Is(err, blobstore.ErrNotFound) {
		a.logger.WarnContext(ctx, "index map not found", "name", name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer r.Close()

	x, err := ident.ReadMap(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return x, nil
}

// loadCatalog reads the title catalog. A missing or unset catalog yields nil
// and every title falls back to a placeholder.
func (a *app) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	name := a.cfg.Input.Catalog
	if name == "" {
		return nil, nil
	}
	r, err := blobstore.OpenStream(ctx, a.store, name)
	if errors.Is(err, blobstore.ErrNotFound) {
		a.logger.WarnContext(ctx, "catalog not found, using placeholder titles", "name", name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer r.Close()

	cat := catalog.New()
	src := ingest.NewCSVCatalog(r, a.dialect())
	if err := src.Each(ctx, func(t ingest.Title) error {
		cat.AddAt(t.Ordinal, t.Item, t.Title)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	stats := src.Stats()
	a.logger.InfoContext(ctx, "catalog loaded",
		"name", name,
		"records", stats.Records,
		"skipped", stats.Skipped,
	)
	return cat, nil
}

func (a *app) writeOutput(ctx context.Context, e *recgo.Engine) error {
	oc := a.cfg.Output

	format := output.Format(oc.Format)
	if format == "auto" {
		format = output.FormatFromName(oc.Path)
	}
	c, ok := codec.ByName(oc.Codec)
	if !ok {
		return fmt.Errorf("unknown codec %q", oc.Codec)
	}

	return a.writeArtifact(ctx, oc.Path, func(w io.Writer) error {
		ow, err := output.NewWriter(w, format, c)
		if err != nil {
			return err
		}
		return e.WriteRows(ctx, ow)
	})
}

func (a *app) writeArtifact(ctx context.Context, name string, fn func(io.Writer) error) error {
	w, err := blobstore.CreateStream(ctx, a.store, name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := fn(w); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	return nil
}

// finish dumps collected metrics.
func (a *app) finish(ctx context.Context) error {
	if a.registry == nil {
		return nil
	}
	if a.cfg.Metrics.Path == "" {
		return prom.WriteText(a.stderr, a.registry)
	}
	return a.writeArtifact(ctx, a.cfg.Metrics.Path, func(w io.Writer) error {
		return prom.WriteText(w, a.registry)
	})
}
