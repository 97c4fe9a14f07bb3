package recgo

import (
	"log/slog"
	"time"

	"github.com/hupe1980/recgo/catalog"
	"github.com/hupe1980/recgo/recommend"
)

type options struct {
	neighbors        int
	topN             int
	workers          int
	prefilter        bool
	normalizer       recommend.Normalizer
	catalog          *catalog.Catalog
	bridgeMode       catalog.BridgeMode
	strictBridge     bool
	metricsCollector MetricsCollector
	logger           *Logger
	progressEvery    time.Duration
}

// Option configures Engine construction.
type Option func(*options)

// WithNeighbors sets the neighborhood size K. Defaults to 10.
func WithNeighbors(k int) Option {
	return func(o *options) {
		o.neighbors = k
	}
}

// WithTopN sets the maximum number of suggestions per user. Defaults to 5.
func WithTopN(n int) Option {
	return func(o *options) {
		o.topN = n
	}
}

// WithWorkers sets how many users RecommendAll processes concurrently.
//
// Output order does not depend on the worker count. Defaults to 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithEligiblePrefilter restricts neighbor candidates to users with a
// non-zero norm. Results are identical either way. Enabled by default.
func WithEligiblePrefilter(enabled bool) Option {
	return func(o *options) {
		o.prefilter = enabled
	}
}

// WithNormalizer replaces the display score transform. Build fails with
// ErrInvalidNormalizer if n.Scale <= 0 or n.Min > n.Max.
func WithNormalizer(n recommend.Normalizer) Option {
	return func(o *options) {
		o.normalizer = n
	}
}

// WithCatalog attaches item titles used for output rows.
//
// Example:
//
//	c := catalog.New()
//	c.Add("034545104X", "Flesh Tones: A Novel")
//	e, _ := recgo.Build(ctx, src, recgo.WithCatalog(c))
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithBridgeMode selects how item indices resolve to item keys.
// Defaults to catalog.BridgeKeys.
func WithBridgeMode(m catalog.BridgeMode) Option {
	return func(o *options) {
		o.bridgeMode = m
	}
}

// WithStrictBridge makes an incomplete item bridge a build error instead of
// a logged warning.
func WithStrictBridge(strict bool) Option {
	return func(o *options) {
		o.strictBridge = strict
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &recgo.BasicMetricsCollector{}
//	e, _ := recgo.Build(ctx, src, recgo.WithMetricsCollector(metrics))
//	// ... use e ...
//	stats := metrics.GetStats()
//	fmt.Printf("Users: %d, Avg latency: %dns\n", stats.Users, stats.RecommendAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := recgo.NewJSONLogger(slog.LevelInfo)
//	e, _ := recgo.Build(ctx, src, recgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithProgressInterval sets the minimum interval between RecommendAll
// progress log lines. Zero disables progress logging.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressEvery = d
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		neighbors:        recommend.DefaultNeighbors,
		topN:             recommend.DefaultTopN,
		workers:          1,
		prefilter:        true,
		normalizer:       recommend.DefaultNormalizer,
		bridgeMode:       catalog.BridgeKeys,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		progressEvery:    5 * time.Second,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
