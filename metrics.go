package recgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metric/prom package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordBuild is called once after an engine has been built.
	// users, items and ratings describe the resulting store.
	RecordBuild(users, items, ratings int, duration time.Duration, err error)

	// RecordRecommend is called after each per-user recommendation.
	// suggestions is the number of items returned.
	RecordRecommend(suggestions int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRecommend(int, time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount          atomic.Int64
	BuildErrors         atomic.Int64
	BuildTotalNanos     atomic.Int64
	Users               atomic.Int64
	Items               atomic.Int64
	Ratings             atomic.Int64
	RecommendCount      atomic.Int64
	RecommendErrors     atomic.Int64
	RecommendEmpty      atomic.Int64
	RecommendTotalNanos atomic.Int64
	Suggestions         atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(users, items, ratings int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.Users.Store(int64(users))
	b.Items.Store(int64(items))
	b.Ratings.Store(int64(ratings))
}

// RecordRecommend implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRecommend(suggestions int, duration time.Duration, err error) {
	b.RecommendCount.Add(1)
	b.RecommendTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RecommendErrors.Add(1)
		return
	}
	if suggestions == 0 {
		b.RecommendEmpty.Add(1)
	}
	b.Suggestions.Add(int64(suggestions))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:        b.BuildCount.Load(),
		BuildErrors:       b.BuildErrors.Load(),
		Users:             b.Users.Load(),
		Items:             b.Items.Load(),
		Ratings:           b.Ratings.Load(),
		RecommendCount:    b.RecommendCount.Load(),
		RecommendErrors:   b.RecommendErrors.Load(),
		RecommendEmpty:    b.RecommendEmpty.Load(),
		RecommendAvgNanos: b.getAvgRecommendNanos(),
		Suggestions:       b.Suggestions.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRecommendNanos() int64 {
	count := b.RecommendCount.Load()
	if count == 0 {
		return 0
	}
	return b.RecommendTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount        int64
	BuildErrors       int64
	Users             int64
	Items             int64
	Ratings           int64
	RecommendCount    int64
	RecommendErrors   int64
	RecommendEmpty    int64
	RecommendAvgNanos int64
	Suggestions       int64
}
