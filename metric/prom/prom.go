// Package prom exports recgo metrics to Prometheus.
package prom

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const (
	resultOK    = "ok"
	resultEmpty = "empty"
	resultError = "error"
)

// Collector implements recgo.MetricsCollector.
type Collector struct {
	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	users         prometheus.Gauge
	items         prometheus.Gauge
	ratings       prometheus.Gauge
	recommends    *prometheus.CounterVec
	recommendDur  prometheus.Histogram
	suggestions   prometheus.Counter
}

// New creates a Collector and registers its metrics with reg.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Engine builds by result.",
		}, []string{"result"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Time spent building an engine.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		users: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "users",
			Help:      "Users with at least one rating.",
		}),
		items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "items",
			Help:      "Distinct rated items.",
		}),
		ratings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ratings",
			Help:      "Stored ratings.",
		}),
		recommends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Per-user recommendation runs by result.",
		}, []string{"result"}),
		recommendDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_duration_seconds",
			Help:      "Time spent recommending for one user.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		suggestions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_total",
			Help:      "Suggestions returned.",
		}),
	}

	for _, m := range []prometheus.Collector{
		c.builds, c.buildDuration, c.users, c.items, c.ratings,
		c.recommends, c.recommendDur, c.suggestions,
	} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("prom: register: %w", err)
		}
	}

	return c, nil
}

// RecordBuild implements recgo.MetricsCollector.
func (c *Collector) RecordBuild(users, items, ratings int, duration time.Duration, err error) {
	c.buildDuration.Observe(duration.Seconds())
	if err != nil {
		c.builds.WithLabelValues(resultError).Inc()
		return
	}
	c.builds.WithLabelValues(resultOK).Inc()
	c.users.Set(float64(users))
	c.items.Set(float64(items))
	c.ratings.Set(float64(ratings))
}

// RecordRecommend implements recgo.MetricsCollector.
func (c *Collector) RecordRecommend(suggestions int, duration time.Duration, err error) {
	c.recommendDur.Observe(duration.Seconds())
	switch {
	case err != nil:
		c.recommends.WithLabelValues(resultError).Inc()
	case suggestions == 0:
		c.recommends.WithLabelValues(resultEmpty).Inc()
	default:
		c.recommends.WithLabelValues(resultOK).Inc()
	}
	c.suggestions.Add(float64(suggestions))
}

// WriteText writes every metric family gathered from g in the Prometheus
// text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

// Value returns the current value of a counter or gauge family with the
// given labels, or false if no such sample exists.
func Value(g prometheus.Gatherer, name string, labels map[string]string) (float64, bool) {
	families, err := g.Gather()
	if err != nil {
		return 0, false
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if !matchLabels(m, labels) {
				continue
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				return m.GetCounter().GetValue(), true
			case dto.MetricType_GAUGE:
				return m.GetGauge().GetValue(), true
			case dto.MetricType_HISTOGRAM:
				return float64(m.GetHistogram().GetSampleCount()), true
			}
		}
	}
	return 0, false
}

func matchLabels(m *dto.Metric, want map[string]string) bool {
	if len(m.GetLabel()) != len(want) {
		return false
	}
	for _, lp := range m.GetLabel() {
		if want[lp.GetName()] != lp.GetValue() {
			return false
		}
	}
	return true
}
