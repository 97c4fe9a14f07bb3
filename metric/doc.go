// Package metric holds metric exporters for recgo.
//
// Subpackage prom implements recgo.MetricsCollector on top of the Prometheus
// client library.
package metric
