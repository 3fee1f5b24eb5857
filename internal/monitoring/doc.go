// Package monitoring exposes Prometheus metrics for the screenshot
// pipeline: per-stage counters and durations, plus HTTP request metrics
// collected through a Gin middleware.
package monitoring
