package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	ScreenshotsTotal *prometheus.CounterVec
	OCRDuration      prometheus.Histogram
	OCRFailures      prometheus.Counter

	// Resolution metrics
	ResolutionsTotal   *prometheus.CounterVec
	ResolutionDuration *prometheus.HistogramVec

	// Session metrics
	SessionsActive prometheus.Gauge

	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screensense_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screensense_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ScreenshotsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screensense_screenshots_total",
				Help: "Total number of processed screenshots",
			},
			[]string{"status"},
		),
		OCRDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "screensense_ocr_duration_seconds",
				Help:    "OCR recognition duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
		),
		OCRFailures: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "screensense_ocr_failures_total",
				Help: "Total number of degraded OCR passes",
			},
		),

		ResolutionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "screensense_url_resolutions_total",
				Help: "Total number of URL resolutions",
			},
			[]string{"kind", "outcome"},
		),
		ResolutionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "screensense_url_resolution_duration_seconds",
				Help:    "URL resolution duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"kind"},
		),

		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "screensense_sessions_active",
				Help: "Number of sessions currently held in memory",
			},
		),
	}
}

// RecordHTTPRequest records one served request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordScreenshot records one pipeline pass
func (m *Metrics) RecordScreenshot(status string) {
	m.ScreenshotsTotal.WithLabelValues(status).Inc()
}

// RecordOCR records one recognition pass
func (m *Metrics) RecordOCR(duration time.Duration, failed bool) {
	m.OCRDuration.Observe(duration.Seconds())
	if failed {
		m.OCRFailures.Inc()
	}
}

// RecordResolution records one URL resolution
func (m *Metrics) RecordResolution(kind string, success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	m.ResolutionsTotal.WithLabelValues(kind, outcome).Inc()
	m.ResolutionDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// Uptime returns time since metrics creation
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.startTime)
}
