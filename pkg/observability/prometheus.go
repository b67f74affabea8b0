package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks exports pipeline and cache events as Prometheus metrics.
type PrometheusHooks struct {
	rendersTotal   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	noticesTotal   *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	cacheSetBytes  *prometheus.HistogramVec
}

// NewPrometheusHooks registers the qrforge metrics with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		rendersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrforge_renders_total",
				Help: "Total number of render calls",
			},
			[]string{"format", "cache_hit", "status"},
		),
		renderDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qrforge_render_duration_seconds",
				Help:    "Render call duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"format"},
		),
		noticesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrforge_notices_total",
				Help: "Total number of non-fatal render notices",
			},
			[]string{"code"},
		),
		cacheEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qrforge_cache_events_total",
				Help: "Cache lookups and writes",
			},
			[]string{"key_type", "event"}, // event: hit, miss, set
		),
		cacheSetBytes: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "qrforge_cache_set_bytes",
				Help:    "Size of artifacts written to the cache",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"key_type"},
		),
	}
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, format, _ string, cacheHit bool, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.rendersTotal.WithLabelValues(format, strconv.FormatBool(cacheHit), status).Inc()
	h.renderDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnNotice(_ context.Context, code string) {
	h.noticesTotal.WithLabelValues(code).Inc()
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheEvents.WithLabelValues(keyType, "set").Inc()
	h.cacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
)
