package monitoring

import (
	"streamgrid/internal/core/services"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exposes the coordination-plane counters kept by the
// metrics service. It reads a snapshot on every scrape.
type PrometheusCollector struct {
	metrics *services.MetricsService

	sessionsActive  *prometheus.Desc
	slotsByPlatform *prometheus.Desc
	layoutChanges   *prometheus.Desc
	slotErrors      *prometheus.Desc
	slotRetries     *prometheus.Desc
	audioFocusMoves *prometheus.Desc
	resolveHits     *prometheus.Desc
	resolveMisses   *prometheus.Desc
	resolveFailures *prometheus.Desc
}

func NewPrometheusCollector(metrics *services.MetricsService) *PrometheusCollector {
	c := &PrometheusCollector{
		metrics: metrics,

		sessionsActive: prometheus.NewDesc(
			"streamgrid_sessions_active",
			"Number of active viewing sessions",
			nil, nil,
		),
		slotsByPlatform: prometheus.NewDesc(
			"streamgrid_slots_occupied",
			"Number of occupied slots per platform",
			[]string{"platform"}, nil,
		),
		layoutChanges: prometheus.NewDesc(
			"streamgrid_layout_changes_total",
			"Total number of layout changes per layout kind",
			[]string{"kind"}, nil,
		),
		slotErrors: prometheus.NewDesc(
			"streamgrid_slot_errors_total",
			"Total number of slots that entered the error state",
			nil, nil,
		),
		slotRetries: prometheus.NewDesc(
			"streamgrid_slot_retries_total",
			"Total number of slot retry attempts",
			nil, nil,
		),
		audioFocusMoves: prometheus.NewDesc(
			"streamgrid_audio_focus_moves_total",
			"Total number of audio focus changes",
			nil, nil,
		),
		resolveHits: prometheus.NewDesc(
			"streamgrid_resolve_cache_hits_total",
			"Total number of stream resolutions served from cache",
			nil, nil,
		),
		resolveMisses: prometheus.NewDesc(
			"streamgrid_resolve_cache_misses_total",
			"Total number of stream resolutions that missed the cache",
			nil, nil,
		),
		resolveFailures: prometheus.NewDesc(
			"streamgrid_resolve_failures_total",
			"Total number of failed platform metadata lookups",
			nil, nil,
		),
	}

	prometheus.MustRegister(c)
	return c
}

func (c *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sessionsActive
	ch <- c.slotsByPlatform
	ch <- c.layoutChanges
	ch <- c.slotErrors
	ch <- c.slotRetries
	ch <- c.audioFocusMoves
	ch <- c.resolveHits
	ch <- c.resolveMisses
	ch <- c.resolveFailures
}

func (c *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.metrics.Snapshot()

	ch <- prometheus.MustNewConstMetric(c.sessionsActive, prometheus.GaugeValue, float64(snap.ActiveSessions))
	for platform, count := range snap.SlotsByPlatform {
		ch <- prometheus.MustNewConstMetric(c.slotsByPlatform, prometheus.GaugeValue, float64(count), string(platform))
	}
	for kind, count := range snap.LayoutChanges {
		ch <- prometheus.MustNewConstMetric(c.layoutChanges, prometheus.CounterValue, float64(count), string(kind))
	}
	ch <- prometheus.MustNewConstMetric(c.slotErrors, prometheus.CounterValue, float64(snap.SlotErrors))
	ch <- prometheus.MustNewConstMetric(c.slotRetries, prometheus.CounterValue, float64(snap.SlotRetries))
	ch <- prometheus.MustNewConstMetric(c.audioFocusMoves, prometheus.CounterValue, float64(snap.AudioFocusMoves))
	ch <- prometheus.MustNewConstMetric(c.resolveHits, prometheus.CounterValue, float64(snap.ResolveHits))
	ch <- prometheus.MustNewConstMetric(c.resolveMisses, prometheus.CounterValue, float64(snap.ResolveMisses))
	ch <- prometheus.MustNewConstMetric(c.resolveFailures, prometheus.CounterValue, float64(snap.ResolveFailures))
}
