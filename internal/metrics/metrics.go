package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dispatch triggers
const (
	TriggerNow       = "now"
	TriggerScheduled = "scheduled"
)

// Metrics holds the fan comms collectors. A nil *Metrics records nothing.
type Metrics struct {
	dispatchesTotal       *prometheus.CounterVec
	notificationsInserted *prometheus.CounterVec
	dispatchDuration      *prometheus.HistogramVec
	sweepGigsUpdated      prometheus.Counter
	writeConflicts        *prometheus.CounterVec
	rateLimited           prometheus.Counter

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge
}

// New registers the collectors on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		dispatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fan_comms_dispatches_total",
				Help: "Fan update send attempts partitioned by trigger and outcome",
			},
			[]string{"trigger", "outcome"},
		),
		notificationsInserted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fan_comms_notifications_inserted_total",
				Help: "Notification rows written for fan updates",
			},
			[]string{"trigger"},
		),
		dispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fan_comms_dispatch_duration_seconds",
				Help:    "Time spent resolving recipients and writing notifications",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"trigger"},
		),
		sweepGigsUpdated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fan_comms_sweep_gigs_updated_total",
				Help: "Gigs whose queue was rewritten by the scheduled sweep",
			},
		),
		writeConflicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fan_comms_metadata_write_conflicts_total",
				Help: "Optimistic gig metadata writes that lost to a concurrent writer",
			},
			[]string{"operation"},
		),
		rateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "fan_comms_rate_limited_total",
				Help: "Fan update requests rejected by the rate limiter",
			},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		httpInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_inflight_requests",
				Help: "Number of HTTP requests currently being served",
			},
		),
	}
}

// ObserveDispatch records one send attempt
func (m *Metrics) ObserveDispatch(trigger, outcome string, inserted int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.dispatchesTotal.WithLabelValues(trigger, outcome).Inc()
	m.notificationsInserted.WithLabelValues(trigger).Add(float64(inserted))
	m.dispatchDuration.WithLabelValues(trigger).Observe(elapsed.Seconds())
}

// ObserveSweep records how many gigs one sweep rewrote
func (m *Metrics) ObserveSweep(updatedGigs int) {
	if m == nil {
		return
	}
	m.sweepGigsUpdated.Add(float64(updatedGigs))
}

// IncWriteConflict records a lost compare-and-swap on gig metadata
func (m *Metrics) IncWriteConflict(operation string) {
	if m == nil {
		return
	}
	m.writeConflicts.WithLabelValues(operation).Inc()
}

// IncRateLimited records a throttled request
func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// Middleware records request counts and latencies per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		c.Next()

		// Route template keeps label cardinality low
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": c.Request.Method,
			"route":  route,
			"status": strconv.Itoa(c.Writer.Status()),
		}
		m.httpRequestsTotal.With(labels).Inc()
		m.httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the exposition format for g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
