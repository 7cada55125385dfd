package metrics

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Cart adjustment kinds.
const (
	AdjustmentClamped = "clamped"
	AdjustmentPruned  = "pruned"
)

// Metrics holds the Prometheus collectors of the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cartOperations  *prometheus.CounterVec
	cartAdjustments *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. Passing a fresh
// prometheus.NewRegistry keeps tests isolated from the default registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		cartOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_operations_total",
				Help:      "Cart operations by operation and result",
			},
			[]string{"operation", "result"},
		),
		cartAdjustments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_adjustments_total",
				Help:      "Cart lines clamped to stock or pruned at zero",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.cartOperations,
		m.cartAdjustments,
	)

	return m
}

func (m *Metrics) CartOperation(operation, result string) {
	if m == nil {
		return
	}
	m.cartOperations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) CartAdjusted(kind string) {
	if m == nil {
		return
	}
	m.cartAdjustments.WithLabelValues(kind).Inc()
}

// Middleware records request count and latency labelled by the matched
// route template, so path parameters do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var route, status string
		timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
			m.requestDuration.WithLabelValues(c.Request.Method, route, status).Observe(v)
		}))

		c.Next()

		route = c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status = strconv.Itoa(c.Writer.Status())

		m.requestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		timer.ObserveDuration()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
