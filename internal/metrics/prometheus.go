package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusRecorder struct {
	counters  *prometheus.CounterVec
	histogram *prometheus.HistogramVec
	gatherer  prometheus.Gatherer
}

// NewPrometheusRecorder registers the relay collectors on a private registry
func NewPrometheusRecorder() *PrometheusRecorder {
	reg := prometheus.NewRegistry()

	counters := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paymesh",
			Name:      "events_total",
			Help:      "paymesh relay event counters",
		},
		[]string{"type"},
	)

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paymesh",
			Name:      "latency_seconds",
			Help:      "paymesh relay operation latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	reg.MustRegister(counters, histogram)

	return &PrometheusRecorder{
		counters:  counters,
		histogram: histogram,
		gatherer:  reg,
	}
}

func (p *PrometheusRecorder) IncCounter(name string) {
	p.counters.WithLabelValues(name).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(name string, d time.Duration) {
	p.histogram.WithLabelValues(name).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}
