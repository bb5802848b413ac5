package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PrometheusRecorder struct {
	counters  *prometheus.CounterVec
	histogram *prometheus.HistogramVec
}

// NewPrometheusRecorder registers the gateway collectors on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	counters := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "konnadex",
			Name:      "calls_total",
			Help:      "Gateway calls by operation and result",
		},
		[]string{"operation", "result"},
	)

	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "konnadex",
			Name:      "call_latency_seconds",
			Help:      "Gateway call latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	if err := reg.Register(counters); err != nil {
		return nil, err
	}
	if err := reg.Register(histogram); err != nil {
		return nil, err
	}

	return &PrometheusRecorder{
		counters:  counters,
		histogram: histogram,
	}, nil
}

func (p *PrometheusRecorder) IncCounter(name string, labels map[string]string) {
	p.counters.With(prometheus.Labels{
		"operation": name,
		"result":    labels["result"],
	}).Inc()
}

func (p *PrometheusRecorder) ObserveLatency(name string, d time.Duration, _ map[string]string) {
	p.histogram.With(prometheus.Labels{
		"operation": name,
	}).Observe(d.Seconds())
}
