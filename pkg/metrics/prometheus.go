package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ReuseLookups    *prometheus.CounterVec
	MessagesSent    *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on the default registerer
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer, namespace)
}

// NewMetricsWith creates new prometheus metrics registered on reg
func NewMetricsWith(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_requests_total",
			Help:      "The total number of Graph API requests by outcome",
		}, []string{"endpoint", "method", "outcome"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_request_duration_seconds",
			Help:      "Time taken by Graph API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "method"}),
		ReuseLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reusable_attachment_lookups_total",
			Help:      "The total number of reusable attachment lookups by result",
		}, []string{"result"}),
		MessagesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "The total number of messages accepted by the platform",
		}, []string{"kind"}),
	}
}
