package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	ResolverCalls     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphql_operations_total",
				Help: "GraphQL operations handled, by operation type and outcome",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graphql_operation_duration_seconds",
				Help:    "Time to execute one GraphQL operation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ResolverCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphql_resolver_calls_total",
				Help: "Resolver invocations, by object and field",
			},
			[]string{"object", "field"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.OperationsTotal,
		m.OperationDuration,
		m.ResolverCalls,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
