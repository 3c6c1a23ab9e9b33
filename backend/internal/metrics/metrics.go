package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by the counters below
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeDisabled = "disabled"
	OutcomeError    = "error"
	OutcomeParse    = "parse_error"
)

// Collector holds all Prometheus metrics for the application. It owns its
// registry so tests can build as many collectors as they like.
type Collector struct {
	registry *prometheus.Registry

	GraphOperations *prometheus.CounterVec
	GraphDuration   *prometheus.HistogramVec
	LLMRequests     *prometheus.CounterVec
	Extractions     *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// NewCollector creates a collector with every metric registered under namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		GraphOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "graph_operations_total",
				Help:      "Graph access operations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		GraphDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "graph_operation_duration_seconds",
				Help:      "Graph access operation latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		LLMRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_requests_total",
				Help:      "Model completion requests by purpose and outcome",
			},
			[]string{"purpose", "outcome"},
		),
		Extractions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "insight_extractions_total",
				Help:      "Transcript extractions by outcome",
			},
			[]string{"outcome"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	registry.MustRegister(
		c.GraphOperations,
		c.GraphDuration,
		c.LLMRequests,
		c.Extractions,
		c.HTTPRequests,
		c.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Handler exposes the collector's registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveGraph records one graph operation. Safe on a nil collector.
func (c *Collector) ObserveGraph(operation, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.GraphOperations.WithLabelValues(operation, outcome).Inc()
	c.GraphDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// CountLLM records one completion request. Safe on a nil collector.
func (c *Collector) CountLLM(purpose, outcome string) {
	if c == nil {
		return
	}
	c.LLMRequests.WithLabelValues(purpose, outcome).Inc()
}

// CountExtraction records one extraction outcome. Safe on a nil collector.
func (c *Collector) CountExtraction(outcome string) {
	if c == nil {
		return
	}
	c.Extractions.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one served request. Safe on a nil collector.
func (c *Collector) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
