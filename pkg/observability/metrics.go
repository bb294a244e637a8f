package observability

import "github.com/prometheus/client_golang/prometheus"

// BusMetrics holds the prometheus collectors for message dispatch.
type BusMetrics struct {
	// Messages counts dispatches by bus side and outcome
	// (handled, failed, rejected, unrouted).
	Messages *prometheus.CounterVec

	// CacheHits counts handler resolutions served from the cache.
	CacheHits *prometheus.CounterVec
}

// NewBusMetrics creates and registers the bus collectors.
func NewBusMetrics(reg prometheus.Registerer) *BusMetrics {
	m := &BusMetrics{
		Messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_bus_messages_total",
				Help: "Total messages dispatched, by bus side and outcome.",
			},
			[]string{"bus", "outcome"},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_bus_handler_cache_hits_total",
				Help: "Handler resolutions served from the memoization cache.",
			},
			[]string{"bus"},
		),
	}
	reg.MustRegister(m.Messages, m.CacheHits)
	return m
}

// FlowMetrics holds the prometheus collectors for flow execution.
type FlowMetrics struct {
	// Runs counts completed runs by flow id and outcome.
	Runs *prometheus.CounterVec

	// Duration observes wall-clock run time per flow id.
	Duration *prometheus.HistogramVec

	// NodeVisits counts node executions by flow id and node kind.
	NodeVisits *prometheus.CounterVec
}

// NewFlowMetrics creates and registers the flow collectors.
func NewFlowMetrics(reg prometheus.Registerer) *FlowMetrics {
	m := &FlowMetrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_flow_runs_total",
				Help: "Total flow runs, by flow id and outcome.",
			},
			[]string{"flow", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "espalier_flow_run_duration_seconds",
				Help:    "Duration of flow runs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"flow"},
		),
		NodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "espalier_flow_node_visits_total",
				Help: "Total node executions, by flow id and node kind.",
			},
			[]string{"flow", "kind"},
		),
	}
	reg.MustRegister(m.Runs, m.Duration, m.NodeVisits)
	return m
}
