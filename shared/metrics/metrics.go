package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives engine events. The RPC provider and the license
// verifier are handed a Recorder at construction so tests can substitute a
// no-op or a recording implementation.
type Recorder interface {
	// RPCAttempt records one attempt against one endpoint.
	RPCAttempt(endpoint string, success bool, duration time.Duration)
	// Failover records an endpoint being abandoned after exhausting its
	// per-endpoint retry budget.
	Failover(endpoint string)
	// Probe records the outcome of an initialization connectivity probe.
	Probe(success bool)
	// CacheLookup records a verification cache hit or miss.
	CacheLookup(hit bool)
}

// PrometheusRecorder implements Recorder on Prometheus collectors.
type PrometheusRecorder struct {
	attemptsTotal  *prometheus.CounterVec
	attemptSeconds *prometheus.HistogramVec
	failoversTotal *prometheus.CounterVec
	probesTotal    *prometheus.CounterVec
	cacheTotal     *prometheus.CounterVec
}

// NewPrometheusRecorder creates and registers all collectors against the
// given registerer.
func NewPrometheusRecorder(reg prometheus.Registerer, namespace string) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_attempts_total",
				Help:      "Total number of RPC attempts by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		attemptSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_attempt_duration_seconds",
				Help:      "RPC attempt latencies in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		failoversTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_failovers_total",
				Help:      "Endpoints abandoned after exhausting per-endpoint retries",
			},
			[]string{"endpoint"},
		),
		probesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_probes_total",
				Help:      "Connectivity probe outcomes",
			},
			[]string{"outcome"},
		),
		cacheTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "license_cache_lookups_total",
				Help:      "License verification cache lookups",
			},
			[]string{"outcome"},
		),
	}
}

func (r *PrometheusRecorder) RPCAttempt(endpoint string, success bool, duration time.Duration) {
	r.attemptsTotal.WithLabelValues(endpoint, outcomeLabel(success)).Inc()
	r.attemptSeconds.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (r *PrometheusRecorder) Failover(endpoint string) {
	r.failoversTotal.WithLabelValues(endpoint).Inc()
}

func (r *PrometheusRecorder) Probe(success bool) {
	r.probesTotal.WithLabelValues(outcomeLabel(success)).Inc()
}

func (r *PrometheusRecorder) CacheLookup(hit bool) {
	if hit {
		r.cacheTotal.WithLabelValues("hit").Inc()
	} else {
		r.cacheTotal.WithLabelValues("miss").Inc()
	}
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// Noop is a Recorder that discards all events.
type Noop struct{}

func (Noop) RPCAttempt(string, bool, time.Duration) {}
func (Noop) Failover(string)                        {}
func (Noop) Probe(bool)                             {}
func (Noop) CacheLookup(bool)                       {}
