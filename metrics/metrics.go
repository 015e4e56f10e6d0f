// Package metrics provides the Prometheus instrumentation for the
// family-tree engine, grounded on the teacher's platform-level metric
// package: one struct of pre-registered collectors, constructed once and
// threaded through to whatever component records against it.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds every metric this engine exposes. Every method accepts a
// nil *Recorder and then records nothing, so callers that don't care
// about metrics don't have to nil-check every call site. NewNoop returns
// a working Recorder registered only with a private registry.
type Recorder struct {
	layoutBuilds   *prometheus.CounterVec // by result: ok, error
	layoutDuration prometheus.Histogram
	layoutNodes    prometheus.Gauge

	editOps     *prometheus.CounterVec // by operation, result
	storeErrors *prometheus.CounterVec // by component

	graphSize prometheus.Gauge
}

// New creates a Recorder and registers its collectors with reg. Pass
// prometheus.NewRegistry() in tests to avoid colliding with the global
// default registry.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		layoutBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "famtree",
			Subsystem: "layout",
			Name:      "builds_total",
			Help:      "Total number of Layout Engine runs.",
		}, []string{"result"}),

		layoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "famtree",
			Subsystem: "layout",
			Name:      "build_duration_seconds",
			Help:      "Time spent computing a layout.",
			Buckets:   prometheus.DefBuckets,
		}),

		layoutNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "famtree",
			Subsystem: "layout",
			Name:      "nodes",
			Help:      "Number of nodes in the most recently computed layout.",
		}),

		editOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "famtree",
			Subsystem: "editops",
			Name:      "operations_total",
			Help:      "Total number of edit operations applied.",
		}, []string{"operation", "result"}),

		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "famtree",
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Total number of errors surfaced by the store.",
		}, []string{"component"}),

		graphSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "famtree",
			Subsystem: "store",
			Name:      "graph_size",
			Help:      "Number of persons currently in the graph.",
		}),
	}

	for _, c := range []prometheus.Collector{r.layoutBuilds, r.layoutDuration, r.layoutNodes, r.editOps, r.storeErrors, r.graphSize} {
		reg.MustRegister(c)
	}
	return r
}

// NewNoop returns a Recorder that records into collectors registered
// with a private registry nobody scrapes — usable anywhere a *Recorder
// is required but metrics aren't wired up.
func NewNoop() *Recorder {
	return New(prometheus.NewRegistry())
}

// ObserveLayoutBuild records one Layout Engine run.
func (r *Recorder) ObserveLayoutBuild(d time.Duration, nodeCount int, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.layoutBuilds.WithLabelValues(result).Inc()
	r.layoutDuration.Observe(d.Seconds())
	if err == nil {
		r.layoutNodes.Set(float64(nodeCount))
	}
}

// ObserveEditOp records one edit operation.
func (r *Recorder) ObserveEditOp(operation string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.editOps.WithLabelValues(operation, result).Inc()
}

// ObserveStoreError records an error surfaced by a given component.
func (r *Recorder) ObserveStoreError(component string) {
	if r == nil {
		return
	}
	r.storeErrors.WithLabelValues(component).Inc()
}

// SetGraphSize records the current person count.
func (r *Recorder) SetGraphSize(n int) {
	if r == nil {
		return
	}
	r.graphSize.Set(float64(n))
}
