package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	assignmentsTotal    *prometheus.CounterVec
	releasesTotal       *prometheus.CounterVec
	conflictsTotal      *prometheus.CounterVec
	tasksCreated        prometheus.Counter
	tasksInProgress     prometheus.Gauge
	invariantViolations prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, *prometheus.CounterVec, prometheus.Counter, prometheus.Gauge, prometheus.Counter) {
	asn := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_assignments_total",
			Help: "Number of committed task assignments",
		},
		[]string{"material"},
	)
	rel := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_releases_total",
			Help: "Number of tasks released to a terminal status",
		},
		[]string{"outcome"},
	)
	con := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_conflicts_total",
			Help: "Number of rejected dispatch operations",
		},
		[]string{"reason"},
	)
	created := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_tasks_created_total",
			Help: "Number of collection tasks created by scheduling",
		},
	)
	active := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_tasks_in_progress",
			Help: "Number of tasks currently in progress",
		},
	)
	inv := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_invariant_violations_total",
			Help: "Number of commits rejected by the invariant check",
		},
	)
	return asn, rel, con, created, active, inv
}

func init() {
	assignmentsTotal, releasesTotal, conflictsTotal, tasksCreated, tasksInProgress, invariantViolations = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(assignmentsTotal, releasesTotal, conflictsTotal, tasksCreated, tasksInProgress, invariantViolations)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	assignmentsTotal, releasesTotal, conflictsTotal, tasksCreated, tasksInProgress, invariantViolations = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
