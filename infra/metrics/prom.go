package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/wasteops/core/metrics"
)

// PromSink records dispatch outcomes in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	releases    *prometheus.CounterVec
	conflicts   *prometheus.CounterVec
	collected   *prometheus.CounterVec
}

// NewPromSink registers the sink's collectors on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wasteops_assignments_total",
		Help: "Committed assignments by vehicle",
	}, []string{"vehicle_id", "material"})
	releases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wasteops_releases_total",
		Help: "Released tasks by vehicle and outcome",
	}, []string{"vehicle_id", "outcome"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wasteops_conflicts_total",
		Help: "Rejected dispatch operations by reason",
	}, []string{"reason"})
	collected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wasteops_collected_kg_total",
		Help: "Collected weight by vehicle in kilograms",
	}, []string{"vehicle_id"})

	s := &PromSink{assignments: assignments, releases: releases, conflicts: conflicts, collected: collected}
	for _, c := range []*prometheus.CounterVec{assignments, releases, conflicts, collected} {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			existing := are.ExistingCollector.(*prometheus.CounterVec)
			switch c {
			case assignments:
				s.assignments = existing
			case releases:
				s.releases = existing
			case conflicts:
				s.conflicts = existing
			case collected:
				s.collected = existing
			}
		}
	}
	return s, nil
}

// RecordAssignment increments the assignment counter.
func (s *PromSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	s.assignments.WithLabelValues(rec.VehicleID, rec.Material.String()).Inc()
	return nil
}

// RecordRelease increments the release counter and adds the collected weight.
func (s *PromSink) RecordRelease(rec coremetrics.ReleaseRecord) error {
	s.releases.WithLabelValues(rec.VehicleID, rec.Outcome.String()).Inc()
	if rec.CollectedKg > 0 {
		s.collected.WithLabelValues(rec.VehicleID).Add(rec.CollectedKg)
	}
	return nil
}

// RecordConflict increments the conflict counter.
func (s *PromSink) RecordConflict(rec coremetrics.ConflictRecord) error {
	s.conflicts.WithLabelValues(rec.Reason).Inc()
	return nil
}
