package dispatch

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/wasteops/core/model"
)

func TestMetricsRegistration(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)
	// touch metrics so they are exported
	assignmentsTotal.WithLabelValues("Glass").Inc()
	releasesTotal.WithLabelValues("Completed").Inc()
	conflictsTotal.WithLabelValues("vehicle not idle").Inc()
	tasksCreated.Inc()
	tasksInProgress.Set(1)
	invariantViolations.Inc()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[*mf.Name] = true
	}
	expected := []string{
		"dispatch_assignments_total",
		"dispatch_releases_total",
		"dispatch_conflicts_total",
		"dispatch_tasks_created_total",
		"dispatch_tasks_in_progress",
		"dispatch_invariant_violations_total",
	}
	for _, n := range expected {
		if !names[n] {
			t.Errorf("metric %s not registered", n)
		}
	}
}

func TestCoordinatorMetricsUpdate(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)

	c, _ := newTestCoordinator(t)
	if err := c.Assign("T01", "V002"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got := testutil.ToFloat64(assignmentsTotal.WithLabelValues("Glass")); got != 1 {
		t.Errorf("assignmentsTotal expected 1 got %f", got)
	}
	if got := testutil.ToFloat64(tasksInProgress); got != 1 {
		t.Errorf("tasksInProgress expected 1 got %f", got)
	}

	if err := c.Assign("T02", "V002"); err == nil {
		t.Fatal("busy vehicle accepted")
	}
	if got := testutil.ToFloat64(conflictsTotal.WithLabelValues("vehicle not idle")); got != 1 {
		t.Errorf("conflictsTotal expected 1 got %f", got)
	}

	if err := c.Release("T01", model.TaskCompleted, 42); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := testutil.ToFloat64(releasesTotal.WithLabelValues("Completed")); got != 1 {
		t.Errorf("releasesTotal expected 1 got %f", got)
	}
	if got := testutil.ToFloat64(tasksInProgress); got != 0 {
		t.Errorf("tasksInProgress expected 0 got %f", got)
	}
}
