package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/wasteops/core/metrics"
	"github.com/kilianp07/wasteops/core/model"
)

func TestPromSink_RecordAssignment(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	rec := coremetrics.AssignmentRecord{
		TaskID:     "T01",
		VehicleID:  "V002",
		DriverName: "Jane Smith",
		Material:   model.MaterialGlass,
		Time:       time.Now(),
	}
	if err := sink.RecordAssignment(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}

	expected := `
# HELP wasteops_assignments_total Committed assignments by vehicle
# TYPE wasteops_assignments_total counter
wasteops_assignments_total{material="Glass",vehicle_id="V002"} 1
`
	if err := testutil.CollectAndCompare(sink.assignments, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestPromSink_RecordRelease(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	rec := coremetrics.ReleaseRecord{
		TaskID:      "T01",
		VehicleID:   "V002",
		Outcome:     model.TaskCompleted,
		CollectedKg: 120.5,
		Time:        time.Now(),
	}
	if err := sink.RecordRelease(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if c := testutil.CollectAndCount(sink.releases); c == 0 {
		t.Errorf("release not recorded")
	}
	got := testutil.ToFloat64(sink.collected.WithLabelValues("V002"))
	if got != 120.5 {
		t.Errorf("collected weight = %v, want 120.5", got)
	}
}

func TestPromSink_RecordConflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordConflict(coremetrics.ConflictRecord{Reason: "vehicle not idle"}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	got := testutil.ToFloat64(sink.conflicts.WithLabelValues("vehicle not idle"))
	if got != 1 {
		t.Errorf("conflict count = %v, want 1", got)
	}
}

func TestPromSink_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := NewPromSink(reg); err != nil {
		t.Fatalf("second create should reuse collectors: %v", err)
	}
}
