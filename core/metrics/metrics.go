package metrics

import (
	"time"

	"github.com/kilianp07/wasteops/core/model"
)

// AssignmentRecord represents a committed assignment to be recorded.
type AssignmentRecord struct {
	TaskID     string
	VehicleID  string
	DriverName string
	Material   model.MaterialType
	Time       time.Time
}

// ReleaseRecord represents a committed release to be recorded.
type ReleaseRecord struct {
	TaskID      string
	VehicleID   string
	DriverName  string
	Outcome     model.TaskStatus
	CollectedKg float64
	Time        time.Time
}

// ConflictRecord represents a rejected dispatch operation.
type ConflictRecord struct {
	TaskID    string
	VehicleID string
	Reason    string
	Time      time.Time
}

// Sink records dispatch outcomes for observability purposes. Sinks run
// outside the commit path; a failing sink never fails a commit.
type Sink interface {
	RecordAssignment(rec AssignmentRecord) error
	RecordRelease(rec ReleaseRecord) error
	RecordConflict(rec ConflictRecord) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordAssignment(AssignmentRecord) error { return nil }
func (NopSink) RecordRelease(ReleaseRecord) error       { return nil }
func (NopSink) RecordConflict(ConflictRecord) error     { return nil }
