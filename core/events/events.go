// Package events defines the domain events published on the internal bus
// after each committed dispatch operation. Consumers (notifier, MQTT
// bridge, displays) refresh their derived views from these; the events
// carry only committed state.
package events

import (
	"time"

	"github.com/kilianp07/wasteops/core/model"
)

// TaskCreatedEvent is published when scheduling creates a new task.
type TaskCreatedEvent struct {
	Task model.CollectionTask
}

// AssignmentEvent is published after an assignment commits.
type AssignmentEvent struct {
	TaskID     string
	VehicleID  string
	DriverName string
	Timestamp  time.Time
}

// ConflictEvent is published when an assignment or release is rejected.
type ConflictEvent struct {
	TaskID    string
	VehicleID string
	Reason    string
	Timestamp time.Time
}

// ReleaseEvent is published after a task reaches a terminal status.
type ReleaseEvent struct {
	TaskID      string
	VehicleID   string
	DriverName  string
	Outcome     model.TaskStatus
	CollectedKg float64
	Timestamp   time.Time
}
