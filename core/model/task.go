package model

import (
	"fmt"
	"time"
)

// MaterialType identifies the kind of waste a collection task handles.
type MaterialType int

const (
	MaterialPlastic MaterialType = iota
	MaterialGlass
	MaterialPaper
	MaterialMetal
	MaterialMixed
)

// String returns a human-readable representation of the material type.
func (m MaterialType) String() string {
	switch m {
	case MaterialPlastic:
		return "Plastic"
	case MaterialGlass:
		return "Glass"
	case MaterialPaper:
		return "Paper"
	case MaterialMetal:
		return "Metal"
	case MaterialMixed:
		return "Mixed"
	default:
		return "unknown"
	}
}

// MaterialTypeFromString parses a material type name. The match is exact.
func MaterialTypeFromString(s string) (MaterialType, bool) {
	switch s {
	case "Plastic":
		return MaterialPlastic, true
	case "Glass":
		return MaterialGlass, true
	case "Paper":
		return MaterialPaper, true
	case "Metal":
		return MaterialMetal, true
	case "Mixed":
		return MaterialMixed, true
	default:
		return 0, false
	}
}

// TaskStatus is the lifecycle state of a collection task.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskInProgress
	TaskCompleted
	TaskCancelled
)

// String returns a human-readable representation of the task status.
func (s TaskStatus) String() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskInProgress:
		return "In Progress"
	case TaskCompleted:
		return "Completed"
	case TaskCancelled:
		return "Cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is an end state.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskCancelled
}

// CollectionTask represents one unit of collection work tied to a customer,
// an address and a material type. The vehicle and driver fields are empty
// until the task is assigned.
type CollectionTask struct {
	ID            string
	CustomerID    string
	CustomerName  string
	Material      MaterialType
	Address       string
	Status        TaskStatus
	ScheduledDate time.Time
	VehicleID     string
	DriverName    string
	// CollectedKg is authoritative only once the task is completed.
	CollectedKg float64
	Notes       string
	PhotoRef    string
	CreatedAt   time.Time
}

// Validate checks that the task fields are sound.
func (t CollectionTask) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id is required")
	}
	if t.CollectedKg < 0 {
		return fmt.Errorf("collected weight must not be negative")
	}
	return nil
}

// Assigned reports whether the task currently references a vehicle.
func (t CollectionTask) Assigned() bool {
	return t.VehicleID != ""
}

// Active reports whether the task is currently being worked on.
func (t CollectionTask) Active() bool {
	return t.Status == TaskInProgress
}
