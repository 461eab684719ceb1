package dispatch

import "fmt"

// ConflictReason identifies the precondition that failed during validation.
type ConflictReason int

const (
	// ReasonTaskNotPending means the task is not in the Pending status.
	ReasonTaskNotPending ConflictReason = iota
	// ReasonTaskAlreadyAssigned means the task already references a vehicle.
	ReasonTaskAlreadyAssigned
	// ReasonVehicleNotIdle means the target vehicle is not Idle.
	ReasonVehicleNotIdle
	// ReasonDriverUnknown means the vehicle's driver name did not resolve.
	ReasonDriverUnknown
	// ReasonDriverUnavailable means the linked driver is engaged elsewhere.
	ReasonDriverUnavailable
	// ReasonTaskNotActive means a release targeted a task that is not in progress.
	ReasonTaskNotActive
	// ReasonNegativeWeight means a completion carried a negative collected weight.
	ReasonNegativeWeight
)

// String returns a human-readable representation of the conflict reason.
func (r ConflictReason) String() string {
	switch r {
	case ReasonTaskNotPending:
		return "task not pending"
	case ReasonTaskAlreadyAssigned:
		return "task already assigned"
	case ReasonVehicleNotIdle:
		return "vehicle not idle"
	case ReasonDriverUnknown:
		return "driver unknown"
	case ReasonDriverUnavailable:
		return "driver not available"
	case ReasonTaskNotActive:
		return "task not in progress"
	case ReasonNegativeWeight:
		return "negative collected weight"
	default:
		return "unknown"
	}
}

// ConflictError reports a failed dispatch precondition. Conflicts are
// semantic, not transient: the caller recovers by picking another target,
// never by retrying the same request.
type ConflictError struct {
	Reason     ConflictReason
	TaskID     string
	VehicleID  string
	DriverName string
}

func (e ConflictError) Error() string {
	if e.VehicleID != "" {
		return fmt.Sprintf("assignment conflict for task %s on vehicle %s: %s", e.TaskID, e.VehicleID, e.Reason)
	}
	return fmt.Sprintf("assignment conflict for task %s: %s", e.TaskID, e.Reason)
}

// InvariantError signals that a commit would have produced inconsistent
// registry state. It indicates a programming defect, not an operator
// mistake; the commit is rejected and the state left unchanged.
type InvariantError struct {
	Detail string
}

func (e InvariantError) Error() string {
	return "invariant violation: " + e.Detail
}
