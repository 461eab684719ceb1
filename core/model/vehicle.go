package model

import "fmt"

// VehicleStatus is the operational state of a collection vehicle.
// Idle and OnRoute alternate as tasks flow through; Maintenance and
// VehicleCompleted are operator-controlled side states that the engine
// never enters on its own.
type VehicleStatus int

const (
	VehicleIdle VehicleStatus = iota
	VehicleOnRoute
	VehicleMaintenance
	VehicleCompleted
)

// String returns a human-readable representation of the vehicle status.
func (s VehicleStatus) String() string {
	switch s {
	case VehicleIdle:
		return "Idle"
	case VehicleOnRoute:
		return "On Route"
	case VehicleMaintenance:
		return "Maintenance"
	case VehicleCompleted:
		return "Completed"
	default:
		return "unknown"
	}
}

// VehicleStatusFromString parses a vehicle status name.
func VehicleStatusFromString(s string) (VehicleStatus, bool) {
	switch s {
	case "Idle":
		return VehicleIdle, true
	case "On Route":
		return VehicleOnRoute, true
	case "Maintenance":
		return VehicleMaintenance, true
	case "Completed":
		return VehicleCompleted, true
	default:
		return 0, false
	}
}

// Vehicle represents a collection vehicle. DriverName references a driver
// in the driver registry and is resolved through an index, not compared
// ad hoc at use sites.
type Vehicle struct {
	ID            string
	Name          string
	DriverName    string
	Status        VehicleStatus
	CapacityKg    float64
	CurrentLoadKg float64
}

// Validate checks that the vehicle configuration is sound.
// In particular CapacityKg must be positive and the load must fit.
func (v Vehicle) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("vehicle id is required")
	}
	if v.CapacityKg <= 0 {
		return fmt.Errorf("vehicle capacity must be positive")
	}
	if v.CurrentLoadKg < 0 || v.CurrentLoadKg > v.CapacityKg {
		return fmt.Errorf("vehicle load %.1f outside [0, %.1f]", v.CurrentLoadKg, v.CapacityKg)
	}
	return nil
}

// Dispatchable reports whether the vehicle itself can receive work. The
// driver side of eligibility is resolved separately.
func (v Vehicle) Dispatchable() bool {
	return v.Status == VehicleIdle
}
