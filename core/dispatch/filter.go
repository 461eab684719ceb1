package dispatch

import (
	"fmt"
	"strings"

	"github.com/kilianp07/wasteops/core/model"
)

// Snapshot is a consistent copy of the three registries taken under the
// coordinator's writer lock. The filter functions below are pure over it.
type Snapshot struct {
	Tasks    []model.CollectionTask
	Vehicles []model.Vehicle
	Drivers  []model.Driver
}

// PendingUnassigned returns tasks that are Pending and carry no vehicle,
// optionally narrowed by a case-insensitive substring match on the address
// or the customer name.
func PendingUnassigned(tasks []model.CollectionTask, query string) []model.CollectionTask {
	q := strings.ToLower(strings.TrimSpace(query))
	var res []model.CollectionTask
	for _, t := range tasks {
		if t.Status != model.TaskPending || t.Assigned() {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Address), q) &&
			!strings.Contains(strings.ToLower(t.CustomerName), q) {
			continue
		}
		res = append(res, t)
	}
	return res
}

// EligibleVehicles returns vehicles that are Idle and whose linked driver
// is currently available. Vehicles whose driver name does not resolve are
// excluded rather than guessed at.
func EligibleVehicles(vehicles []model.Vehicle, drivers []model.Driver) []model.Vehicle {
	byName := make(map[string]model.Driver, len(drivers))
	for _, d := range drivers {
		byName[d.Name] = d
	}
	var res []model.Vehicle
	for _, v := range vehicles {
		if !v.Dispatchable() {
			continue
		}
		d, ok := byName[v.DriverName]
		if !ok || !d.Available {
			continue
		}
		res = append(res, v)
	}
	return res
}

// CheckInvariants verifies the cross-entity consistency rules over the
// snapshot: every in-progress task references an on-route vehicle and an
// engaged driver, and no vehicle or driver carries two active tasks.
func (s Snapshot) CheckInvariants() error {
	vehicles := make(map[string]model.Vehicle, len(s.Vehicles))
	for _, v := range s.Vehicles {
		vehicles[v.ID] = v
	}
	drivers := make(map[string]model.Driver, len(s.Drivers))
	for _, d := range s.Drivers {
		drivers[d.Name] = d
	}

	vehicleTasks := map[string]string{}
	driverTasks := map[string]string{}
	for _, t := range s.Tasks {
		if !t.Active() {
			continue
		}
		v, ok := vehicles[t.VehicleID]
		if !ok {
			return fmt.Errorf("active task %s references unknown vehicle %q", t.ID, t.VehicleID)
		}
		if v.Status != model.VehicleOnRoute {
			return fmt.Errorf("active task %s on vehicle %s with status %s", t.ID, v.ID, v.Status)
		}
		d, ok := drivers[t.DriverName]
		if !ok {
			return fmt.Errorf("active task %s references unknown driver %q", t.ID, t.DriverName)
		}
		if d.Available {
			return fmt.Errorf("active task %s with available driver %s", t.ID, d.Name)
		}
		if prev, dup := vehicleTasks[t.VehicleID]; dup {
			return fmt.Errorf("vehicle %s double-booked by tasks %s and %s", t.VehicleID, prev, t.ID)
		}
		vehicleTasks[t.VehicleID] = t.ID
		if prev, dup := driverTasks[t.DriverName]; dup {
			return fmt.Errorf("driver %s double-booked by tasks %s and %s", t.DriverName, prev, t.ID)
		}
		driverTasks[t.DriverName] = t.ID
	}
	for _, t := range s.Tasks {
		if t.CollectedKg < 0 {
			return fmt.Errorf("task %s has negative collected weight", t.ID)
		}
	}
	return nil
}
