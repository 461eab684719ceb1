package dispatch

import "github.com/kilianp07/wasteops/core/model"

// AssignmentRequest pairs a task with a proposed vehicle.
type AssignmentRequest struct {
	TaskID    string
	VehicleID string
}

// AssignBatch applies the requests in order, one commit each. A vehicle
// claimed by an earlier request is no longer idle, so later requests for
// it fail with a ConflictError: first validated wins, one task per
// vehicle. The returned slice holds the per-request outcome.
func (c *Coordinator) AssignBatch(reqs []AssignmentRequest) []error {
	errs := make([]error, len(reqs))
	for i, r := range reqs {
		errs[i] = c.Assign(r.TaskID, r.VehicleID)
	}
	return errs
}

// PendingTasks returns the pending, unassigned tasks from a consistent
// snapshot, optionally narrowed by the query.
func (c *Coordinator) PendingTasks(query string) []model.CollectionTask {
	snap := c.Snapshot()
	return PendingUnassigned(snap.Tasks, query)
}

// Eligible returns the vehicles currently able to receive work from a
// consistent snapshot.
func (c *Coordinator) Eligible() []model.Vehicle {
	snap := c.Snapshot()
	return EligibleVehicles(snap.Vehicles, snap.Drivers)
}
