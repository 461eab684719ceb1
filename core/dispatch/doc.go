// Package dispatch implements the assignment engine that matches pending
// waste-collection tasks to vehicles and drivers.
//
// It keeps the task, vehicle and driver registries mutually consistent as
// assignments are made, tasks progress and tasks are released. Every
// multi-entity mutation passes through the Coordinator, which validates
// eligibility at commit time and applies the linked transitions (task
// status, vehicle status, driver availability) as one unit.
//
// Key components:
//   - Coordinator: the single writer; validates and commits Assign/Release.
//   - PendingUnassigned / EligibleVehicles: pure filters over a Snapshot.
//   - Snapshot.CheckInvariants: the cross-entity consistency rules applied
//     to every candidate commit.
//
// Commit flow:
//  1. Resolve task, vehicle and linked driver by id
//  2. Validate preconditions (pending task, idle vehicle, available driver)
//  3. Apply the linked transitions to copies of the three records
//  4. Verify invariants over the candidate state
//  5. Install the new state and publish events
//
// Failed validation returns a ConflictError naming the precondition and
// leaves all registries untouched. Conflicts are surfaced synchronously to
// the caller; they are semantic, so there is no automatic retry.
package dispatch
