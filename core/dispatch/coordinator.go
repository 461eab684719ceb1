package dispatch

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/wasteops/core/events"
	"github.com/kilianp07/wasteops/core/logger"
	"github.com/kilianp07/wasteops/core/metrics"
	"github.com/kilianp07/wasteops/core/model"
	"github.com/kilianp07/wasteops/core/registry"
	"github.com/kilianp07/wasteops/internal/eventbus"
)

// Coordinator owns the three entity registries and is the single writer
// for every mutation that spans more than one of them. Validation happens
// at commit time under the writer lock, so an assignment offered by a
// stale view is re-checked before anything changes.
type Coordinator struct {
	tasks    *registry.Tasks
	vehicles *registry.Vehicles
	drivers  *registry.Drivers
	bus      eventbus.EventBus
	sink     metrics.Sink
	log      logger.Logger
	mu       sync.Mutex
}

// NewCoordinator creates a Coordinator over the given registries. The bus
// may be nil when no consumer subscribes; a nil sink falls back to NopSink.
func NewCoordinator(tasks *registry.Tasks, vehicles *registry.Vehicles, drivers *registry.Drivers, bus eventbus.EventBus, sink metrics.Sink, log logger.Logger) (*Coordinator, error) {
	if tasks == nil || vehicles == nil || drivers == nil {
		return nil, fmt.Errorf("dispatch: nil registry provided to NewCoordinator")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		return nil, fmt.Errorf("dispatch: nil logger provided to NewCoordinator")
	}
	return &Coordinator{
		tasks:    tasks,
		vehicles: vehicles,
		drivers:  drivers,
		bus:      bus,
		sink:     sink,
		log:      log,
	}, nil
}

// Tasks exposes the task registry for read-only consumers.
func (c *Coordinator) Tasks() *registry.Tasks { return c.tasks }

// Vehicles exposes the vehicle registry for read-only consumers.
func (c *Coordinator) Vehicles() *registry.Vehicles { return c.vehicles }

// Drivers exposes the driver registry for read-only consumers.
func (c *Coordinator) Drivers() *registry.Drivers { return c.drivers }

// Snapshot returns a consistent copy of all three registries. It takes the
// writer lock briefly so a snapshot never observes a half-applied commit.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Coordinator) snapshotLocked() Snapshot {
	return Snapshot{
		Tasks:    c.tasks.List(),
		Vehicles: c.vehicles.List(),
		Drivers:  c.drivers.List(),
	}
}

// CreateTask registers a new Pending collection task and returns it.
func (c *Coordinator) CreateTask(customerID, customerName string, material model.MaterialType, address string, scheduled time.Time) (model.CollectionTask, error) {
	if address == "" {
		return model.CollectionTask{}, fmt.Errorf("dispatch: task address is required")
	}
	task := model.CollectionTask{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		CustomerName:  customerName,
		Material:      material,
		Address:       address,
		Status:        model.TaskPending,
		ScheduledDate: scheduled,
		CreatedAt:     time.Now(),
	}
	if err := task.Validate(); err != nil {
		return model.CollectionTask{}, err
	}
	c.mu.Lock()
	c.tasks.Put(task)
	c.mu.Unlock()
	tasksCreated.Inc()
	if c.bus != nil {
		c.bus.Publish(events.TaskCreatedEvent{Task: task})
	}
	c.log.Infof("created task %s for %s at %s", task.ID, customerName, address)
	return task, nil
}

// Assign matches a pending task to an idle vehicle and its available
// driver. The three mutations commit as one unit: if any precondition
// fails, nothing changes and a ConflictError names the failed check.
func (c *Coordinator) Assign(taskID, vehicleID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	task, err := c.tasks.Get(taskID)
	if err != nil {
		return err
	}
	vehicle, err := c.vehicles.Get(vehicleID)
	if err != nil {
		return err
	}

	if task.Assigned() {
		return c.reject(ConflictError{Reason: ReasonTaskAlreadyAssigned, TaskID: taskID, VehicleID: vehicleID})
	}
	if task.Status != model.TaskPending {
		return c.reject(ConflictError{Reason: ReasonTaskNotPending, TaskID: taskID, VehicleID: vehicleID})
	}
	if vehicle.Status != model.VehicleIdle {
		return c.reject(ConflictError{Reason: ReasonVehicleNotIdle, TaskID: taskID, VehicleID: vehicleID})
	}
	driver, err := c.drivers.GetByName(vehicle.DriverName)
	if err != nil {
		return c.reject(ConflictError{Reason: ReasonDriverUnknown, TaskID: taskID, VehicleID: vehicleID, DriverName: vehicle.DriverName})
	}
	if !driver.Available {
		return c.reject(ConflictError{Reason: ReasonDriverUnavailable, TaskID: taskID, VehicleID: vehicleID, DriverName: driver.Name})
	}

	task.Status = model.TaskInProgress
	task.VehicleID = vehicle.ID
	task.DriverName = driver.Name
	vehicle.Status = model.VehicleOnRoute
	driver.Available = false

	if err := c.commit(task, vehicle, driver); err != nil {
		return err
	}

	now := time.Now()
	assignmentsTotal.WithLabelValues(task.Material.String()).Inc()
	tasksInProgress.Inc()
	if c.bus != nil {
		c.bus.Publish(events.AssignmentEvent{
			TaskID:     task.ID,
			VehicleID:  vehicle.ID,
			DriverName: driver.Name,
			Timestamp:  now,
		})
	}
	if err := c.sink.RecordAssignment(metrics.AssignmentRecord{
		TaskID:     task.ID,
		VehicleID:  vehicle.ID,
		DriverName: driver.Name,
		Material:   task.Material,
		Time:       now,
	}); err != nil {
		c.log.Errorf("metrics error: %v", err)
	}
	c.log.Infof("assigned task %s to vehicle %s (driver %s)", task.ID, vehicle.ID, driver.Name)
	return nil
}

// Release transitions an in-progress task to a terminal outcome and frees
// its vehicle and driver. outcome must be TaskCompleted or TaskCancelled;
// collectedKg is only meaningful for completions.
func (c *Coordinator) Release(taskID string, outcome model.TaskStatus, collectedKg float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.release(taskID, outcome, collectedKg, "", "")
}

// ReportCompletion finalizes a task from field reporting: the collected
// weight plus optional notes and a photo reference, written atomically
// with the Completed transition.
func (c *Coordinator) ReportCompletion(taskID string, collectedKg float64, notes, photoRef string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.release(taskID, model.TaskCompleted, collectedKg, notes, photoRef)
}

func (c *Coordinator) release(taskID string, outcome model.TaskStatus, collectedKg float64, notes, photoRef string) error {
	if outcome != model.TaskCompleted && outcome != model.TaskCancelled {
		return fmt.Errorf("dispatch: release outcome must be terminal, got %s", outcome)
	}
	task, err := c.tasks.Get(taskID)
	if err != nil {
		return err
	}
	if !task.Active() {
		return c.reject(ConflictError{Reason: ReasonTaskNotActive, TaskID: taskID})
	}
	if outcome == model.TaskCompleted && collectedKg < 0 {
		return c.reject(ConflictError{Reason: ReasonNegativeWeight, TaskID: taskID})
	}

	vehicle, err := c.vehicles.Get(task.VehicleID)
	if err != nil {
		return c.fail(InvariantError{Detail: fmt.Sprintf("active task %s references unknown vehicle %q", task.ID, task.VehicleID)})
	}
	driver, err := c.drivers.GetByName(task.DriverName)
	if err != nil {
		return c.fail(InvariantError{Detail: fmt.Sprintf("active task %s references unknown driver %q", task.ID, task.DriverName)})
	}

	task.Status = outcome
	if outcome == model.TaskCompleted {
		task.CollectedKg = collectedKg
		task.Notes = notes
		task.PhotoRef = photoRef
		vehicle.CurrentLoadKg += collectedKg
		if vehicle.CurrentLoadKg > vehicle.CapacityKg {
			vehicle.CurrentLoadKg = vehicle.CapacityKg
		}
	}
	// Maintenance and Completed are operator-controlled; the engine never
	// overrides them.
	if vehicle.Status != model.VehicleMaintenance && vehicle.Status != model.VehicleCompleted {
		vehicle.Status = model.VehicleIdle
	}
	driver.Available = true

	if err := c.commit(task, vehicle, driver); err != nil {
		return err
	}

	now := time.Now()
	releasesTotal.WithLabelValues(outcome.String()).Inc()
	tasksInProgress.Dec()
	if c.bus != nil {
		c.bus.Publish(events.ReleaseEvent{
			TaskID:      task.ID,
			VehicleID:   vehicle.ID,
			DriverName:  driver.Name,
			Outcome:     outcome,
			CollectedKg: task.CollectedKg,
			Timestamp:   now,
		})
	}
	if err := c.sink.RecordRelease(metrics.ReleaseRecord{
		TaskID:      task.ID,
		VehicleID:   vehicle.ID,
		DriverName:  driver.Name,
		Outcome:     outcome,
		CollectedKg: task.CollectedKg,
		Time:        now,
	}); err != nil {
		c.log.Errorf("metrics error: %v", err)
	}
	c.log.Infof("released task %s as %s (vehicle %s, driver %s)", task.ID, outcome, vehicle.ID, driver.Name)
	return nil
}

// commit validates the candidate state and installs it in the registries.
// The candidate is the current snapshot with the three records replaced;
// if it violates an invariant the commit is rejected and nothing changes.
func (c *Coordinator) commit(task model.CollectionTask, vehicle model.Vehicle, driver model.Driver) error {
	snap := c.snapshotLocked()
	replaceTask(snap.Tasks, task)
	replaceVehicle(snap.Vehicles, vehicle)
	replaceDriver(snap.Drivers, driver)
	if err := snap.CheckInvariants(); err != nil {
		return c.fail(InvariantError{Detail: err.Error()})
	}
	c.tasks.ReplaceAll(snap.Tasks)
	c.vehicles.ReplaceAll(snap.Vehicles)
	c.drivers.ReplaceAll(snap.Drivers)
	return nil
}

// reject records a validation conflict and returns it. No state changes.
func (c *Coordinator) reject(conflict ConflictError) error {
	now := time.Now()
	conflictsTotal.WithLabelValues(conflict.Reason.String()).Inc()
	if c.bus != nil {
		c.bus.Publish(events.ConflictEvent{
			TaskID:    conflict.TaskID,
			VehicleID: conflict.VehicleID,
			Reason:    conflict.Reason.String(),
			Timestamp: now,
		})
	}
	if err := c.sink.RecordConflict(metrics.ConflictRecord{
		TaskID:    conflict.TaskID,
		VehicleID: conflict.VehicleID,
		Reason:    conflict.Reason.String(),
		Time:      now,
	}); err != nil {
		c.log.Errorf("metrics error: %v", err)
	}
	c.log.Warnf("rejected dispatch operation: %v", conflict)
	return conflict
}

// fail logs an invariant violation. It is a defect signal, never swallowed.
func (c *Coordinator) fail(err InvariantError) error {
	invariantViolations.Inc()
	c.log.Errorf("%v", err)
	return err
}

func replaceTask(list []model.CollectionTask, t model.CollectionTask) {
	for i := range list {
		if list[i].ID == t.ID {
			list[i] = t
			return
		}
	}
}

func replaceVehicle(list []model.Vehicle, v model.Vehicle) {
	for i := range list {
		if list[i].ID == v.ID {
			list[i] = v
			return
		}
	}
}

func replaceDriver(list []model.Driver, d model.Driver) {
	for i := range list {
		if list[i].ID == d.ID {
			list[i] = d
			return
		}
	}
}
