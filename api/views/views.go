// Package views holds the JSON representations served by the HTTP API.
// The core model stays wire-free; handlers convert at the boundary.
package views

import (
	"time"

	"github.com/kilianp07/wasteops/core/model"
)

// Task is the JSON shape of a collection task.
type Task struct {
	ID            string     `json:"id"`
	CustomerID    string     `json:"customer_id"`
	CustomerName  string     `json:"customer_name"`
	Material      string     `json:"material"`
	Address       string     `json:"address"`
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	VehicleID     string     `json:"vehicle_id,omitempty"`
	DriverName    string     `json:"driver_name,omitempty"`
	CollectedKg   float64    `json:"collected_kg"`
	Notes         string     `json:"notes,omitempty"`
	PhotoRef      string     `json:"photo_ref,omitempty"`
}

// Vehicle is the JSON shape of a vehicle.
type Vehicle struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DriverName    string  `json:"driver_name"`
	Status        string  `json:"status"`
	CapacityKg    float64 `json:"capacity_kg"`
	CurrentLoadKg float64 `json:"current_load_kg"`
}

// Driver is the JSON shape of a driver.
type Driver struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Available bool   `json:"available"`
}

// NewTask converts a task record.
func NewTask(t model.CollectionTask) Task {
	v := Task{
		ID:           t.ID,
		CustomerID:   t.CustomerID,
		CustomerName: t.CustomerName,
		Material:     t.Material.String(),
		Address:      t.Address,
		Status:       t.Status.String(),
		VehicleID:    t.VehicleID,
		DriverName:   t.DriverName,
		CollectedKg:  t.CollectedKg,
		Notes:        t.Notes,
		PhotoRef:     t.PhotoRef,
	}
	if !t.ScheduledDate.IsZero() {
		d := t.ScheduledDate
		v.ScheduledDate = &d
	}
	return v
}

// NewTasks converts a task list.
func NewTasks(ts []model.CollectionTask) []Task {
	res := make([]Task, 0, len(ts))
	for _, t := range ts {
		res = append(res, NewTask(t))
	}
	return res
}

// NewVehicle converts a vehicle record.
func NewVehicle(v model.Vehicle) Vehicle {
	return Vehicle{
		ID:            v.ID,
		Name:          v.Name,
		DriverName:    v.DriverName,
		Status:        v.Status.String(),
		CapacityKg:    v.CapacityKg,
		CurrentLoadKg: v.CurrentLoadKg,
	}
}

// NewVehicles converts a vehicle list.
func NewVehicles(vs []model.Vehicle) []Vehicle {
	res := make([]Vehicle, 0, len(vs))
	for _, v := range vs {
		res = append(res, NewVehicle(v))
	}
	return res
}

// NewDriver converts a driver record.
func NewDriver(d model.Driver) Driver {
	return Driver{ID: d.ID, Name: d.Name, Contact: d.Contact, Available: d.Available}
}

// NewDrivers converts a driver list.
func NewDrivers(ds []model.Driver) []Driver {
	res := make([]Driver, 0, len(ds))
	for _, d := range ds {
		res = append(res, NewDriver(d))
	}
	return res
}
