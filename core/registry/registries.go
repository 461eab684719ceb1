package registry

import "github.com/kilianp07/wasteops/core/model"

// Tasks is the collection task registry.
type Tasks struct {
	*Store[model.CollectionTask]
}

// NewTasks creates an empty task registry.
func NewTasks() *Tasks {
	return &Tasks{Store: NewStore("task", func(t model.CollectionTask) string { return t.ID })}
}

// Vehicles is the vehicle registry.
type Vehicles struct {
	*Store[model.Vehicle]
}

// NewVehicles creates an empty vehicle registry.
func NewVehicles() *Vehicles {
	return &Vehicles{Store: NewStore("vehicle", func(v model.Vehicle) string { return v.ID })}
}

// Drivers is the driver registry. Vehicles reference drivers by name, so
// the registry also resolves names to records.
type Drivers struct {
	*Store[model.Driver]
}

// NewDrivers creates an empty driver registry.
func NewDrivers() *Drivers {
	return &Drivers{Store: NewStore("driver", func(d model.Driver) string { return d.ID })}
}

// GetByName resolves a driver by exact name. Names act as foreign keys from
// vehicles; a missing name yields a NotFoundError just like a missing id.
func (d *Drivers) GetByName(name string) (model.Driver, error) {
	for _, drv := range d.List() {
		if drv.Name == name {
			return drv, nil
		}
	}
	return model.Driver{}, NotFoundError{Kind: "driver", ID: name}
}
