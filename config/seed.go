package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/wasteops/core/model"
)

// SeedConfig holds the initial registry contents. State lives for the
// process lifetime, so the seed is the only bootstrap path.
type SeedConfig struct {
	Vehicles []SeedVehicle `json:"vehicles"`
	Drivers  []SeedDriver  `json:"drivers"`
	Tasks    []SeedTask    `json:"tasks"`
}

// SeedVehicle describes one vehicle in the fixture.
type SeedVehicle struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Driver     string  `json:"driver"`
	Status     string  `json:"status"`
	CapacityKg float64 `json:"capacity_kg"`
	LoadKg     float64 `json:"load_kg"`
}

// SeedDriver describes one driver in the fixture.
type SeedDriver struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Available bool   `json:"available"`
}

// SeedTask describes one pending task in the fixture.
type SeedTask struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	Material      string `json:"material"`
	Address       string `json:"address"`
	ScheduledDate string `json:"scheduled_date"`
}

// Validate checks that the fixture is internally consistent: enums parse,
// capacities are positive and every vehicle's driver name resolves.
func (s SeedConfig) Validate() error {
	names := make(map[string]bool, len(s.Drivers))
	for _, d := range s.Drivers {
		if d.ID == "" || d.Name == "" {
			return fmt.Errorf("seed driver needs id and name: %+v", d)
		}
		names[d.Name] = true
	}
	for _, v := range s.Vehicles {
		if v.ID == "" {
			return fmt.Errorf("seed vehicle needs an id: %+v", v)
		}
		if v.CapacityKg <= 0 {
			return fmt.Errorf("seed vehicle %s needs a positive capacity", v.ID)
		}
		if v.Status != "" {
			if _, ok := model.VehicleStatusFromString(v.Status); !ok {
				return fmt.Errorf("seed vehicle %s has unknown status %q", v.ID, v.Status)
			}
		}
		if v.Driver != "" && !names[v.Driver] {
			return fmt.Errorf("seed vehicle %s references unknown driver %q", v.ID, v.Driver)
		}
	}
	for _, t := range s.Tasks {
		if t.ID == "" {
			return fmt.Errorf("seed task needs an id: %+v", t)
		}
		if _, ok := model.MaterialTypeFromString(t.Material); !ok {
			return fmt.Errorf("seed task %s has unknown material %q", t.ID, t.Material)
		}
		if t.ScheduledDate != "" {
			if _, err := time.Parse("2006-01-02", t.ScheduledDate); err != nil {
				return fmt.Errorf("seed task %s has invalid date %q", t.ID, t.ScheduledDate)
			}
		}
	}
	return nil
}

// BuildVehicles converts the fixture into vehicle records.
func (s SeedConfig) BuildVehicles() []model.Vehicle {
	res := make([]model.Vehicle, 0, len(s.Vehicles))
	for _, v := range s.Vehicles {
		status := model.VehicleIdle
		if v.Status != "" {
			status, _ = model.VehicleStatusFromString(v.Status)
		}
		res = append(res, model.Vehicle{
			ID:            v.ID,
			Name:          v.Name,
			DriverName:    v.Driver,
			Status:        status,
			CapacityKg:    v.CapacityKg,
			CurrentLoadKg: v.LoadKg,
		})
	}
	return res
}

// BuildDrivers converts the fixture into driver records.
func (s SeedConfig) BuildDrivers() []model.Driver {
	res := make([]model.Driver, 0, len(s.Drivers))
	for _, d := range s.Drivers {
		res = append(res, model.Driver{
			ID:        d.ID,
			Name:      d.Name,
			Contact:   d.Contact,
			Available: d.Available,
		})
	}
	return res
}

// BuildTasks converts the fixture into pending task records.
func (s SeedConfig) BuildTasks() []model.CollectionTask {
	now := time.Now()
	res := make([]model.CollectionTask, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		material, _ := model.MaterialTypeFromString(t.Material)
		var scheduled time.Time
		if t.ScheduledDate != "" {
			scheduled, _ = time.Parse("2006-01-02", t.ScheduledDate)
		}
		res = append(res, model.CollectionTask{
			ID:            t.ID,
			CustomerID:    t.CustomerID,
			CustomerName:  t.CustomerName,
			Material:      material,
			Address:       t.Address,
			Status:        model.TaskPending,
			ScheduledDate: scheduled,
			CreatedAt:     now,
		})
	}
	return res
}
