package dispatch

import (
	"reflect"
	"testing"

	"github.com/kilianp07/wasteops/core/model"
)

func fixtureTasks() []model.CollectionTask {
	return []model.CollectionTask{
		{ID: "T01", CustomerName: "Greenfield Mall", Address: "12 Border Rd", Status: model.TaskPending},
		{ID: "T02", CustomerName: "Harbor Hotel", Address: "3 Quay St", Status: model.TaskPending},
		{ID: "T03", CustomerName: "City Clinic", Address: "9 Border Rd", Status: model.TaskInProgress, VehicleID: "V001", DriverName: "John Carter"},
		{ID: "T04", CustomerName: "Old Mill", Address: "1 Mill Ln", Status: model.TaskCompleted, VehicleID: "V002", DriverName: "Jane Smith", CollectedKg: 50},
	}
}

func fixtureVehicles() []model.Vehicle {
	return []model.Vehicle{
		{ID: "V001", DriverName: "John Carter", Status: model.VehicleOnRoute, CapacityKg: 4000},
		{ID: "V002", DriverName: "Jane Smith", Status: model.VehicleIdle, CapacityKg: 5000},
		{ID: "V003", DriverName: "Maria Lopez", Status: model.VehicleIdle, CapacityKg: 3000},
		{ID: "V004", DriverName: "Ghost", Status: model.VehicleIdle, CapacityKg: 3000},
		{ID: "V005", DriverName: "Jane Smith", Status: model.VehicleMaintenance, CapacityKg: 2000},
	}
}

func fixtureDrivers() []model.Driver {
	return []model.Driver{
		{ID: "D001", Name: "Jane Smith", Available: true},
		{ID: "D002", Name: "John Carter", Available: false},
		{ID: "D003", Name: "Maria Lopez", Available: false},
	}
}

func TestPendingUnassigned_NoQuery(t *testing.T) {
	got := PendingUnassigned(fixtureTasks(), "")
	if len(got) != 2 || got[0].ID != "T01" || got[1].ID != "T02" {
		t.Fatalf("unexpected pending set: %#v", got)
	}
}

func TestPendingUnassigned_QueryMatchesAddressAndCustomer(t *testing.T) {
	byAddress := PendingUnassigned(fixtureTasks(), "border rd")
	if len(byAddress) != 1 || byAddress[0].ID != "T01" {
		t.Fatalf("address query failed: %#v", byAddress)
	}
	byCustomer := PendingUnassigned(fixtureTasks(), "HARBOR")
	if len(byCustomer) != 1 || byCustomer[0].ID != "T02" {
		t.Fatalf("customer query failed: %#v", byCustomer)
	}
	if got := PendingUnassigned(fixtureTasks(), "nowhere"); len(got) != 0 {
		t.Fatalf("bogus query matched: %#v", got)
	}
}

func TestPendingUnassigned_ExcludesAssignedPending(t *testing.T) {
	tasks := []model.CollectionTask{
		{ID: "T05", Status: model.TaskPending, VehicleID: "V001"},
	}
	if got := PendingUnassigned(tasks, ""); len(got) != 0 {
		t.Fatalf("assigned task listed as pending: %#v", got)
	}
}

func TestEligibleVehicles(t *testing.T) {
	got := EligibleVehicles(fixtureVehicles(), fixtureDrivers())
	// V002 is the only idle vehicle whose driver is available. V003's
	// driver is engaged, V004's driver does not resolve, V005 is in
	// maintenance.
	if len(got) != 1 || got[0].ID != "V002" {
		t.Fatalf("unexpected eligible set: %#v", got)
	}
}

func TestFilters_Idempotent(t *testing.T) {
	tasks, vehicles, drivers := fixtureTasks(), fixtureVehicles(), fixtureDrivers()
	first := PendingUnassigned(tasks, "")
	second := PendingUnassigned(tasks, "")
	if !reflect.DeepEqual(first, second) {
		t.Fatal("pending filter not idempotent")
	}
	ev1 := EligibleVehicles(vehicles, drivers)
	ev2 := EligibleVehicles(vehicles, drivers)
	if !reflect.DeepEqual(ev1, ev2) {
		t.Fatal("eligibility filter not idempotent")
	}
}

func TestCheckInvariants_Valid(t *testing.T) {
	snap := Snapshot{Tasks: fixtureTasks(), Vehicles: fixtureVehicles(), Drivers: fixtureDrivers()}
	if err := snap.CheckInvariants(); err != nil {
		t.Fatalf("valid snapshot rejected: %v", err)
	}
}

func TestCheckInvariants_Violations(t *testing.T) {
	base := Snapshot{Tasks: fixtureTasks(), Vehicles: fixtureVehicles(), Drivers: fixtureDrivers()}

	doubleBooked := base
	doubleBooked.Tasks = append(fixtureTasks(), model.CollectionTask{
		ID: "T06", Status: model.TaskInProgress, VehicleID: "V001", DriverName: "John Carter",
	})
	if err := doubleBooked.CheckInvariants(); err == nil {
		t.Fatal("double booking accepted")
	}

	idleButActive := base
	idleButActive.Vehicles = append([]model.Vehicle(nil), fixtureVehicles()...)
	idleButActive.Vehicles[0].Status = model.VehicleIdle
	if err := idleButActive.CheckInvariants(); err == nil {
		t.Fatal("idle vehicle with active task accepted")
	}

	freeDriver := base
	freeDriver.Drivers = append([]model.Driver(nil), fixtureDrivers()...)
	freeDriver.Drivers[1].Available = true
	if err := freeDriver.CheckInvariants(); err == nil {
		t.Fatal("available driver with active task accepted")
	}

	negWeight := base
	negWeight.Tasks = append([]model.CollectionTask(nil), fixtureTasks()...)
	negWeight.Tasks[3].CollectedKg = -1
	if err := negWeight.CheckInvariants(); err == nil {
		t.Fatal("negative collected weight accepted")
	}
}
