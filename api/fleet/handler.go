// Package fleet exposes read-only vehicle and driver snapshots over HTTP.
package fleet

import (
	"encoding/json"
	"net/http"

	"github.com/kilianp07/wasteops/api/views"
	coredispatch "github.com/kilianp07/wasteops/core/dispatch"
)

type snapshotResponse struct {
	Vehicles []views.Vehicle `json:"vehicles"`
	Drivers  []views.Driver  `json:"drivers"`
}

type eligibilityResponse struct {
	PendingTasks     []views.Task    `json:"pending_tasks"`
	EligibleVehicles []views.Vehicle `json:"eligible_vehicles"`
}

// NewSnapshotHandler returns the handler for GET /api/fleet: the full
// vehicle and driver state from one consistent snapshot.
func NewSnapshotHandler(c *coredispatch.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		snap := c.Snapshot()
		writeJSON(w, snapshotResponse{
			Vehicles: views.NewVehicles(snap.Vehicles),
			Drivers:  views.NewDrivers(snap.Drivers),
		})
	})
}

// NewEligibilityHandler returns the handler for GET /api/fleet/eligible:
// the pending unassigned tasks (optionally narrowed by q) and the
// vehicles currently able to receive them, computed from one snapshot so
// the two sets never disagree.
func NewEligibilityHandler(c *coredispatch.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		snap := c.Snapshot()
		writeJSON(w, eligibilityResponse{
			PendingTasks:     views.NewTasks(coredispatch.PendingUnassigned(snap.Tasks, r.URL.Query().Get("q"))),
			EligibleVehicles: views.NewVehicles(coredispatch.EligibleVehicles(snap.Vehicles, snap.Drivers)),
		})
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
