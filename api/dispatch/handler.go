// Package dispatch exposes the assignment commands over HTTP. Handlers
// call the coordinator synchronously and only echo committed state, so a
// client never sees an assignment the engine did not accept.
package dispatch

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/wasteops/api/views"
	coredispatch "github.com/kilianp07/wasteops/core/dispatch"
	"github.com/kilianp07/wasteops/core/model"
	"github.com/kilianp07/wasteops/core/registry"
)

type assignRequest struct {
	TaskID    string `json:"task_id"`
	VehicleID string `json:"vehicle_id"`
}

type releaseRequest struct {
	TaskID      string  `json:"task_id"`
	Outcome     string  `json:"outcome"`
	CollectedKg float64 `json:"collected_kg"`
	Notes       string  `json:"notes"`
	PhotoRef    string  `json:"photo_ref"`
}

type conflictResponse struct {
	Error     string `json:"error"`
	Reason    string `json:"reason"`
	TaskID    string `json:"task_id"`
	VehicleID string `json:"vehicle_id,omitempty"`
}

// NewAssignHandler returns the handler for POST /api/dispatch/assign.
func NewAssignHandler(c *coredispatch.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req assignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.TaskID == "" || req.VehicleID == "" {
			http.Error(w, "task_id and vehicle_id are required", http.StatusBadRequest)
			return
		}
		if err := c.Assign(req.TaskID, req.VehicleID); err != nil {
			writeDispatchError(w, err)
			return
		}
		task, err := c.Tasks().Get(req.TaskID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, views.NewTask(task))
	})
}

// NewReleaseHandler returns the handler for POST /api/dispatch/release.
// Outcome "Completed" finalizes the collected weight; "Cancelled" ignores it.
func NewReleaseHandler(c *coredispatch.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req releaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		var err error
		switch req.Outcome {
		case "Completed":
			err = c.ReportCompletion(req.TaskID, req.CollectedKg, req.Notes, req.PhotoRef)
		case "Cancelled":
			err = c.Release(req.TaskID, model.TaskCancelled, 0)
		default:
			http.Error(w, "outcome must be Completed or Cancelled", http.StatusBadRequest)
			return
		}
		if err != nil {
			writeDispatchError(w, err)
			return
		}
		task, err := c.Tasks().Get(req.TaskID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, views.NewTask(task))
	})
}

// writeDispatchError maps coordinator errors onto HTTP statuses: missing
// ids are 404, conflicts 409 with the failed precondition, invariant
// defects 500.
func writeDispatchError(w http.ResponseWriter, err error) {
	var nf registry.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, conflictResponse{Error: nf.Error(), TaskID: nf.ID})
		return
	}
	var conflict coredispatch.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, conflictResponse{
			Error:     conflict.Error(),
			Reason:    conflict.Reason.String(),
			TaskID:    conflict.TaskID,
			VehicleID: conflict.VehicleID,
		})
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
