// Package tasks exposes task listing and scheduling over HTTP.
package tasks

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/wasteops/api/views"
	coredispatch "github.com/kilianp07/wasteops/core/dispatch"
	"github.com/kilianp07/wasteops/core/model"
)

const defaultPageSize = 20

type listResponse struct {
	Tasks   []views.Task `json:"tasks"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
}

type createRequest struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	Material      string `json:"material"`
	Address       string `json:"address"`
	ScheduledDate string `json:"scheduled_date"`
}

// NewTasksHandler serves /api/tasks: listing on GET, scheduling on POST.
func NewTasksHandler(c *coredispatch.Coordinator) http.Handler {
	list := NewListHandler(c)
	create := NewCreateHandler(c)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list.ServeHTTP(w, r)
		case http.MethodPost:
			create.ServeHTTP(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// NewListHandler returns the handler for GET /api/tasks. Query parameters:
// q (substring on address/customer), status (task status name), page and
// per_page. Listing is a pure read over a consistent snapshot.
func NewListHandler(c *coredispatch.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		snap := c.Snapshot()
		tasks := snap.Tasks
		if status := r.URL.Query().Get("status"); status != "" {
			var filtered []model.CollectionTask
			for _, t := range tasks {
				if t.Status.String() == status {
					filtered = append(filtered, t)
				}
			}
			tasks = filtered
		}
		if q := r.URL.Query().Get("q"); q != "" {
			tasks = filterByQuery(tasks, q)
		}

		page := queryInt(r, "page", 1)
		perPage := queryInt(r, "per_page", defaultPageSize)
		total := len(tasks)
		start := (page - 1) * perPage
		if start > total {
			start = total
		}
		end := start + perPage
		if end > total {
			end = total
		}
		writeJSON(w, http.StatusOK, listResponse{
			Tasks:   views.NewTasks(tasks[start:end]),
			Total:   total,
			Page:    page,
			PerPage: perPage,
		})
	})
}

// NewPendingHandler returns the handler for GET /api/tasks/pending: the
// pending, unassigned tasks as seen by the eligibility filter.
func NewPendingHandler(c *coredispatch.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		pending := c.PendingTasks(r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, views.NewTasks(pending))
	})
}

// NewCreateHandler returns the handler for POST /api/tasks: the inbound
// scheduling boundary. The created task starts Pending.
func NewCreateHandler(c *coredispatch.Coordinator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		material, ok := model.MaterialTypeFromString(req.Material)
		if !ok {
			http.Error(w, "unknown material type", http.StatusBadRequest)
			return
		}
		var scheduled time.Time
		if req.ScheduledDate != "" {
			var err error
			scheduled, err = time.Parse("2006-01-02", req.ScheduledDate)
			if err != nil {
				http.Error(w, "scheduled_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
		}
		task, err := c.CreateTask(req.CustomerID, req.CustomerName, material, req.Address, scheduled)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, views.NewTask(task))
	})
}

// filterByQuery narrows tasks of any status by a case-insensitive
// substring match on the address or customer name, mirroring the
// eligibility filter's text predicate.
func filterByQuery(tasks []model.CollectionTask, q string) []model.CollectionTask {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return tasks
	}
	var res []model.CollectionTask
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Address), q) ||
			strings.Contains(strings.ToLower(t.CustomerName), q) {
			res = append(res, t)
		}
	}
	return res
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
