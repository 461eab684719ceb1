package tasks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kilianp07/wasteops/api/views"
	coredispatch "github.com/kilianp07/wasteops/core/dispatch"
	"github.com/kilianp07/wasteops/core/model"
	"github.com/kilianp07/wasteops/core/registry"
	"github.com/kilianp07/wasteops/infra/logger"
)

func newCoordinator(t *testing.T) *coredispatch.Coordinator {
	t.Helper()
	tasks := registry.NewTasks()
	tasks.Put(model.CollectionTask{ID: "T01", CustomerName: "Greenfield Mall", Address: "12 Border Rd", Material: model.MaterialGlass, Status: model.TaskPending})
	tasks.Put(model.CollectionTask{ID: "T02", CustomerName: "Harbor Hotel", Address: "3 Quay St", Material: model.MaterialMixed, Status: model.TaskPending})
	tasks.Put(model.CollectionTask{ID: "T03", CustomerName: "City Clinic", Address: "9 Border Rd", Status: model.TaskCompleted, CollectedKg: 40})
	vehicles := registry.NewVehicles()
	drivers := registry.NewDrivers()
	c, err := coredispatch.NewCoordinator(tasks, vehicles, drivers, nil, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("coordinator: %v", err)
	}
	return c
}

func TestListHandler_All(t *testing.T) {
	h := NewListHandler(newCoordinator(t))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/tasks", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out listResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 3 || len(out.Tasks) != 3 {
		t.Fatalf("unexpected listing: %#v", out)
	}
}

func TestListHandler_StatusAndQuery(t *testing.T) {
	h := NewListHandler(newCoordinator(t))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/tasks?status=Pending&q=border", nil))
	var out listResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 1 || out.Tasks[0].ID != "T01" {
		t.Fatalf("unexpected filtered listing: %#v", out)
	}
}

func TestListHandler_Pagination(t *testing.T) {
	h := NewListHandler(newCoordinator(t))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/tasks?page=2&per_page=2", nil))
	var out listResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Total != 3 || len(out.Tasks) != 1 || out.Page != 2 {
		t.Fatalf("unexpected page: %#v", out)
	}
}

func TestPendingHandler(t *testing.T) {
	h := NewPendingHandler(newCoordinator(t))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/api/tasks/pending?q=quay", nil))
	var out []views.Task
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].ID != "T02" {
		t.Fatalf("unexpected pending set: %#v", out)
	}
}

func TestCreateHandler(t *testing.T) {
	c := newCoordinator(t)
	h := NewCreateHandler(c)
	rr := httptest.NewRecorder()
	body := `{"customer_id":"C042","customer_name":"Dockside Cafe","material":"Paper","address":"8 Pier Ave","scheduled_date":"2026-09-01"}`
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/tasks", strings.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var out views.Task
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Status != "Pending" || out.Material != "Paper" {
		t.Fatalf("unexpected created task: %#v", out)
	}
	if _, err := c.Tasks().Get(out.ID); err != nil {
		t.Fatalf("created task not stored: %v", err)
	}
}

func TestCreateHandler_BadMaterial(t *testing.T) {
	h := NewCreateHandler(newCoordinator(t))
	rr := httptest.NewRecorder()
	body := `{"customer_id":"C042","material":"Chemical","address":"8 Pier Ave"}`
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/tasks", strings.NewReader(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rr.Code)
	}
}

func TestCreateHandler_BadDate(t *testing.T) {
	h := NewCreateHandler(newCoordinator(t))
	rr := httptest.NewRecorder()
	body := `{"customer_id":"C042","material":"Paper","address":"8 Pier Ave","scheduled_date":"01/09/2026"}`
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/api/tasks", strings.NewReader(body)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rr.Code)
	}
}
