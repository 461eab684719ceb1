package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	coremetrics "github.com/kilianp07/wasteops/core/metrics"
	"github.com/kilianp07/wasteops/core/model"
)

func TestInfluxSink_RecordAssignment(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()
	rec := coremetrics.AssignmentRecord{
		TaskID:     "T01",
		VehicleID:  "V002",
		DriverName: "Jane Smith",
		Material:   model.MaterialPaper,
		Time:       time.Now(),
	}
	if err := sink.RecordAssignment(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if !strings.HasPrefix(body, "assignment,") {
		t.Errorf("unexpected measurement: %s", body)
	}
	for _, want := range []string{"task_id=T01", "vehicle_id=V002", "material=Paper"} {
		if !strings.Contains(body, want) {
			t.Errorf("line protocol missing %s: %s", want, body)
		}
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	cfg := coremetrics.Config{
		InfluxEnabled: true,
		InfluxURL:     srv.URL + "/api/v2/write",
		InfluxToken:   "tok",
		InfluxOrg:     "org",
		InfluxBucket:  "bucket",
	}
	sink := NewInfluxSinkWithFallback(cfg)
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
