package notify

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kilianp07/wasteops/core/events"
	"github.com/kilianp07/wasteops/core/model"
	"github.com/kilianp07/wasteops/internal/eventbus"
)

type captureNotifier struct {
	mu   sync.Mutex
	msgs []Notification
}

func (c *captureNotifier) Notify(n Notification) {
	c.mu.Lock()
	c.msgs = append(c.msgs, n)
	c.mu.Unlock()
}

func (c *captureNotifier) wait(t *testing.T, n int) []Notification {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		if len(c.msgs) >= n {
			out := append([]Notification(nil), c.msgs...)
			c.mu.Unlock()
			return out
		}
		c.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d notifications", n)
	return nil
}

func TestRender_Assignment(t *testing.T) {
	msg, ok := Render(events.AssignmentEvent{TaskID: "T01", VehicleID: "V002", DriverName: "Jane Smith"})
	if !ok {
		t.Fatal("assignment event not rendered")
	}
	if msg.Title != "Task assigned" || !strings.Contains(msg.Description, "Jane Smith") {
		t.Fatalf("unexpected notification: %#v", msg)
	}
}

func TestRender_Conflict(t *testing.T) {
	msg, ok := Render(events.ConflictEvent{TaskID: "T02", VehicleID: "V001", Reason: "vehicle not idle"})
	if !ok {
		t.Fatal("conflict event not rendered")
	}
	if !strings.Contains(msg.Description, "vehicle not idle") {
		t.Fatalf("reason missing from description: %#v", msg)
	}
}

func TestRender_ReleaseOutcomes(t *testing.T) {
	done, ok := Render(events.ReleaseEvent{TaskID: "T01", DriverName: "Jane Smith", Outcome: model.TaskCompleted, CollectedKg: 42})
	if !ok || done.Title != "Task completed" {
		t.Fatalf("unexpected completion notification: %#v", done)
	}
	cancelled, ok := Render(events.ReleaseEvent{TaskID: "T01", VehicleID: "V002", Outcome: model.TaskCancelled})
	if !ok || cancelled.Title != "Task cancelled" {
		t.Fatalf("unexpected cancellation notification: %#v", cancelled)
	}
}

func TestRender_IgnoresUnknownEvents(t *testing.T) {
	if _, ok := Render("not an event"); ok {
		t.Fatal("unknown event rendered")
	}
}

func TestStart_ForwardsEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	cap := &captureNotifier{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	Start(ctx, bus, cap)
	// Give the subscriber goroutine a moment to register.
	time.Sleep(10 * time.Millisecond)

	bus.Publish(events.AssignmentEvent{TaskID: "T01", VehicleID: "V002", DriverName: "Jane Smith"})
	bus.Publish(events.TaskCreatedEvent{})
	bus.Publish(events.ConflictEvent{TaskID: "T02", Reason: "task not pending"})

	msgs := cap.wait(t, 2)
	if msgs[0].Title != "Task assigned" || msgs[1].Title != "Assignment conflict" {
		t.Fatalf("unexpected notifications: %#v", msgs)
	}
}
