// Package notify bridges dispatch events to the external notification
// collaborator. Delivery (toasts, chat, e-mail) lives outside this
// process; the bridge only shapes events into title and description pairs.
package notify

import (
	"context"
	"fmt"

	"github.com/kilianp07/wasteops/core/events"
	"github.com/kilianp07/wasteops/core/logger"
	"github.com/kilianp07/wasteops/core/model"
	"github.com/kilianp07/wasteops/internal/eventbus"
)

// Notification is the outbound payload for the notification collaborator.
type Notification struct {
	Title       string
	Description string
}

// Notifier delivers notifications. Implementations must not block.
type Notifier interface {
	Notify(Notification)
}

// LogNotifier writes notifications to the service log. It stands in for
// the real delivery channel during development and in tests.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the notification.
func (n *LogNotifier) Notify(msg Notification) {
	n.log.Infof("%s: %s", msg.Title, msg.Description)
}

// Start subscribes to the event bus and forwards dispatch events to the
// notifier until the context is canceled.
func Start(ctx context.Context, bus eventbus.EventBus, notifier Notifier) {
	if bus == nil || notifier == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if msg, ok := Render(ev); ok {
					notifier.Notify(msg)
				}
			}
		}
	}()
}

// Render shapes a dispatch event into a notification. The second return
// value is false for events that do not notify.
func Render(ev eventbus.Event) (Notification, bool) {
	switch e := ev.(type) {
	case events.AssignmentEvent:
		return Notification{
			Title:       "Task assigned",
			Description: fmt.Sprintf("Task %s assigned to vehicle %s with driver %s", e.TaskID, e.VehicleID, e.DriverName),
		}, true
	case events.ConflictEvent:
		desc := fmt.Sprintf("Task %s could not be dispatched: %s", e.TaskID, e.Reason)
		if e.VehicleID != "" {
			desc = fmt.Sprintf("Task %s could not be assigned to vehicle %s: %s", e.TaskID, e.VehicleID, e.Reason)
		}
		return Notification{Title: "Assignment conflict", Description: desc}, true
	case events.ReleaseEvent:
		if e.Outcome == model.TaskCompleted {
			return Notification{
				Title:       "Task completed",
				Description: fmt.Sprintf("Task %s completed by %s, %.1f kg collected", e.TaskID, e.DriverName, e.CollectedKg),
			}, true
		}
		return Notification{
			Title:       "Task cancelled",
			Description: fmt.Sprintf("Task %s cancelled, vehicle %s released", e.TaskID, e.VehicleID),
		}, true
	default:
		return Notification{}, false
	}
}
