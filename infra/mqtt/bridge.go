package mqtt

import (
	"context"

	"github.com/kilianp07/wasteops/core/events"
	"github.com/kilianp07/wasteops/core/logger"
	"github.com/kilianp07/wasteops/internal/eventbus"
)

// StartBridge subscribes to the event bus and republishes dispatch events
// on MQTT topics until the context is canceled. Topics are
// <prefix>/assignments, <prefix>/conflicts, <prefix>/releases and
// <prefix>/tasks.
func StartBridge(ctx context.Context, bus eventbus.EventBus, pub Publisher, prefix string, log logger.Logger) {
	if bus == nil || pub == nil {
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
				var (
					topic   string
					payload any
				)
				switch e := ev.(type) {
				case events.TaskCreatedEvent:
					topic, payload = prefix+"/tasks", e
				case events.AssignmentEvent:
					topic, payload = prefix+"/assignments", e
				case events.ConflictEvent:
					topic, payload = prefix+"/conflicts", e
				case events.ReleaseEvent:
					topic, payload = prefix+"/releases", e
				default:
					continue
				}
				if err := pub.Publish(topic, payload); err != nil {
					log.Errorf("mqtt publish on %s: %v", topic, err)
				}
			}
		}
	}()
}
