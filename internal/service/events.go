package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/agrilink/pkg/events"
	"github.com/Skotchmaster/agrilink/pkg/logging"
)

const publishTimeout = 5 * time.Second

// publish sends event without failing the caller. Errors are logged.
func publish(ctx context.Context, p events.Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event["at"] = time.Now().UTC()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", topic, "type", event["type"], "error", err)
	}
}
