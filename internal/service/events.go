package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/cofy_shop/internal/logging"
)

const (
	TopicUserEvents    = "user_events"
	TopicCartEvents    = "cart_events"
	TopicBookingEvents = "booking_events"
	TopicProductEvents = "product_events"
)

// EventPublisher is satisfied by mykafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event map[string]any) error
}

// publish sends a domain event best-effort: a broker failure is logged
// and never fails the request that produced it.
func publish(ctx context.Context, p EventPublisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event publish error", "topic", topic, "error", err)
	}
}
