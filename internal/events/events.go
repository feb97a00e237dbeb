// Package events names what the storefront announces and where it goes.
package events

import (
	"context"
	"log/slog"
)

const (
	TopicCart  = "cart_events"
	TopicOrder = "order_events"

	TypeCartItemAdded       = "cart_item_added"
	TypeCartQuantityUpdated = "cart_quantity_updated"
	TypeCartItemRemoved     = "cart_item_removed"
	TypeOrderSubmitted      = "order_submitted"
)

// Publisher is satisfied by *mykafka.Producer.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// LogPublisher writes events to the log when no broker is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	l := p.Logger
	if l == nil {
		l = slog.Default()
	}
	l.InfoContext(ctx, "event_published", "topic", topic, "key", key, "event", event)
	return nil
}
