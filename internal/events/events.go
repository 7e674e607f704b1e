// Package events publishes property change notifications to a message broker.
package events

import (
	"context"
	"time"
)

// Action names what happened to a property.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// PropertyEvent is the JSON message body.
type PropertyEvent struct {
	Action     Action    `json:"action"`
	PropertyID string    `json:"propertyId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RoutingKey returns the topic routing key for an action, e.g. "property.created".
func RoutingKey(a Action) string {
	return "property." + string(a)
}

// Publisher emits property change events.
type Publisher interface {
	PublishPropertyEvent(ctx context.Context, action Action, propertyID string) error
	Close() error
}

// NoopPublisher discards events. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPropertyEvent(context.Context, Action, string) error { return nil }

func (NoopPublisher) Close() error { return nil }
