package events

import (
	"context"
	"time"
)

// Event defines the contract for all domain events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TOPIC_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TopicCreated      = "TOPIC_CREATED"
	TopicUpdated      = "TOPIC_UPDATED"
	TopicDeleted      = "TOPIC_DELETED"
	LinkAdded         = "LINK_ADDED"
	LinkUpdated       = "LINK_UPDATED"
	LinkDeleted       = "LINK_DELETED"
	LinkTitleFetched  = "LINK_TITLE_FETCHED"
	LinkTitleFailed   = "LINK_TITLE_FAILED"
	UserRegistered    = "USER_REGISTERED"
	UserLogin         = "USER_LOGIN"
	UserAccountClosed = "USER_ACCOUNT_CLOSED"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Publisher sends events to the bus
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
