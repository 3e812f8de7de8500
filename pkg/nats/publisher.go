package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"digraph-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher implements events.Publisher on JetStream
type Publisher struct {
	nc *nats.Conn
	js jetstream.JetStream
}

func NewPublisher(url string) (*Publisher, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	ensureStream(js)
	return &Publisher{nc: nc, js: js}, nil
}

// Subject is the NATS subject an event type is published on
func Subject(eventType string) string {
	return SubjectPrefix + eventType
}

// encode is the inverse of decode: the payload is the body, type and time
// travel as headers
func encode(event events.Event) (*nats.Msg, error) {
	data, err := json.Marshal(event.Payload())
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", event.EventType(), err)
	}
	msg := nats.NewMsg(Subject(event.EventType()))
	msg.Data = data
	msg.Header.Set(headerEventType, event.EventType())
	msg.Header.Set(headerOccurredAt, event.Timestamp().UTC().Format(time.RFC3339Nano))
	return msg, nil
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}
	if _, err := p.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", msg.Subject, err)
	}
	return nil
}

func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
