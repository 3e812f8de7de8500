package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"digraph-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler is a function that processes an event.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber consumes the EVENTS stream through durable consumers.
type Subscriber struct {
	nc       *nats.Conn
	js       jetstream.JetStream
	contexts []jetstream.ConsumeContext
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	// consumers need the stream even when no publisher has started yet
	ensureStream(js)
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe registers handler for subject. A handler error naks the message
// so it is redelivered, undecodable messages are terminated.
func (s *Subscriber) Subscribe(ctx context.Context, subject string, durableName string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    5,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := decode(msg.Subject(), msg.Headers(), msg.Data())
		if err != nil {
			log.Printf("[ERROR] Dropping event on %s: %v", msg.Subject(), err)
			msg.Term()
			return
		}

		if err := handler(ctx, event); err != nil {
			log.Printf("[ERROR] Handler failed for event %s: %v", event.EventType(), err)
			msg.Nak()
			return
		}
		msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	s.contexts = append(s.contexts, cc)

	log.Printf("[INFO] Subscribed to %s with durable %s", subject, durableName)
	return nil
}

// decode rebuilds an event from a stream message. The type header wins over
// the subject.
func decode(subject string, header nats.Header, data []byte) (events.BaseEvent, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return events.BaseEvent{}, fmt.Errorf("invalid payload: %w", err)
	}

	eventType := header.Get(headerEventType)
	if eventType == "" {
		eventType = strings.TrimPrefix(subject, SubjectPrefix)
	}

	occurredAt := time.Now()
	if ts, err := time.Parse(time.RFC3339Nano, header.Get(headerOccurredAt)); err == nil {
		occurredAt = ts
	}

	return events.BaseEvent{Type: eventType, Data: payload, OccurredAt: occurredAt}, nil
}

func (s *Subscriber) Close() {
	for _, cc := range s.contexts {
		cc.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
