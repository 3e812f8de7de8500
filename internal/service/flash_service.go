package service

import (
	"context"
	"fmt"
	"strings"

	"digraph-be/internal/pkg/logger"
	"digraph-be/pkg/events"
	"digraph-be/pkg/flash"
	pktNats "digraph-be/pkg/nats"

	"github.com/google/uuid"
)

// EventSubscriber is satisfied by pkg/nats.Subscriber
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

// alertTemplate maps an event code to the alert shown to the acting user.
// {key} placeholders are filled from the event payload.
type alertTemplate struct {
	Type     flash.AlertType
	Template string
}

var defaultAlertTemplates = map[string]alertTemplate{
	events.LinkTitleFetched: {Type: flash.AlertSuccess, Template: "Fetched the title \"{title}\" for {url}"},
	events.LinkTitleFailed:  {Type: flash.AlertWarn, Template: "Could not fetch a title for {url}: {error}"},
}

// FlashService turns domain events from the bus into flash alerts for the
// user that caused them. Events without a template are ignored.
type FlashService struct {
	subscriber EventSubscriber
	messenger  flash.Messenger
	templates  map[string]alertTemplate
	logger     logger.ILogger
}

func NewFlashService(sub EventSubscriber, messenger flash.Messenger, log logger.ILogger) *FlashService {
	return &FlashService{
		subscriber: sub,
		messenger:  messenger,
		templates:  defaultAlertTemplates,
		logger:     log,
	}
}

// Start subscribes to every domain event with a durable consumer
func (s *FlashService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, pktNats.SubjectPrefix+">", "flash-service-worker", s.handleEvent); err != nil {
		s.logger.Error("FlashService", "Failed to start flash subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("FlashService", "Flash service started, listening to events.>", nil)
	return nil
}

func (s *FlashService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), pktNats.SubjectPrefix)

	tmpl, ok := s.templates[typeCode]
	if !ok {
		return nil
	}

	payload := event.Payload()
	raw, _ := payload["user_id"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		s.logger.Warn("FlashService", fmt.Sprintf("Event %s has no user_id", typeCode), nil)
		return nil
	}

	alert := flash.NewAlert(tmpl.Type, render(tmpl.Template, payload))
	s.messenger.AddMessage(userID, alert)
	s.logger.Info("FlashService", "Alert delivered", map[string]interface{}{"type": typeCode, "user_id": userID})
	return nil
}

func render(template string, payload map[string]interface{}) string {
	msg := template
	for k, v := range payload {
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{%s}", k), fmt.Sprintf("%v", v))
	}
	return msg
}
