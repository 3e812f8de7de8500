package service

import (
	"context"
	"encoding/json"

	"digraph-be/internal/dto"
	"digraph-be/internal/pkg/logger"
	"digraph-be/internal/repository/specification"
	"digraph-be/internal/repository/unitofwork"
	"digraph-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// TitleFetcher looks up the display title of a page
type TitleFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	fetcher        TitleFetcher
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	fetcher TitleFetcher,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		fetcher:        fetcher,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks. A page without a title is reported to the user,
// not retried.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.PublishFetchLinkTitleMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("TitleConsumer", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		return
	}

	data := map[string]interface{}{
		"entity_type": "link",
		"entity_id":   payload.LinkId.String(),
		"url":         payload.Url,
	}

	title, err := cs.fetcher.Fetch(ctx, payload.Url)
	if err != nil {
		reason := err.Error()
		cs.logger.Warn("TitleConsumer", "Title fetch failed", map[string]interface{}{
			"link_id": payload.LinkId,
			"error":   reason,
		})
		data["error"] = reason
		publishEvent(ctx, cs.eventPublisher, cs.logger, events.LinkTitleFailed, payload.UserId, data)
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	link, err := uow.LinkRepository().FindOne(ctx, specification.ByID{ID: payload.LinkId})
	if err != nil || link == nil {
		// Deleted while the page was loading
		return
	}
	if link.Title != "" {
		return
	}
	if err := uow.LinkRepository().UpdateTitle(ctx, link.Id, title); err != nil {
		cs.logger.Error("TitleConsumer", "Failed to save title", map[string]interface{}{
			"link_id": link.Id,
			"error":   err.Error(),
		})
		return
	}

	cs.logger.Info("TitleConsumer", "Title saved", map[string]interface{}{"link_id": link.Id})
	data["title"] = title
	publishEvent(ctx, cs.eventPublisher, cs.logger, events.LinkTitleFetched, payload.UserId, data)
}
