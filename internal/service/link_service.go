package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"digraph-be/internal/dto"
	"digraph-be/internal/entity"
	"digraph-be/internal/pkg/logger"
	"digraph-be/internal/repository/contract"
	"digraph-be/internal/repository/specification"
	"digraph-be/internal/repository/unitofwork"
	"digraph-be/pkg/events"
	"digraph-be/pkg/flash"
	"digraph-be/pkg/pagetitle"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type ILinkService interface {
	Upsert(ctx context.Context, userId uuid.UUID, req *dto.UpsertLinkRequest) (*dto.LinkMutationResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateLinkRequest) (*dto.LinkMutationResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.LinkMutationResponse, error)
}

type linkService struct {
	uowFactory       unitofwork.RepositoryFactory
	connections      contract.ConnectionRepository
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

func NewLinkService(
	uowFactory unitofwork.RepositoryFactory,
	connections contract.ConnectionRepository,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) ILinkService {
	return &linkService{
		uowFactory:       uowFactory,
		connections:      connections,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func normalizeLinkUrl(raw string) (string, error) {
	normalized := pagetitle.NormalizeURL(raw)
	u, err := url.ParseRequestURI(normalized)
	if err != nil || u.Host == "" {
		return "", ErrInvalidUrl
	}
	return normalized, nil
}

// Upsert adds a link, or merges the parents and title into the user's
// existing link with the same url. Links saved without a title get one
// fetched in the background.
func (c *linkService) Upsert(ctx context.Context, userId uuid.UUID, req *dto.UpsertLinkRequest) (*dto.LinkMutationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	linkUrl, err := normalizeLinkUrl(req.Url)
	if err != nil {
		return nil, err
	}
	parents, err := resolveParents(ctx, uow, userId, req.ParentTopicIds)
	if err != nil {
		return nil, err
	}

	link, err := uow.LinkRepository().FindOne(ctx,
		specification.ByUrl{Url: linkUrl},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	var alert flash.Alert
	eventType := events.LinkAdded
	if link != nil {
		now := time.Now()
		link.ParentTopicIds = lo.Union(link.ParentTopicIds, parents)
		if req.Title != "" {
			link.Title = req.Title
		}
		link.UpdatedAt = &now
		if err := uow.LinkRepository().Update(ctx, link); err != nil {
			return nil, err
		}
		alert = flash.Warn(fmt.Sprintf("Link %s was already saved, updated it", link.Url))
		eventType = events.LinkUpdated
	} else {
		link = &entity.Link{
			Id:             uuid.New(),
			Url:            linkUrl,
			Title:          req.Title,
			ParentTopicIds: parents,
			UserId:         userId,
			CreatedAt:      time.Now(),
		}
		if err := uow.LinkRepository().Create(ctx, link); err != nil {
			return nil, err
		}
		alert = flash.Success(fmt.Sprintf("Added link %s", link.Url))
	}

	for _, parent := range parents {
		c.connections.InsertIntoList(contract.ChildLinksKey(userId, parent), contract.Prepend, link.Id)
	}

	if link.Title == "" {
		c.requestTitle(ctx, userId, link)
	}

	publishEvent(ctx, c.eventPublisher, c.logger, eventType, userId, map[string]interface{}{
		"entity_type": "link",
		"entity_id":   link.Id.String(),
		"url":         link.Url,
	})

	return &dto.LinkMutationResponse{
		Link:   toLinkResponse(link),
		Alerts: []flash.Alert{alert},
	}, nil
}

func (c *linkService) requestTitle(ctx context.Context, userId uuid.UUID, link *entity.Link) {
	if c.publisherService == nil {
		return
	}
	msg := dto.PublishFetchLinkTitleMessage{
		LinkId: link.Id,
		UserId: userId,
		Url:    link.Url,
	}
	msgJson, _ := json.Marshal(msg)
	if err := c.publisherService.Publish(ctx, msgJson); err != nil {
		c.logger.Warn("LinkService", "Failed to queue title fetch", map[string]interface{}{
			"link_id": link.Id,
			"error":   err.Error(),
		})
	}
}

func (c *linkService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateLinkRequest) (*dto.LinkMutationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	link, err := uow.LinkRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}

	linkUrl, err := normalizeLinkUrl(req.Url)
	if err != nil {
		return nil, err
	}
	if linkUrl != link.Url {
		taken, err := uow.LinkRepository().Count(ctx,
			specification.ByUrl{Url: linkUrl},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, ErrLinkUrlTaken
		}
	}

	moved := false
	if req.ParentTopicIds != nil {
		parents, err := resolveParents(ctx, uow, userId, req.ParentTopicIds)
		if err != nil {
			return nil, err
		}
		moved = !lo.ElementsMatch(parents, link.ParentTopicIds)
		link.ParentTopicIds = parents
	}

	now := time.Now()
	link.Url = linkUrl
	link.Title = req.Title
	link.UpdatedAt = &now
	if err := uow.LinkRepository().Update(ctx, link); err != nil {
		return nil, err
	}

	if moved {
		c.connections.RemoveFromAllLists(link.Id)
		for _, parent := range link.ParentTopicIds {
			c.connections.InsertIntoList(contract.ChildLinksKey(userId, parent), contract.Prepend, link.Id)
		}
	}
	if link.Title == "" {
		c.requestTitle(ctx, userId, link)
	}

	publishEvent(ctx, c.eventPublisher, c.logger, events.LinkUpdated, userId, map[string]interface{}{
		"entity_type": "link",
		"entity_id":   link.Id.String(),
		"url":         link.Url,
	})

	return &dto.LinkMutationResponse{
		Link:   toLinkResponse(link),
		Alerts: []flash.Alert{flash.Success(fmt.Sprintf("Updated link %s", link.Url))},
	}, nil
}

func (c *linkService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.LinkMutationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	link, err := uow.LinkRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}

	if err := uow.LinkRepository().Delete(ctx, id); err != nil {
		return nil, err
	}
	c.connections.RemoveFromAllLists(id)

	publishEvent(ctx, c.eventPublisher, c.logger, events.LinkDeleted, userId, map[string]interface{}{
		"entity_type": "link",
		"entity_id":   id.String(),
		"url":         link.Url,
	})

	return &dto.LinkMutationResponse{
		DeletedLinkId: &id,
		Alerts:        []flash.Alert{flash.Success(fmt.Sprintf("Deleted link %s", link.Url))},
	}, nil
}
