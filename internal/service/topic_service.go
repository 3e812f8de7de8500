package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"digraph-be/internal/dto"
	"digraph-be/internal/entity"
	"digraph-be/internal/pkg/logger"
	"digraph-be/internal/repository/contract"
	"digraph-be/internal/repository/specification"
	"digraph-be/internal/repository/unitofwork"
	"digraph-be/pkg/editorstate"
	"digraph-be/pkg/events"
	"digraph-be/pkg/flash"
	"digraph-be/pkg/searchquery"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const searchResultLimit = 200

type ITopicService interface {
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID, q string) (*dto.ShowTopicResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTopicRequest) (*dto.TopicMutationResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTopicRequest) (*dto.TopicMutationResponse, error)
	UpdateParents(ctx context.Context, userId uuid.UUID, req *dto.UpdateTopicParentsRequest) (*dto.TopicMutationResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.TopicMutationResponse, error)
}

type topicService struct {
	uowFactory     unitofwork.RepositoryFactory
	connections    contract.ConnectionRepository
	eventPublisher events.Publisher
	keyGen         editorstate.KeyGenerator
	logger         logger.ILogger
}

func NewTopicService(
	uowFactory unitofwork.RepositoryFactory,
	connections contract.ConnectionRepository,
	eventPublisher events.Publisher,
	log logger.ILogger,
) ITopicService {
	return &topicService{
		uowFactory:     uowFactory,
		connections:    connections,
		eventPublisher: eventPublisher,
		keyGen:         editorstate.DefaultKeyGen,
		logger:         log,
	}
}

// Show returns a topic page. Without a query the direct children are listed,
// with one the whole subtree is searched.
func (c *topicService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID, q string) (*dto.ShowTopicResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	topic, err := uow.TopicRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.VisibleTo{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}

	info, err := c.resolveQuery(ctx, uow, userId, q)
	if err != nil {
		return nil, err
	}

	var childTopics []*entity.Topic
	var links []*entity.Link
	if info.IsEmpty() {
		if childTopics, err = c.childTopics(ctx, uow, userId, id); err != nil {
			return nil, err
		}
		if links, err = c.childLinks(ctx, uow, userId, id); err != nil {
			return nil, err
		}
	} else {
		if childTopics, links, err = c.search(ctx, uow, userId, id, info); err != nil {
			return nil, err
		}
	}

	return &dto.ShowTopicResponse{
		Topic:     *toTopicResponse(topic),
		Query:     info.String(),
		QueryInfo: info,
		Seed:      searchquery.Flatten(info, c.keyGen),
		ChildTopics: lo.Map(childTopics, func(t *entity.Topic, _ int) *dto.TopicResponse {
			return toTopicResponse(t)
		}),
		Links: lo.Map(links, func(l *entity.Link, _ int) *dto.LinkResponse {
			return toLinkResponse(l)
		}),
	}, nil
}

// resolveQuery parses q and fills in the display names of the in: topics.
// Ids that are malformed or not visible to the user are dropped.
func (c *topicService) resolveQuery(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, q string) (searchquery.QueryInfo, error) {
	info := searchquery.Parse(q)

	ids := lo.FilterMap(info.TopicIDs(), func(raw string, _ int) (uuid.UUID, bool) {
		id, err := uuid.Parse(raw)
		return id, err == nil
	})
	info.Topics = make([]*searchquery.Topic, 0, len(ids))
	if len(ids) == 0 {
		return info, nil
	}

	found, err := uow.TopicRepository().FindAll(ctx,
		specification.ByIDs{IDs: lo.Uniq(ids)},
		specification.VisibleTo{UserID: userId},
	)
	if err != nil {
		return info, err
	}
	names := lo.SliceToMap(found, func(t *entity.Topic) (uuid.UUID, string) {
		return t.Id, t.Name
	})

	for _, id := range ids {
		if name, ok := names[id]; ok {
			info.Topics = append(info.Topics, &searchquery.Topic{Id: id.String(), DisplayName: name})
		}
	}
	return info, nil
}

func (c *topicService) childTopics(ctx context.Context, uow unitofwork.UnitOfWork, userId, parentId uuid.UUID) ([]*entity.Topic, error) {
	key := contract.ChildTopicsKey(userId, parentId)
	if ids, ok := c.connections.List(key); ok {
		if len(ids) == 0 {
			return []*entity.Topic{}, nil
		}
		topics, err := uow.TopicRepository().FindAll(ctx,
			specification.ByIDs{IDs: ids},
			specification.VisibleTo{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		return orderByIDs(ids, topics, func(t *entity.Topic) uuid.UUID { return t.Id }), nil
	}

	topics, err := uow.TopicRepository().FindAll(ctx,
		specification.ChildOf{ParentID: parentId},
		specification.VisibleTo{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	c.connections.SetList(key, lo.Map(topics, func(t *entity.Topic, _ int) uuid.UUID { return t.Id }))
	return topics, nil
}

func (c *topicService) childLinks(ctx context.Context, uow unitofwork.UnitOfWork, userId, parentId uuid.UUID) ([]*entity.Link, error) {
	key := contract.ChildLinksKey(userId, parentId)
	if ids, ok := c.connections.List(key); ok {
		if len(ids) == 0 {
			return []*entity.Link{}, nil
		}
		links, err := uow.LinkRepository().FindAll(ctx,
			specification.ByIDs{IDs: ids},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		return orderByIDs(ids, links, func(l *entity.Link) uuid.UUID { return l.Id }), nil
	}

	links, err := uow.LinkRepository().FindAll(ctx,
		specification.ChildOf{ParentID: parentId},
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	c.connections.SetList(key, lo.Map(links, func(l *entity.Link, _ int) uuid.UUID { return l.Id }))
	return links, nil
}

// search finds topics and links anywhere below topicId that also sit below
// every in: topic of the query and match every phrase
func (c *topicService) search(ctx context.Context, uow unitofwork.UnitOfWork, userId, topicId uuid.UUID, info searchquery.QueryInfo) ([]*entity.Topic, []*entity.Link, error) {
	all, err := uow.TopicRepository().FindAll(ctx, specification.VisibleTo{UserID: userId})
	if err != nil {
		return nil, nil, err
	}
	graph := newTopicGraph(all)
	scope := graph.subtree(topicId)

	filters := make([]map[uuid.UUID]struct{}, 0, len(info.Topics))
	for _, raw := range info.TopicIDs() {
		filters = append(filters, graph.subtree(uuid.MustParse(raw)))
	}

	phrases := lo.Map(info.Phrases, func(p string, _ int) string { return strings.ToLower(p) })
	topics := lo.Filter(all, func(t *entity.Topic, _ int) bool {
		if t.Id == topicId || !inAny(t.ParentTopicIds, scope) {
			return false
		}
		for _, f := range filters {
			if !inAny(t.ParentTopicIds, f) {
				return false
			}
		}
		name := strings.ToLower(t.Name)
		return lo.EveryBy(phrases, func(p string) bool { return strings.Contains(name, p) })
	})
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	if len(topics) > searchResultLimit {
		topics = topics[:searchResultLimit]
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.ChildOfAny{ParentIDs: keys(scope)},
	}
	for _, f := range filters {
		specs = append(specs, specification.ChildOfAny{ParentIDs: keys(f)})
	}
	for _, p := range info.Phrases {
		specs = append(specs, specification.LinkMatches{Phrase: p})
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: searchResultLimit},
	)

	links, err := uow.LinkRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, nil, err
	}
	return topics, links, nil
}

// resolveParents dedupes ids, defaults to the root topic, and checks every
// parent is visible to the user
func resolveParents(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	parents := lo.Uniq(ids)
	if len(parents) == 0 {
		return []uuid.UUID{entity.RootTopicID}, nil
	}
	count, err := uow.TopicRepository().Count(ctx,
		specification.ByIDs{IDs: parents},
		specification.VisibleTo{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if int(count) != len(parents) {
		return nil, ErrParentNotFound
	}
	return parents, nil
}

func (c *topicService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTopicRequest) (*dto.TopicMutationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrTopicNameBlank
	}

	parents, err := resolveParents(ctx, uow, userId, req.ParentTopicIds)
	if err != nil {
		return nil, err
	}

	sameName, err := uow.TopicRepository().FindAll(ctx,
		specification.ByName{Name: name},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	for _, existing := range sameName {
		if lo.SomeBy(parents, existing.HasParent) {
			return &dto.TopicMutationResponse{
				Topic:  toTopicResponse(existing),
				Alerts: []flash.Alert{flash.Warn(fmt.Sprintf("A topic with the name %q already exists", existing.Name))},
			}, nil
		}
	}

	topic := entity.Topic{
		Id:             uuid.New(),
		Name:           name,
		Description:    req.Description,
		ParentTopicIds: parents,
		UserId:         userId,
		CreatedAt:      time.Now(),
	}
	if err := uow.TopicRepository().Create(ctx, &topic); err != nil {
		return nil, err
	}

	for _, parent := range parents {
		c.connections.InsertIntoList(contract.ChildTopicsKey(userId, parent), contract.Prepend, topic.Id)
	}

	publishEvent(ctx, c.eventPublisher, c.logger, events.TopicCreated, userId, map[string]interface{}{
		"entity_type": "topic",
		"entity_id":   topic.Id.String(),
		"name":        topic.Name,
	})

	return &dto.TopicMutationResponse{
		Topic:  toTopicResponse(&topic),
		Alerts: []flash.Alert{flash.Success(fmt.Sprintf("Created topic %q", topic.Name))},
	}, nil
}

// ownedTopic loads a topic the user may change
func ownedTopic(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Topic, error) {
	if id == entity.RootTopicID {
		return nil, ErrRootTopicImmutable
	}
	topic, err := uow.TopicRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	return topic, nil
}

func (c *topicService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateTopicRequest) (*dto.TopicMutationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	topic, err := ownedTopic(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrTopicNameBlank
	}

	now := time.Now()
	topic.Name = name
	if req.Description != nil {
		topic.Description = *req.Description
	}
	topic.UpdatedAt = &now

	if err := uow.TopicRepository().Update(ctx, topic); err != nil {
		return nil, err
	}

	publishEvent(ctx, c.eventPublisher, c.logger, events.TopicUpdated, userId, map[string]interface{}{
		"entity_type": "topic",
		"entity_id":   topic.Id.String(),
		"name":        topic.Name,
	})

	return &dto.TopicMutationResponse{
		Topic:  toTopicResponse(topic),
		Alerts: []flash.Alert{flash.Success(fmt.Sprintf("Updated topic %q", topic.Name))},
	}, nil
}

func (c *topicService) UpdateParents(ctx context.Context, userId uuid.UUID, req *dto.UpdateTopicParentsRequest) (*dto.TopicMutationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	topic, err := ownedTopic(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}
	if lo.Contains(req.ParentTopicIds, topic.Id) {
		return nil, ErrTopicOwnParent
	}

	parents, err := resolveParents(ctx, uow, userId, req.ParentTopicIds)
	if err != nil {
		return nil, err
	}

	all, err := uow.TopicRepository().FindAll(ctx, specification.VisibleTo{UserID: userId})
	if err != nil {
		return nil, err
	}
	if inAny(parents, newTopicGraph(all).subtree(topic.Id)) {
		return nil, ErrTopicCycle
	}

	now := time.Now()
	topic.ParentTopicIds = parents
	topic.UpdatedAt = &now
	if err := uow.TopicRepository().Update(ctx, topic); err != nil {
		return nil, err
	}

	c.connections.RemoveFromAllLists(topic.Id)
	for _, parent := range parents {
		c.connections.InsertIntoList(contract.ChildTopicsKey(userId, parent), contract.Prepend, topic.Id)
	}

	publishEvent(ctx, c.eventPublisher, c.logger, events.TopicUpdated, userId, map[string]interface{}{
		"entity_type": "topic",
		"entity_id":   topic.Id.String(),
		"name":        topic.Name,
	})

	return &dto.TopicMutationResponse{
		Topic:  toTopicResponse(topic),
		Alerts: []flash.Alert{flash.Success(fmt.Sprintf("Moved topic %q", topic.Name))},
	}, nil
}

// Delete removes a topic. Children that lose their last parent move to the
// root topic.
func (c *topicService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.TopicMutationResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	topic, err := ownedTopic(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	var orphanTopics, orphanLinks []uuid.UUID
	err = uow.Transaction(ctx, func(tx unitofwork.UnitOfWork) error {
		childTopics, err := tx.TopicRepository().FindAll(ctx,
			specification.ChildOf{ParentID: id},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		for _, child := range childTopics {
			if reparentToRoot(&child.ParentTopicIds, id) {
				orphanTopics = append(orphanTopics, child.Id)
			}
			if err := tx.TopicRepository().Update(ctx, child); err != nil {
				return err
			}
		}

		childLinks, err := tx.LinkRepository().FindAll(ctx,
			specification.ChildOf{ParentID: id},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return err
		}
		for _, link := range childLinks {
			if reparentToRoot(&link.ParentTopicIds, id) {
				orphanLinks = append(orphanLinks, link.Id)
			}
			if err := tx.LinkRepository().Update(ctx, link); err != nil {
				return err
			}
		}

		return tx.TopicRepository().Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	c.connections.RemoveFromAllLists(id)
	c.connections.Invalidate(contract.ChildTopicsKey(userId, id))
	c.connections.Invalidate(contract.ChildLinksKey(userId, id))
	for _, orphan := range orphanTopics {
		c.connections.InsertIntoList(contract.ChildTopicsKey(userId, entity.RootTopicID), contract.Append, orphan)
	}
	for _, orphan := range orphanLinks {
		c.connections.InsertIntoList(contract.ChildLinksKey(userId, entity.RootTopicID), contract.Append, orphan)
	}

	publishEvent(ctx, c.eventPublisher, c.logger, events.TopicDeleted, userId, map[string]interface{}{
		"entity_type": "topic",
		"entity_id":   id.String(),
		"name":        topic.Name,
	})

	return &dto.TopicMutationResponse{
		DeletedTopicId: &id,
		Alerts:         []flash.Alert{flash.Success(fmt.Sprintf("Deleted topic %q", topic.Name))},
	}, nil
}

// reparentToRoot drops removed from parents and falls back to the root when
// nothing is left. It reports whether the fallback happened.
func reparentToRoot(parents *[]uuid.UUID, removed uuid.UUID) bool {
	*parents = lo.Without(*parents, removed)
	if len(*parents) == 0 {
		*parents = []uuid.UUID{entity.RootTopicID}
		return true
	}
	return false
}
