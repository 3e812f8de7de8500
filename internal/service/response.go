package service

import (
	"digraph-be/internal/dto"
	"digraph-be/internal/entity"
)

func toTopicResponse(t *entity.Topic) *dto.TopicResponse {
	return &dto.TopicResponse{
		Id:             t.Id,
		Name:           t.Name,
		Description:    t.Description,
		ParentTopicIds: t.ParentTopicIds,
		IsRoot:         t.IsRoot(),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func toLinkResponse(l *entity.Link) *dto.LinkResponse {
	return &dto.LinkResponse{
		Id:             l.Id,
		Url:            l.Url,
		Title:          l.Title,
		ParentTopicIds: l.ParentTopicIds,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
