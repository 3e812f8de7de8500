package mapper

import (
	"time"

	"digraph-be/internal/entity"
	"digraph-be/internal/model"

	"gorm.io/gorm"
)

type TopicMapper struct{}

func NewTopicMapper() *TopicMapper {
	return &TopicMapper{}
}

func (m *TopicMapper) ToEntity(t *model.Topic) *entity.Topic {
	if t == nil {
		return nil
	}
	// gorm.DeletedAt is struct { Time time.Time; Valid bool }
	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		d := t.DeletedAt.Time
		deletedAt = &d
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Topic{
		Id:             t.Id,
		Name:           t.Name,
		Description:    t.Description,
		ParentTopicIds: idsFromJSON(t.ParentTopicIds),
		UserId:         t.UserId,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      t.DeletedAt.Valid,
	}
}

func (m *TopicMapper) ToModel(t *entity.Topic) *model.Topic {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Topic{
		Id:             t.Id,
		Name:           t.Name,
		Description:    t.Description,
		ParentTopicIds: idsToJSON(t.ParentTopicIds),
		UserId:         t.UserId,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}
