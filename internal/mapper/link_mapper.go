package mapper

import (
	"time"

	"digraph-be/internal/entity"
	"digraph-be/internal/model"

	"gorm.io/gorm"
)

type LinkMapper struct{}

func NewLinkMapper() *LinkMapper {
	return &LinkMapper{}
}

func (m *LinkMapper) ToEntity(l *model.Link) *entity.Link {
	if l == nil {
		return nil
	}
	var deletedAt *time.Time
	if l.DeletedAt.Valid {
		d := l.DeletedAt.Time
		deletedAt = &d
	}

	var updatedAt *time.Time
	if !l.UpdatedAt.IsZero() {
		u := l.UpdatedAt
		updatedAt = &u
	}

	return &entity.Link{
		Id:             l.Id,
		Url:            l.Url,
		Title:          l.Title,
		ParentTopicIds: idsFromJSON(l.ParentTopicIds),
		UserId:         l.UserId,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      l.DeletedAt.Valid,
	}
}

func (m *LinkMapper) ToModel(l *entity.Link) *model.Link {
	if l == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if l.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *l.DeletedAt, Valid: true}
	} else if l.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if l.UpdatedAt != nil {
		updatedAt = *l.UpdatedAt
	}

	return &model.Link{
		Id:             l.Id,
		Url:            l.Url,
		Title:          l.Title,
		ParentTopicIds: idsToJSON(l.ParentTopicIds),
		UserId:         l.UserId,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}
