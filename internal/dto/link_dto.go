package dto

import (
	"time"

	"digraph-be/pkg/flash"

	"github.com/google/uuid"
)

type LinkResponse struct {
	Id             uuid.UUID   `json:"id"`
	Url            string      `json:"url"`
	Title          string      `json:"title"`
	ParentTopicIds []uuid.UUID `json:"parent_topic_ids"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      *time.Time  `json:"updated_at"`
}

type UpsertLinkRequest struct {
	Url            string      `json:"url" validate:"required,max=2048"`
	Title          string      `json:"title" validate:"max=1024"`
	ParentTopicIds []uuid.UUID `json:"parent_topic_ids"`
}

type UpdateLinkRequest struct {
	Id             uuid.UUID   `json:"-"`
	Url            string      `json:"url" validate:"required,max=2048"`
	Title          string      `json:"title" validate:"max=1024"`
	ParentTopicIds []uuid.UUID `json:"parent_topic_ids"` // nil keeps the current parents
}

type LinkMutationResponse struct {
	Link          *LinkResponse `json:"link,omitempty"`
	DeletedLinkId *uuid.UUID    `json:"deleted_link_id,omitempty"`
	Alerts        []flash.Alert `json:"alerts"`
}

// PublishFetchLinkTitleMessage is the payload of a title fetch job
type PublishFetchLinkTitleMessage struct {
	LinkId uuid.UUID `json:"link_id"`
	UserId uuid.UUID `json:"user_id"`
	Url    string    `json:"url"`
}
