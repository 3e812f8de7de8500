package dto

import (
	"time"

	"digraph-be/pkg/editorstate"
	"digraph-be/pkg/flash"
	"digraph-be/pkg/searchquery"

	"github.com/google/uuid"
)

type TopicResponse struct {
	Id             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	ParentTopicIds []uuid.UUID `json:"parent_topic_ids"`
	IsRoot         bool        `json:"is_root"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      *time.Time  `json:"updated_at"`
}

// ShowTopicResponse is a topic page: the topic itself, the parsed search
// query with the editor seed built from it, and the matching children
type ShowTopicResponse struct {
	Topic       TopicResponse            `json:"topic"`
	Query       string                   `json:"q"`
	QueryInfo   searchquery.QueryInfo    `json:"query_info"`
	Seed        editorstate.ContentState `json:"seed"`
	ChildTopics []*TopicResponse         `json:"child_topics"`
	Links       []*LinkResponse          `json:"links"`
}

type CreateTopicRequest struct {
	Name           string      `json:"name" validate:"required,max=255"`
	Description    string      `json:"description"`
	ParentTopicIds []uuid.UUID `json:"parent_topic_ids"`
}

type UpdateTopicRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required,max=255"`
	Description *string   `json:"description"`
}

type UpdateTopicParentsRequest struct {
	Id             uuid.UUID   `json:"-"`
	ParentTopicIds []uuid.UUID `json:"parent_topic_ids" validate:"required,min=1"`
}

type TopicMutationResponse struct {
	Topic          *TopicResponse `json:"topic,omitempty"`
	DeletedTopicId *uuid.UUID     `json:"deleted_topic_id,omitempty"`
	Alerts         []flash.Alert  `json:"alerts"`
}
