package dto

import (
	"digraph-be/pkg/editorstate"
	"digraph-be/pkg/searchquery"
)

// SearchPathRequest takes either the raw terms with the names resolved
// while editing, or the edited editor content to read them from
type SearchPathRequest struct {
	SearchTerms  []string                  `json:"search_terms"`
	NewQueryInfo map[string]string         `json:"new_query_info"`
	Content      *editorstate.ContentState `json:"content"`
	QueryInfo    searchquery.QueryInfo     `json:"query_info"`
}

type SearchPathResponse struct {
	Path          string `json:"path"`
	ParentTopicId string `json:"parent_topic_id"`
	ResidualQuery string `json:"residual_query"`
}

type SearchSeedRequest struct {
	QueryInfo searchquery.QueryInfo `json:"query_info"`
}
