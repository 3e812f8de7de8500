package searchquery

import (
	"strings"

	"digraph-be/pkg/editorstate"
)

// SelectionState is what the user submits from the search box: the terms in
// document order and the topics resolved while editing, keyed by display name.
type SelectionState struct {
	SearchTerms  []string          `json:"search_terms"`
	NewQueryInfo map[string]string `json:"new_query_info"`
}

// TermsFromContent reads the search terms back out of edited editor content.
// A mention contributes its covered text as a single term, so display names
// with spaces survive, and records text -> topic id in NewQueryInfo. Text
// outside mentions is split on whitespace.
func TermsFromContent(content editorstate.ContentState) SelectionState {
	state := SelectionState{
		SearchTerms:  make([]string, 0),
		NewQueryInfo: make(map[string]string),
	}

	for _, block := range content.Blocks {
		for _, seg := range splitByRanges(block.Text, block.EntityRanges) {
			if !seg.isEntity {
				state.SearchTerms = append(state.SearchTerms, strings.Fields(seg.text)...)
				continue
			}

			entity, ok := content.EntityMap[seg.entityKey]
			if !ok || entity.Type != editorstate.EntityTypeMention || entity.Data.Mention == nil {
				state.SearchTerms = append(state.SearchTerms, strings.Fields(seg.text)...)
				continue
			}

			if seg.text == "" {
				continue
			}
			state.SearchTerms = append(state.SearchTerms, seg.text)
			state.NewQueryInfo[seg.text] = entity.Data.Mention.Link
		}
	}

	return state
}

// BuildPathFromContent resolves edited editor content against the query it
// was seeded from.
func BuildPathFromContent(content editorstate.ContentState, info QueryInfo) PathResult {
	state := TermsFromContent(content)
	return Resolve(state.SearchTerms, info, state.NewQueryInfo)
}
