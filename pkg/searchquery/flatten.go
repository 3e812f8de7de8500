package searchquery

import (
	"strings"

	"digraph-be/pkg/editorstate"
)

// Flatten renders a query as editor content: a single block holding the
// topic display names followed by the phrases, with an immutable mention
// entity over each display name. genKey is called exactly once, for the
// block key.
func Flatten(info QueryInfo, genKey editorstate.KeyGenerator) editorstate.ContentState {
	if genKey == nil {
		genKey = editorstate.DefaultKeyGen
	}

	var cursor mentionCursor
	tokens := make([]string, 0, len(info.Topics)+len(info.Phrases))
	ranges := make([]editorstate.EntityRange, 0, len(info.Topics))
	entities := make(map[int]editorstate.Entity, len(info.Topics))

	for _, topic := range info.Topics {
		if topic == nil {
			continue
		}

		r := cursor.place(topic.DisplayName)
		ranges = append(ranges, r)
		entities[r.Key] = editorstate.Entity{
			Type:       editorstate.EntityTypeMention,
			Mutability: editorstate.MutabilityImmutable,
			Data: editorstate.EntityData{
				Mention: &editorstate.Mention{
					Name: topic.DisplayName,
					Link: topic.Id,
				},
			},
		}
		tokens = append(tokens, topic.DisplayName)
	}

	tokens = append(tokens, info.Phrases...)

	block := editorstate.NewBlock(genKey(), strings.Join(tokens, " "))
	block.EntityRanges = ranges

	return editorstate.ContentState{
		Blocks:    []editorstate.Block{block},
		EntityMap: entities,
	}
}
