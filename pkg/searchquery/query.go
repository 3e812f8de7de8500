// Package searchquery converts between the structured form of a topic search
// (topic mentions plus free-text phrases) and the two flat forms the client
// works with: the seeded editor content and the navigation path.
package searchquery

import (
	"strings"
)

// RootTopicID identifies the "Everything" topic. Searches that do not
// resolve to any topic are run against it.
const RootTopicID = "df63295e-ee02-11e8-9e36-17d56b662bc8"

// TopicFilterPrefix marks a query token that restricts results to a topic
const TopicFilterPrefix = "in:"

// Topic is a topic mentioned by a query
type Topic struct {
	Id          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// QueryInfo is the structured form of a search query. Topics come first in
// every flat rendering, followed by phrases.
type QueryInfo struct {
	Topics  []*Topic `json:"topics"`
	Phrases []string `json:"phrases"`
}

// Parse splits a raw query string into topic filters and phrases. Tokens of
// the form in:<topicId> become topics with an empty display name; every other
// token is a phrase. An "in:" token without an id is kept as a phrase.
func Parse(raw string) QueryInfo {
	info := QueryInfo{
		Topics:  make([]*Topic, 0),
		Phrases: make([]string, 0),
	}

	for _, token := range strings.Fields(raw) {
		id, ok := strings.CutPrefix(token, TopicFilterPrefix)
		if ok && id != "" {
			info.Topics = append(info.Topics, &Topic{Id: id})
			continue
		}
		info.Phrases = append(info.Phrases, token)
	}

	return info
}

// TopicIDs returns the ids of the mentioned topics in order, skipping nil entries
func (q QueryInfo) TopicIDs() []string {
	ids := make([]string, 0, len(q.Topics))
	for _, t := range q.Topics {
		if t == nil {
			continue
		}
		ids = append(ids, t.Id)
	}
	return ids
}

// String renders the query back into its raw form
func (q QueryInfo) String() string {
	tokens := make([]string, 0, len(q.Topics)+len(q.Phrases))
	for _, id := range q.TopicIDs() {
		tokens = append(tokens, TopicFilterPrefix+id)
	}
	tokens = append(tokens, q.Phrases...)
	return strings.Join(tokens, " ")
}

// IsEmpty reports whether the query has neither topics nor phrases
func (q QueryInfo) IsEmpty() bool {
	return len(q.TopicIDs()) == 0 && len(q.Phrases) == 0
}
