package searchquery

import (
	"fmt"
	"net/url"
	"strings"
)

// PathResult is where a submitted search navigates to
type PathResult struct {
	ParentTopicID string `json:"parent_topic_id"`
	ResidualQuery string `json:"residual_query"`
}

// Path renders the result as /topics/<id>, adding ?q= when there is a
// residual query.
func (p PathResult) Path() string {
	if p.ResidualQuery == "" {
		return fmt.Sprintf("/topics/%s", p.ParentTopicID)
	}
	return fmt.Sprintf("/topics/%s?q=%s", p.ParentTopicID, escapeQuery(p.ResidualQuery))
}

// Resolve works out the navigation target for the submitted search terms.
//
// Names are looked up in newQueryInfo overlaid with the topics already in
// info; entries from info win. The first resolved topic becomes the parent,
// later ones become in:<id> filters, and terms that are not topic names are
// carried over as phrases.
func Resolve(searchTerms []string, info QueryInfo, newQueryInfo map[string]string) PathResult {
	names := make(map[string]string, len(newQueryInfo)+len(info.Topics))
	for name, id := range newQueryInfo {
		names[name] = id
	}
	for _, topic := range info.Topics {
		if topic == nil {
			continue
		}
		names[topic.DisplayName] = topic.Id
	}

	topicIDs := make([]string, 0, len(searchTerms))
	phrases := make([]string, 0, len(searchTerms))
	for _, term := range searchTerms {
		id, known := names[term]
		if !known {
			phrases = append(phrases, term)
			continue
		}
		if id != "" {
			topicIDs = append(topicIDs, id)
		}
	}

	if len(topicIDs) < 1 {
		return PathResult{
			ParentTopicID: RootTopicID,
			ResidualQuery: strings.Join(phrases, " "),
		}
	}

	residual := make([]string, 0, len(topicIDs)-1+len(phrases))
	for _, id := range topicIDs[1:] {
		residual = append(residual, TopicFilterPrefix+id)
	}
	residual = append(residual, phrases...)

	return PathResult{
		ParentTopicID: topicIDs[0],
		ResidualQuery: strings.Join(residual, " "),
	}
}

// BuildPath is Resolve followed by Path
func BuildPath(searchTerms []string, info QueryInfo, newQueryInfo map[string]string) string {
	return Resolve(searchTerms, info, newQueryInfo).Path()
}

// escapeQuery query-escapes q but keeps ':' literal so in:<id> filters stay
// readable in the address bar.
func escapeQuery(q string) string {
	return strings.ReplaceAll(url.QueryEscape(q), "%3A", ":")
}
