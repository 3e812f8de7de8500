package contract

import (
	"fmt"

	"github.com/google/uuid"
)

type ListPosition int

const (
	Prepend ListPosition = iota
	Append
)

// ConnectionRepository caches the ordered child lists of topics so that
// mutations can patch them in place instead of reloading.
type ConnectionRepository interface {
	List(key string) ([]uuid.UUID, bool)
	SetList(key string, ids []uuid.UUID)
	// InsertIntoList is a no-op when the list is not loaded or already holds id
	InsertIntoList(key string, position ListPosition, id uuid.UUID)
	RemoveFromAllLists(id uuid.UUID)
	Invalidate(key string)
}

func ChildTopicsKey(userID, topicID uuid.UUID) string {
	return fmt.Sprintf("user:%s:topic:%s:topics", userID, topicID)
}

func ChildLinksKey(userID, topicID uuid.UUID) string {
	return fmt.Sprintf("user:%s:topic:%s:links", userID, topicID)
}
