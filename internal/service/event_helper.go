package service

import (
	"context"
	"fmt"

	"digraph-be/internal/pkg/logger"
	"digraph-be/pkg/events"

	"github.com/google/uuid"
)

// publishEvent is fire and forget, a broken bus must not fail the mutation
func publishEvent(ctx context.Context, pub events.Publisher, log logger.ILogger, eventType string, userId uuid.UUID, data map[string]interface{}) {
	if pub == nil {
		return
	}
	if data == nil {
		data = make(map[string]interface{})
	}
	data["user_id"] = userId.String()

	if err := pub.Publish(ctx, events.New(eventType, data)); err != nil {
		log.Warn("Events", fmt.Sprintf("Failed to publish %s", eventType), map[string]interface{}{"error": err.Error()})
	}
}

// orderByIDs returns items in the order of ids, dropping ids with no item
func orderByIDs[T any](ids []uuid.UUID, items []T, idOf func(T) uuid.UUID) []T {
	byID := make(map[uuid.UUID]T, len(items))
	for _, item := range items {
		byID[idOf(item)] = item
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out
}
