package service

import (
	"digraph-be/internal/entity"

	"github.com/google/uuid"
)

// topicGraph indexes a user's topics by parent for subtree walks
type topicGraph struct {
	children map[uuid.UUID][]uuid.UUID
}

func newTopicGraph(topics []*entity.Topic) *topicGraph {
	g := &topicGraph{children: make(map[uuid.UUID][]uuid.UUID)}
	for _, t := range topics {
		for _, p := range t.ParentTopicIds {
			g.children[p] = append(g.children[p], t.Id)
		}
	}
	return g
}

// subtree returns root and every topic below it. Cycles are tolerated.
func (g *topicGraph) subtree(root uuid.UUID) map[uuid.UUID]struct{} {
	seen := map[uuid.UUID]struct{}{root: {}}
	queue := []uuid.UUID{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range g.children[id] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			queue = append(queue, child)
		}
	}
	return seen
}

func inAny(parents []uuid.UUID, set map[uuid.UUID]struct{}) bool {
	for _, p := range parents {
		if _, ok := set[p]; ok {
			return true
		}
	}
	return false
}

func keys(set map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
