package flash

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Queue keeps the undelivered alerts of each user in memory. Alerts of a
// user expire together once nothing has been added for ttl, and only the
// newest maxPerUser are kept.
type Queue struct {
	mu         sync.Mutex
	cache      *cache.Cache
	maxPerUser int
}

func NewQueue(ttl time.Duration, maxPerUser int) *Queue {
	if maxPerUser <= 0 {
		maxPerUser = 20
	}
	return &Queue{
		cache:      cache.New(ttl, ttl*2),
		maxPerUser: maxPerUser,
	}
}

func (q *Queue) AddMessage(userID uuid.UUID, alert Alert) {
	q.mu.Lock()
	defer q.mu.Unlock()

	alerts := append(q.get(userID), alert)
	if len(alerts) > q.maxPerUser {
		alerts = alerts[len(alerts)-q.maxPerUser:]
	}
	q.cache.Set(userID.String(), alerts, cache.DefaultExpiration)
}

func (q *Queue) RemoveMessage(userID uuid.UUID, alertID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	current := q.get(userID)
	kept := make([]Alert, 0, len(current))
	for _, a := range current {
		if a.Id != alertID {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		q.cache.Delete(userID.String())
		return
	}
	q.cache.Set(userID.String(), kept, cache.DefaultExpiration)
}

// Pending returns a copy of the queued alerts without removing them
func (q *Queue) Pending(userID uuid.UUID) []Alert {
	q.mu.Lock()
	defer q.mu.Unlock()

	current := q.get(userID)
	out := make([]Alert, len(current))
	copy(out, current)
	return out
}

// Take removes and returns the queued alerts, oldest first
func (q *Queue) Take(userID uuid.UUID) []Alert {
	q.mu.Lock()
	defer q.mu.Unlock()

	current := q.get(userID)
	q.cache.Delete(userID.String())
	if current == nil {
		return []Alert{}
	}
	return current
}

func (q *Queue) get(userID uuid.UUID) []Alert {
	if x, found := q.cache.Get(userID.String()); found {
		return x.([]Alert)
	}
	return nil
}
