package memory

import (
	"sync"
	"time"

	"digraph-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ConnectionRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewConnectionRepository(ttl time.Duration) *ConnectionRepository {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ConnectionRepository{
		cache: cache.New(ttl, ttl*2),
	}
}

func (r *ConnectionRepository) List(key string) ([]uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, ok := r.get(key)
	if !ok {
		return nil, false
	}
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	return out, true
}

func (r *ConnectionRepository) SetList(key string, ids []uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]uuid.UUID, len(ids))
	copy(stored, ids)
	r.cache.Set(key, stored, cache.DefaultExpiration)
}

func (r *ConnectionRepository) InsertIntoList(key string, position contract.ListPosition, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, ok := r.get(key)
	if !ok {
		return
	}
	for _, existing := range ids {
		if existing == id {
			return
		}
	}

	next := make([]uuid.UUID, 0, len(ids)+1)
	if position == contract.Prepend {
		next = append(next, id)
		next = append(next, ids...)
	} else {
		next = append(next, ids...)
		next = append(next, id)
	}
	r.cache.Set(key, next, cache.DefaultExpiration)
}

func (r *ConnectionRepository) RemoveFromAllLists(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.cache.Items() {
		ids, ok := item.Object.([]uuid.UUID)
		if !ok {
			continue
		}
		kept := make([]uuid.UUID, 0, len(ids))
		for _, existing := range ids {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		if len(kept) != len(ids) {
			r.cache.Set(key, kept, cache.DefaultExpiration)
		}
	}
}

func (r *ConnectionRepository) Invalidate(key string) {
	r.cache.Delete(key)
}

func (r *ConnectionRepository) get(key string) ([]uuid.UUID, bool) {
	if x, found := r.cache.Get(key); found {
		return x.([]uuid.UUID), true
	}
	return nil, false
}
