package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"digraph-be/internal/entity"
	"digraph-be/internal/repository/contract"
	"digraph-be/internal/repository/specification"
	"digraph-be/internal/repository/unitofwork"
	"digraph-be/pkg/events"
	"digraph-be/pkg/flash"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// memStore backs the in-memory repositories. Specifications are interpreted
// against plain fields instead of SQL.
type memStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]entity.User
	topics  map[uuid.UUID]entity.Topic
	links   map[uuid.UUID]entity.Link
	commits int
}

func newMemStore() *memStore {
	s := &memStore{
		users:  make(map[uuid.UUID]entity.User),
		topics: make(map[uuid.UUID]entity.Topic),
		links:  make(map[uuid.UUID]entity.Link),
	}
	s.topics[entity.RootTopicID] = entity.Topic{
		Id:             entity.RootTopicID,
		Name:           "Everything",
		ParentTopicIds: []uuid.UUID{},
		UserId:         uuid.Nil,
		CreatedAt:      time.Date(2018, 11, 22, 0, 0, 0, 0, time.UTC),
	}
	return s
}

func (s *memStore) addTopic(userId uuid.UUID, name string, createdAt time.Time, parents ...uuid.UUID) entity.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := entity.Topic{Id: uuid.New(), Name: name, ParentTopicIds: parents, UserId: userId, CreatedAt: createdAt}
	s.topics[t.Id] = t
	return t
}

func (s *memStore) addLink(userId uuid.UUID, url, title string, createdAt time.Time, parents ...uuid.UUID) entity.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := entity.Link{Id: uuid.New(), Url: url, Title: title, ParentTopicIds: parents, UserId: userId, CreatedAt: createdAt}
	s.links[l.Id] = l
	return l
}

func (s *memStore) topic(id uuid.UUID) (entity.Topic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.topics[id]
	return t, ok
}

func (s *memStore) link(id uuid.UUID) (entity.Link, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.links[id]
	return l, ok
}

// row is the subset of columns the specifications look at
type row struct {
	id        uuid.UUID
	userId    uuid.UUID
	parents   []uuid.UUID
	name      string
	email     string
	url       string
	title     string
	createdAt time.Time
}

func (r row) hasParent(id uuid.UUID) bool {
	return lo.Contains(r.parents, id)
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func matches(r row, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if r.id != s.ID {
				return false
			}
		case specification.ByIDs:
			if !lo.Contains(s.IDs, r.id) {
				return false
			}
		case specification.UserOwnedBy:
			if r.userId != s.UserID {
				return false
			}
		case specification.VisibleTo:
			if r.userId != s.UserID && r.userId != uuid.Nil {
				return false
			}
		case specification.ChildOf:
			if !r.hasParent(s.ParentID) {
				return false
			}
		case specification.ChildOfAny:
			if !lo.SomeBy(s.ParentIDs, r.hasParent) {
				return false
			}
		case specification.ByName:
			if !strings.EqualFold(r.name, s.Name) {
				return false
			}
		case specification.ByEmail:
			if !strings.EqualFold(r.email, s.Email) {
				return false
			}
		case specification.ByUrl:
			if r.url != s.Url {
				return false
			}
		case specification.LinkMatches:
			if !contains(r.title, s.Phrase) && !contains(r.url, s.Phrase) {
				return false
			}
		case specification.OrderBy, specification.Pagination:
		default:
			panic(fmt.Sprintf("memStore: unsupported specification %T", spec))
		}
	}
	return true
}

// arrange applies OrderBy and Pagination
func arrange[T any](items []T, rowOf func(T) row, specs []specification.Specification) []T {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			sort.SliceStable(items, func(i, j int) bool {
				a, b := rowOf(items[i]), rowOf(items[j])
				if s.Desc {
					a, b = b, a
				}
				if s.Field == "name" {
					return a.name < b.name
				}
				return a.createdAt.Before(b.createdAt)
			})
		case specification.Pagination:
			if s.Offset < len(items) {
				items = items[s.Offset:]
			} else {
				items = items[:0]
			}
			if s.Limit > 0 && len(items) > s.Limit {
				items = items[:s.Limit]
			}
		}
	}
	return items
}

func topicRow(t *entity.Topic) row {
	return row{id: t.Id, userId: t.UserId, parents: t.ParentTopicIds, name: t.Name, createdAt: t.CreatedAt}
}

func linkRow(l *entity.Link) row {
	return row{id: l.Id, userId: l.UserId, parents: l.ParentTopicIds, url: l.Url, title: l.Title, createdAt: l.CreatedAt}
}

func userRow(u *entity.User) row {
	return row{id: u.Id, email: u.Email, createdAt: u.CreatedAt}
}

func cloneTopic(t entity.Topic) *entity.Topic {
	t.ParentTopicIds = append([]uuid.UUID(nil), t.ParentTopicIds...)
	return &t
}

func cloneLink(l entity.Link) *entity.Link {
	l.ParentTopicIds = append([]uuid.UUID(nil), l.ParentTopicIds...)
	return &l
}

type memTopicRepo struct{ s *memStore }

func (r memTopicRepo) Create(ctx context.Context, topic *entity.Topic) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.topics[topic.Id] = *cloneTopic(*topic)
	return nil
}

func (r memTopicRepo) Update(ctx context.Context, topic *entity.Topic) error {
	return r.Create(ctx, topic)
}

func (r memTopicRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.topics, id)
	return nil
}

func (r memTopicRepo) DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, t := range r.s.topics {
		if t.UserId == userId {
			delete(r.s.topics, id)
		}
	}
	return nil
}

func (r memTopicRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Topic, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r memTopicRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Topic, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Topic, 0)
	for _, t := range r.s.topics {
		c := cloneTopic(t)
		if matches(topicRow(c), specs) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id.String() < out[j].Id.String() })
	return arrange(out, topicRow, specs), nil
}

func (r memTopicRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type memLinkRepo struct{ s *memStore }

func (r memLinkRepo) Create(ctx context.Context, link *entity.Link) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.links[link.Id] = *cloneLink(*link)
	return nil
}

func (r memLinkRepo) Update(ctx context.Context, link *entity.Link) error {
	return r.Create(ctx, link)
}

func (r memLinkRepo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.links[id]
	if ok {
		l.Title = title
		r.s.links[id] = l
	}
	return nil
}

func (r memLinkRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.links, id)
	return nil
}

func (r memLinkRepo) DeleteAllByUserIdUnscoped(ctx context.Context, userId uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, l := range r.s.links {
		if l.UserId == userId {
			delete(r.s.links, id)
		}
	}
	return nil
}

func (r memLinkRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Link, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r memLinkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Link, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Link, 0)
	for _, l := range r.s.links {
		c := cloneLink(l)
		if matches(linkRow(c), specs) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id.String() < out[j].Id.String() })
	return arrange(out, linkRow, specs), nil
}

func (r memLinkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[user.Id] = *user
	return nil
}

func (r memUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r memUserRepo) DeleteUnscoped(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	return nil
}

func (r memUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		c := u
		if matches(userRow(&c), specs) {
			return &c, nil
		}
	}
	return nil, nil
}

type memUnitOfWork struct{ s *memStore }

func (u *memUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memUnitOfWork) Rollback() error                 { return nil }
func (u *memUnitOfWork) Commit() error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.commits++
	return nil
}

func (u *memUnitOfWork) Transaction(ctx context.Context, fn func(tx unitofwork.UnitOfWork) error) error {
	if err := fn(u); err != nil {
		return err
	}
	return u.Commit()
}

func (u *memUnitOfWork) UserRepository() contract.UserRepository   { return memUserRepo{u.s} }
func (u *memUnitOfWork) TopicRepository() contract.TopicRepository { return memTopicRepo{u.s} }
func (u *memUnitOfWork) LinkRepository() contract.LinkRepository   { return memLinkRepo{u.s} }

type memFactory struct{ s *memStore }

func (f memFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUnitOfWork{s: f.s}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return lo.Map(p.events, func(e events.Event, _ int) string { return e.EventType() })
}

type recordingJobs struct {
	payloads [][]byte
}

func (j *recordingJobs) Publish(ctx context.Context, payload []byte) error {
	j.payloads = append(j.payloads, payload)
	return nil
}

type recordingMessenger struct {
	mu    sync.Mutex
	added map[uuid.UUID][]flash.Alert
}

func newRecordingMessenger() *recordingMessenger {
	return &recordingMessenger{added: make(map[uuid.UUID][]flash.Alert)}
}

func (m *recordingMessenger) AddMessage(userID uuid.UUID, alert flash.Alert) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added[userID] = append(m.added[userID], alert)
}

func (m *recordingMessenger) RemoveMessage(userID uuid.UUID, alertID string) {}
