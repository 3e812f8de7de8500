package flash

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestQueueAddTakeRemove(t *testing.T) {
	q := NewQueue(time.Minute, 10)
	user := uuid.New()
	other := uuid.New()

	first := Success("Topic created")
	second := Warn("Link already exists")
	q.AddMessage(user, first)
	q.AddMessage(user, second)
	q.AddMessage(other, Error("nope"))

	assert.Equal(t, []Alert{first, second}, q.Pending(user))

	q.RemoveMessage(user, first.Id)
	assert.Equal(t, []Alert{second}, q.Pending(user))

	assert.Equal(t, []Alert{second}, q.Take(user))
	assert.Empty(t, q.Take(user))
	assert.Len(t, q.Pending(other), 1)
}

func TestQueueKeepsNewest(t *testing.T) {
	q := NewQueue(time.Minute, 2)
	user := uuid.New()

	a, b, c := Success("a"), Success("b"), Success("c")
	q.AddMessage(user, a)
	q.AddMessage(user, b)
	q.AddMessage(user, c)

	assert.Equal(t, []Alert{b, c}, q.Take(user))
}

func TestQueueExpires(t *testing.T) {
	q := NewQueue(20*time.Millisecond, 5)
	user := uuid.New()
	q.AddMessage(user, Success("soon gone"))

	assert.Eventually(t, func() bool {
		return len(q.Pending(user)) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestQueueConcurrentAdds(t *testing.T) {
	q := NewQueue(time.Minute, 1000)
	user := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.AddMessage(user, Success("x"))
		}()
	}
	wg.Wait()

	assert.Len(t, q.Take(user), 50)
}

type recorder struct {
	added   []Alert
	removed []string
}

func (r *recorder) AddMessage(_ uuid.UUID, alert Alert)      { r.added = append(r.added, alert) }
func (r *recorder) RemoveMessage(_ uuid.UUID, alertID string) { r.removed = append(r.removed, alertID) }

func TestDrainAndFanout(t *testing.T) {
	left, right := &recorder{}, &recorder{}
	fan := Fanout{left, nil, right}
	alerts := []Alert{Success("one"), Error("two")}

	Drain(fan, uuid.New(), alerts)
	fan.RemoveMessage(uuid.New(), alerts[0].Id)

	assert.Equal(t, alerts, left.added)
	assert.Equal(t, alerts, right.added)
	assert.Equal(t, []string{alerts[0].Id}, right.removed)

	Drain(nil, uuid.New(), alerts)
}
