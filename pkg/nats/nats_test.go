package nats

import (
	"testing"
	"time"

	"digraph-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		subject  string
		header   nats.Header
		data     string
		wantType string
		wantAt   *time.Time
		wantErr  bool
	}{
		{
			name:     "header type",
			subject:  "events.LINK_TITLE_FETCHED",
			header:   nats.Header{headerEventType: []string{"LINK_TITLE_FETCHED"}, headerOccurredAt: []string{at.Format(time.RFC3339Nano)}},
			data:     `{"title":"Frotz"}`,
			wantType: "LINK_TITLE_FETCHED",
			wantAt:   &at,
		},
		{
			name:     "falls back to subject",
			subject:  "events.TOPIC_CREATED",
			header:   nats.Header{},
			data:     `{}`,
			wantType: "TOPIC_CREATED",
		},
		{
			name:    "bad payload",
			subject: "events.X",
			header:  nats.Header{},
			data:    `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := decode(tt.subject, tt.header, []byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, event.EventType())
			if tt.wantAt != nil {
				assert.True(t, tt.wantAt.Equal(event.Timestamp()))
			}
		})
	}
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "events.LINK_ADDED", Subject("LINK_ADDED"))
}

func TestEncodeDecodesBack(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	event := events.BaseEvent{Type: events.UserLogin, Data: map[string]interface{}{"device": "curl"}, OccurredAt: at}

	msg, err := encode(event)
	require.NoError(t, err)
	assert.Equal(t, "events.USER_LOGIN", msg.Subject)
	assert.Equal(t, "2024-03-01T09:00:00Z", msg.Header.Get(headerOccurredAt))

	back, err := decode(msg.Subject, msg.Header, msg.Data)
	require.NoError(t, err)
	assert.Equal(t, events.UserLogin, back.EventType())
	assert.Equal(t, "curl", back.Payload()["device"])
	assert.True(t, at.Equal(back.Timestamp()))
}
