package websocket

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frame struct {
	kind int
	data []byte
}

type fakeConn struct {
	inbound chan frame

	mu      sync.Mutex
	written []frame
	closed  bool
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbound: make(chan frame, 8)}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	fr, ok := <-f.inbound
	if !ok {
		return 0, nil, errors.New("connection closed")
	}
	return fr.kind, fr.data, nil
}

func (f *fakeConn) WriteMessage(kind int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, frame{kind, data})
	return nil
}

func (f *fakeConn) SetReadLimit(int64)                {}
func (f *fakeConn) SetReadDeadline(time.Time) error   { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error  { return nil }
func (f *fakeConn) SetPongHandler(func(string) error) {}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) frames() []frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]frame(nil), f.written...)
}

func TestClient_WritePumpSendsFramesThenCloses(t *testing.T) {
	hub, _ := startHub(t)
	fc := newFakeConn()
	client := newClient(hub, fc, uuid.New())

	client.Send <- []byte(`{"type":"flash.add"}`)
	close(client.Send)
	client.writePump()

	written := fc.frames()
	require.Len(t, written, 2)
	assert.Equal(t, websocket.TextMessage, written[0].kind)
	assert.JSONEq(t, `{"type":"flash.add"}`, string(written[0].data))
	assert.Equal(t, websocket.CloseMessage, written[1].kind)
	assert.True(t, fc.closed)
}

func TestClient_ReadPumpForwardsDismissals(t *testing.T) {
	hub, _ := startHub(t)
	user := uuid.New()

	var mu sync.Mutex
	var dismissed []string
	hub.OnDismiss(func(userID uuid.UUID, alertID string) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, user, userID)
		dismissed = append(dismissed, alertID)
	})

	fc := newFakeConn()
	client := newClient(hub, fc, user)
	hub.register <- client
	require.Eventually(t, func() bool { return hub.ConnectedCount(user) == 1 }, time.Second, 10*time.Millisecond)

	fc.inbound <- frame{websocket.TextMessage, []byte(`{"type":"flash.dismiss","id":"a1"}`)}
	fc.inbound <- frame{websocket.BinaryMessage, []byte(`{"type":"flash.dismiss","id":"a2"}`)}
	fc.inbound <- frame{websocket.TextMessage, []byte(`{"type":"flash.add","id":"a3"}`)}
	close(fc.inbound)

	client.readPump()

	mu.Lock()
	assert.Equal(t, []string{"a1"}, dismissed)
	mu.Unlock()
	assert.Eventually(t, func() bool { return hub.ConnectedCount(user) == 0 }, time.Second, 10*time.Millisecond)
}
