package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"digraph-be/internal/pkg/logger"
	"digraph-be/pkg/flash"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
)

const (
	TypeFlashAdd     = "flash.add"
	TypeFlashRemove  = "flash.remove"
	TypeFlashDismiss = "flash.dismiss"

	clusterChannel = "flash_events"
)

// Envelope is the JSON frame exchanged with the browser
type Envelope struct {
	Type  string       `json:"type"`
	Alert *flash.Alert `json:"alert,omitempty"`
	Id    string       `json:"id,omitempty"`
}

// clusterMessage relays a frame to the hubs of the other instances
type clusterMessage struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

// Hub pushes flash alerts to the open tabs of each user. With Redis it also
// relays them to the other instances, which deliver to their own tabs.
type Hub struct {
	// UserID -> open connections (one per tab or device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// Guards clients. Sends to Client.Send happen under the read lock so
	// they never race with the close in Run.
	mu sync.RWMutex

	rdb        *redis.Client
	instanceID string

	onDismiss func(userID uuid.UUID, alertID string)

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// OnDismiss sets the callback run when a tab dismisses an alert
func (h *Hub) OnDismiss(fn func(userID uuid.UUID, alertID string)) {
	h.onDismiss = fn
}

// Run owns the client map until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for userID, clients := range h.clients {
				for _, client := range clients {
					close(client.Send)
				}
				delete(h.clients, userID)
			}
			h.mu.Unlock()
			close(h.done)
			h.logger.Info("Hub", "Hub stopped", nil)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[client.UserID]
	for i, c := range clients {
		if c != client {
			continue
		}
		h.clients[client.UserID] = append(clients[:i:i], clients[i+1:]...)
		close(client.Send)
		break
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
	}
}

// drop unregisters a client without blocking the caller
func (h *Hub) drop(client *Client) {
	go func() {
		select {
		case h.unregister <- client:
		case <-h.done:
		}
	}()
}

// ConnectedCount returns how many tabs the user has open on this instance
func (h *Hub) ConnectedCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// AddMessage implements flash.Messenger
func (h *Hub) AddMessage(userID uuid.UUID, alert flash.Alert) {
	h.send(userID, Envelope{Type: TypeFlashAdd, Alert: &alert})
}

// RemoveMessage implements flash.Messenger
func (h *Hub) RemoveMessage(userID uuid.UUID, alertID string) {
	h.send(userID, Envelope{Type: TypeFlashRemove, Id: alertID})
}

func (h *Hub) send(userID uuid.UUID, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("Hub", "Failed to encode frame", map[string]interface{}{"error": err.Error()})
		return
	}

	h.deliver(userID, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{
			Origin:       h.instanceID,
			TargetUserID: userID.String(),
			Message:      data,
		})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to relay frame", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (h *Hub) deliver(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"user_id": userID})
			h.drop(client)
		}
	}
}

// replay pushes already queued alerts to a freshly registered client
func (h *Hub) replay(client *Client, alerts []flash.Alert) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if !lo.Contains(h.clients[client.UserID], client) {
		return
	}
	for i := range alerts {
		data, err := json.Marshal(Envelope{Type: TypeFlashAdd, Alert: &alerts[i]})
		if err != nil {
			continue
		}
		select {
		case client.Send <- data:
		default:
			return
		}
	}
}

// handleClientMessage processes a frame sent by a tab. Only dismissals are
// understood, anything else is ignored.
func (h *Hub) handleClientMessage(userID uuid.UUID, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		h.logger.Debug("Hub", "Ignoring malformed frame", map[string]interface{}{"user_id": userID})
		return
	}
	if env.Type != TypeFlashDismiss || env.Id == "" {
		return
	}
	if h.onDismiss != nil {
		h.onDismiss(userID, env.Id)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceID {
				continue
			}
			uid, err := uuid.Parse(payload.TargetUserID)
			if err != nil {
				continue
			}
			h.deliver(uid, payload.Message)
		}
	}
}
