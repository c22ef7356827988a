// ABOUTME: In-memory fan-out hub delivering simulation events to room observers
// ABOUTME: Best-effort per-room broadcast; subscribers that can't keep up are dropped

package simulation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// subscriberBufferSize is the channel buffer for each observer. A subscriber
// whose buffer is full at publish time is considered dead and removed.
const subscriberBufferSize = 64

// Hub provides in-memory pub/sub for simulation events, keyed by room ID.
// Rooms are fully isolated: an event published to one room is never visible
// to another room's subscribers.
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]map[string]chan Event // roomID -> subID -> ch
	logger *slog.Logger
}

// NewHub creates a hub. Pass nil logger for default.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		rooms:  make(map[string]map[string]chan Event),
		logger: logger.With("component", "hub"),
	}
}

// Subscribe registers an observer for a room's events. Returns the receiving
// channel and a subscription ID for later unsubscription. The subscription is
// automatically cleaned up when ctx is cancelled.
func (h *Hub) Subscribe(ctx context.Context, roomID string) (<-chan Event, string) {
	subID := uuid.New().String()
	ch := make(chan Event, subscriberBufferSize)

	h.mu.Lock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]chan Event)
	}
	h.rooms[roomID][subID] = ch
	h.mu.Unlock()

	h.logger.Debug("observer added", "room_id", roomID, "sub_id", subID)

	go func() {
		<-ctx.Done()
		h.Unsubscribe(roomID, subID)
	}()

	return ch, subID
}

// Publish delivers an event to every observer of the room. Delivery is
// best-effort: an observer whose buffer is full is treated as dead, removed
// from the room and its channel closed. Publishing to a room with no
// observers is a no-op.
func (h *Hub) Publish(roomID string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[roomID]
	if !ok || len(subs) == 0 {
		return
	}

	for subID, ch := range subs {
		select {
		case ch <- event:
		default:
			delete(subs, subID)
			close(ch)
			h.logger.Warn("dropped dead observer", "room_id", roomID, "sub_id", subID)
		}
	}

	if len(subs) == 0 {
		delete(h.rooms, roomID)
	}
}

// Unsubscribe removes a subscription and closes its channel. Unsubscribing an
// unknown subscription or room is a no-op.
func (h *Hub) Unsubscribe(roomID, subID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.rooms[roomID]
	if !ok {
		return
	}
	ch, exists := subs[subID]
	if !exists {
		return
	}

	delete(subs, subID)
	close(ch)

	if len(subs) == 0 {
		delete(h.rooms, roomID)
	}

	h.logger.Debug("observer removed", "room_id", roomID, "sub_id", subID)
}

// Close shuts down the hub and closes all observer channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for roomID, subs := range h.rooms {
		for subID, ch := range subs {
			close(ch)
			delete(subs, subID)
		}
		delete(h.rooms, roomID)
	}

	h.logger.Debug("hub closed")
}
