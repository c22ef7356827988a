// ABOUTME: Tests for the Hub fan-out component
// ABOUTME: Covers subscribe, publish, room isolation, dead-observer removal

package simulation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_SingleSubscriberReceivesEvent(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	ch, _ := h.Subscribe(t.Context(), "room-1")

	h.Publish("room-1", TypingEvent("agent-1", "Nova"))

	select {
	case ev := <-ch:
		assert.Equal(t, EventTypeTyping, ev.Type)
		assert.Equal(t, "Nova", ev.AgentName)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestHub_MultipleSubscribersReceiveSameEvent(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	ctx := t.Context()
	ch1, _ := h.Subscribe(ctx, "room-1")
	ch2, _ := h.Subscribe(ctx, "room-1")
	ch3, _ := h.Subscribe(ctx, "room-1")

	h.Publish("room-1", StatusEvent("running", 2, 10))

	for i, ch := range []<-chan Event{ch1, ch2, ch3} {
		select {
		case ev := <-ch:
			assert.Equal(t, EventTypeStatus, ev.Type, "subscriber %d", i)
			require.NotNil(t, ev.CurrentTurnIndex)
			assert.Equal(t, 2, *ev.CurrentTurnIndex)
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d timed out", i)
		}
	}
}

func TestHub_RoomsAreIsolated(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	ctx := t.Context()
	ch1, _ := h.Subscribe(ctx, "room-1")
	ch2, _ := h.Subscribe(ctx, "room-2")

	h.Publish("room-1", ErrorEvent("boom"))

	select {
	case ev := <-ch1:
		assert.Equal(t, EventTypeError, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("room-1 subscriber timed out")
	}

	select {
	case <-ch2:
		t.Fatal("room-2 subscriber must not see room-1 events")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_PublishToEmptyRoomIsNoOp(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	// Must not panic or error
	h.Publish("nobody-home", StatusEvent("idle", 0, 0))
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	ch, subID := h.Subscribe(t.Context(), "room-1")
	h.Unsubscribe("room-1", subID)

	// Channel is closed on unsubscribe
	_, ok := <-ch
	assert.False(t, ok)

	// Unknown subscription and unknown room are no-ops
	h.Unsubscribe("room-1", "ghost")
	h.Unsubscribe("no-such-room", subID)
}

func TestHub_DeadSubscriberRemovedLiveOneDelivered(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	ctx := t.Context()
	dead, _ := h.Subscribe(ctx, "room-1")
	live, _ := h.Subscribe(ctx, "room-1")

	var wg sync.WaitGroup
	wg.Add(1)
	received := 0
	go func() {
		defer wg.Done()
		for range live {
			received++
			if received == subscriberBufferSize+1 {
				return
			}
		}
	}()

	// Fill the dead subscriber's buffer, then one more publish kills it
	for i := 0; i <= subscriberBufferSize; i++ {
		h.Publish("room-1", TypingEvent(fmt.Sprintf("agent-%d", i), "x"))
	}

	wg.Wait()
	assert.Equal(t, subscriberBufferSize+1, received, "live subscriber should get every event")

	// Dead subscriber's channel holds its buffered events, then is closed
	drained := 0
	for range dead {
		drained++
	}
	assert.Equal(t, subscriberBufferSize, drained)

	// Subsequent publishes still reach nobody dead: only the live channel remains
	st, ok := func() (map[string]chan Event, bool) {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs, ok := h.rooms["room-1"]
		return subs, ok
	}()
	require.True(t, ok)
	assert.Len(t, st, 1)
}

func TestHub_ContextCancellationUnsubscribes(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, _ := h.Subscribe(ctx, "room-1")
	cancel()

	// The cleanup goroutine closes the channel
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after context cancellation")
	}
}

func TestHub_CloseShutsAllChannels(t *testing.T) {
	h := NewHub(nil)

	ch1, _ := h.Subscribe(t.Context(), "room-1")
	ch2, _ := h.Subscribe(t.Context(), "room-2")

	h.Close()

	_, ok1 := <-ch1
	_, ok2 := <-ch2
	assert.False(t, ok1)
	assert.False(t, ok2)
}
