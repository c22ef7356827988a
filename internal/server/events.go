// ABOUTME: SSE observer stream bridging hub subscriptions to HTTP clients.
// ABOUTME: Each connection gets a status snapshot followed by live room events.

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/baranbingol1/agent-nebula/internal/simulation"
)

// handleEvents handles GET /api/events/{id}.
// It streams room events as Server-Sent Events until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")

	room, err := s.store.GetRoom(r.Context(), roomID)
	if isNotFound(err) {
		s.sendJSONError(w, http.StatusNotFound, "room not found")
		return
	}
	if err != nil {
		s.internalError(w, "failed to get room", err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.logger.Error("streaming not supported")
		s.sendJSONError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Subscription lifetime is tied to the request context; the hub
	// unsubscribes and closes the channel when the client disconnects.
	events, subID := s.hub.Subscribe(r.Context(), roomID)
	s.logger.Debug("observer connected", "room_id", roomID, "subscriber_id", subID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Initial snapshot so late joiners see the current room state
	s.writeSSEEvent(w, simulation.StatusEvent(room.Status, room.CurrentTurnIndex, room.MaxTurns))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.writeSSEEvent(w, ev)
			flusher.Flush()
		}
	}
}

// writeSSEEvent writes a single SSE event with the event type and JSON data.
func (s *Server) writeSSEEvent(w http.ResponseWriter, ev simulation.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("failed to marshal SSE data", "error", err)
		return
	}

	fmt.Fprintf(w, "event: %s\n", ev.Type)
	fmt.Fprintf(w, "data: %s\n\n", data)
}
