// ABOUTME: Tests for simulation control HTTP handlers.
// ABOUTME: Covers lifecycle rejections and the status endpoint.

package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/baranbingol1/agent-nebula/internal/store"
)

// waitForStatus polls the status endpoint until the room reaches the given
// persisted status.
func (e *testEnv) waitForStatus(t *testing.T, roomID, want string) SimulationStatusResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec := e.do(t, http.MethodGet, "/api/simulation/"+roomID+"/status", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status: expected 200, got %d", rec.Code)
		}
		var resp SimulationStatusResponse
		decode(t, rec, &resp)
		if resp.Status == want {
			return resp
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("room %s never reached status %q", roomID, want)
	return SimulationStatusResponse{}
}

func TestSimulationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Room", 3)
	ada := env.createAgent(t, "Ada")
	env.addParticipant(t, room.ID, ada.ID)

	rec := env.do(t, http.MethodPost, "/api/simulation/"+room.ID+"/start", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("start: expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "started" {
		t.Errorf("unexpected start body: %v", body)
	}

	// Runs to its turn budget and settles back to idle
	status := env.waitForStatus(t, room.ID, store.RoomStatusIdle)
	if status.CurrentTurnIndex != 3 {
		t.Errorf("CurrentTurnIndex = %d, want 3", status.CurrentTurnIndex)
	}

	// History holds one assistant message per completed turn
	rec = env.do(t, http.MethodGet, "/api/rooms/"+room.ID+"/messages", nil)
	var messages ListMessagesResponse
	decode(t, rec, &messages)
	if messages.Total != 3 {
		t.Errorf("Total = %d, want 3", messages.Total)
	}
	for _, m := range messages.Messages {
		if m.Role != store.RoleAssistant {
			t.Errorf("Role = %q, want %q", m.Role, store.RoleAssistant)
		}
	}
}

func TestSimulationStart_RoomNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/simulation/missing/start", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSimulationStart_NoParticipants(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Empty", 3)

	rec := env.do(t, http.MethodPost, "/api/simulation/"+room.ID+"/start", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "room has no agents assigned" {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestSimulationControl_NotRunning(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Room", 3)

	for _, op := range []string{"pause", "resume", "stop"} {
		rec := env.do(t, http.MethodPost, "/api/simulation/"+room.ID+"/"+op, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected status %d, got %d", op, http.StatusBadRequest, rec.Code)
		}
	}

	rec := env.do(t, http.MethodPost, "/api/simulation/"+room.ID+"/inject", InjectMessageRequest{Content: "hello"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("inject: expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestSimulationInject_EmptyContent(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Room", 3)

	rec := env.do(t, http.MethodPost, "/api/simulation/"+room.ID+"/inject", InjectMessageRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestSimulationStatus_IdleRoom(t *testing.T) {
	env := newTestEnv(t)
	room := env.createRoom(t, "Room", 7)

	rec := env.do(t, http.MethodGet, "/api/simulation/"+room.ID+"/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp SimulationStatusResponse
	decode(t, rec, &resp)
	if resp.RoomID != room.ID {
		t.Errorf("RoomID = %q, want %q", resp.RoomID, room.ID)
	}
	if resp.Status != store.RoomStatusIdle {
		t.Errorf("Status = %q, want %q", resp.Status, store.RoomStatusIdle)
	}
	if resp.MaxTurns != 7 {
		t.Errorf("MaxTurns = %d, want 7", resp.MaxTurns)
	}
}
