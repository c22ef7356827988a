// ABOUTME: Shared fixtures for HTTP API tests.
// ABOUTME: Spins up the full handler over an in-memory store and a stub generator.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baranbingol1/agent-nebula/internal/llm"
	"github.com/baranbingol1/agent-nebula/internal/simulation"
	"github.com/baranbingol1/agent-nebula/internal/store"
)

// stubGenerator returns a canned reply for every turn.
type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, agent *store.Agent, _ []llm.ChatMessage) (string, error) {
	return "reply from " + agent.Name, nil
}

type testEnv struct {
	handler  http.Handler
	store    *store.SQLiteStore
	registry *simulation.Registry
	hub      *simulation.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	hub := simulation.NewHub(nil)
	registry := simulation.NewRegistry(st, stubGenerator{}, hub, simulation.Options{
		TurnDelay:         time.Millisecond,
		GenerationTimeout: 5 * time.Second,
	}, nil)
	srv := New(st, registry, hub, nil)

	t.Cleanup(func() {
		registry.Shutdown()
		hub.Close()
		st.Close()
	})

	return &testEnv{handler: srv.Handler(), store: st, registry: registry, hub: hub}
}

// do sends a request through the full route table and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

// errorMessage extracts the "error" field from a JSON error body.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, rec, &body)
	return body["error"]
}

// createAgent creates an agent through the API and returns its response.
func (e *testEnv) createAgent(t *testing.T, name string) AgentResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/agents", CreateAgentRequest{
		Name:         name,
		SystemPrompt: "You are " + name,
		Model:        "gpt-4o-mini",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create agent: expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp AgentResponse
	decode(t, rec, &resp)
	return resp
}

// createRoom creates a room through the API and returns its response.
func (e *testEnv) createRoom(t *testing.T, name string, maxTurns int) RoomResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/rooms", CreateRoomRequest{
		Name:     name,
		MaxTurns: &maxTurns,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create room: expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp RoomResponse
	decode(t, rec, &resp)
	return resp
}

// addParticipant assigns an agent to a room through the API.
func (e *testEnv) addParticipant(t *testing.T, roomID, agentID string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/rooms/"+roomID+"/agents", AddParticipantRequest{AgentID: agentID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add participant: expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestHandleListAvatars(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/avatars", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var body []map[string]string
	decode(t, rec, &body)
	if len(body) == 0 {
		t.Fatal("expected a non-empty avatar catalog")
	}
	for _, entry := range body {
		if entry["id"] == "" || entry["emoji"] == "" {
			t.Errorf("avatar entry missing fields: %v", entry)
		}
	}
}
