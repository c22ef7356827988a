// ABOUTME: Tests for agent catalog HTTP handlers.
// ABOUTME: Covers CRUD round trips, validation failures and error mapping.

package server

import (
	"net/http"
	"strings"
	"testing"
)

func TestCreateAgent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/agents", CreateAgentRequest{
		Name:         "Ada",
		SystemPrompt: "You are a mathematician",
		Model:        "litellm/gpt-4o-mini",
		AvatarID:     "robot",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp AgentResponse
	decode(t, rec, &resp)
	if resp.ID == "" {
		t.Error("expected a generated agent id")
	}
	if resp.Name != "Ada" {
		t.Errorf("Name = %q, want %q", resp.Name, "Ada")
	}
	if resp.Model != "litellm/gpt-4o-mini" {
		t.Errorf("Model = %q, want %q", resp.Model, "litellm/gpt-4o-mini")
	}
	if resp.AvatarID != "robot" {
		t.Errorf("AvatarID = %q, want %q", resp.AvatarID, "robot")
	}
	if resp.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}
}

func TestCreateAgent_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/agents", CreateAgentRequest{Name: "Ada"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCreateAgent_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	req := env.do(t, http.MethodPost, "/api/agents", nil)
	if req.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, req.Code)
	}
}

func TestCreateAgent_UnknownAvatar(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/agents", CreateAgentRequest{
		Name:         "Ada",
		SystemPrompt: "prompt",
		Model:        "gpt-4o-mini",
		AvatarID:     "no-such-avatar",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "unknown avatar_id" {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestGetAgent(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAgent(t, "Ada")

	rec := env.do(t, http.MethodGet, "/api/agents/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp AgentResponse
	decode(t, rec, &resp)
	if resp.ID != created.ID {
		t.Errorf("ID = %q, want %q", resp.ID, created.ID)
	}
}

func TestGetAgent_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/agents/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "agent not found" {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestListAgents(t *testing.T) {
	env := newTestEnv(t)
	env.createAgent(t, "Ada")
	env.createAgent(t, "Grace")

	rec := env.do(t, http.MethodGet, "/api/agents", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp []AgentResponse
	decode(t, rec, &resp)
	if len(resp) != 2 {
		t.Errorf("expected 2 agents, got %d", len(resp))
	}
}

func TestUpdateAgent(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAgent(t, "Ada")

	newName := "Ada Lovelace"
	newModel := "gpt-4o"
	rec := env.do(t, http.MethodPut, "/api/agents/"+created.ID, UpdateAgentRequest{
		Name:  &newName,
		Model: &newModel,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp AgentResponse
	decode(t, rec, &resp)
	if resp.Name != newName {
		t.Errorf("Name = %q, want %q", resp.Name, newName)
	}
	if resp.Model != newModel {
		t.Errorf("Model = %q, want %q", resp.Model, newModel)
	}
	// Untouched field survives the partial update
	if !strings.Contains(resp.SystemPrompt, "Ada") {
		t.Errorf("SystemPrompt = %q, expected the original prompt", resp.SystemPrompt)
	}
}

func TestUpdateAgent_NotFound(t *testing.T) {
	env := newTestEnv(t)

	name := "Ghost"
	rec := env.do(t, http.MethodPut, "/api/agents/missing", UpdateAgentRequest{Name: &name})
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestDeleteAgent(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAgent(t, "Ada")

	rec := env.do(t, http.MethodDelete, "/api/agents/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/agents/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d after delete, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestDeleteAgent_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/api/agents/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}
