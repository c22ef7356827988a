// ABOUTME: Agent catalog HTTP handlers.
// ABOUTME: CRUD for configured conversation participants.

package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/baranbingol1/agent-nebula/internal/avatars"
	"github.com/baranbingol1/agent-nebula/internal/store"
)

// CreateAgentRequest is the JSON request body for POST /api/agents.
type CreateAgentRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	SystemPrompt string `json:"system_prompt" validate:"required"`
	Model        string `json:"model" validate:"required,max=200"`
	AvatarID     string `json:"avatar_id,omitempty"`
}

// UpdateAgentRequest is the JSON request body for PUT /api/agents/{id}.
// Nil fields are left unchanged.
type UpdateAgentRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	SystemPrompt *string `json:"system_prompt"`
	Model        *string `json:"model" validate:"omitempty,max=200"`
	AvatarID     *string `json:"avatar_id"`
}

// AgentResponse is the JSON representation of an agent.
type AgentResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
	Model        string `json:"model"`
	AvatarID     string `json:"avatar_id,omitempty"`
	CreatedAt    string `json:"created_at"`
}

func agentResponse(a *store.Agent) AgentResponse {
	return AgentResponse{
		ID:           a.ID,
		Name:         a.Name,
		SystemPrompt: a.SystemPrompt,
		Model:        a.Model,
		AvatarID:     a.AvatarID,
		CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// validAvatar reports whether id is empty or names a catalog entry.
func validAvatar(id string) bool {
	if id == "" {
		return true
	}
	_, ok := avatars.Lookup(id)
	return ok
}

// handleListAgents handles GET /api/agents.
func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := s.store.ListAgents(r.Context())
	if err != nil {
		s.internalError(w, "failed to list agents", err)
		return
	}

	response := make([]AgentResponse, 0, len(agents))
	for _, a := range agents {
		response = append(response, agentResponse(a))
	}
	s.sendJSON(w, http.StatusOK, response)
}

// handleGetAgent handles GET /api/agents/{id}.
func (s *Server) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := s.store.GetAgent(r.Context(), r.PathValue("id"))
	if isNotFound(err) {
		s.sendJSONError(w, http.StatusNotFound, "agent not found")
		return
	}
	if err != nil {
		s.internalError(w, "failed to get agent", err)
		return
	}
	s.sendJSON(w, http.StatusOK, agentResponse(agent))
}

// handleCreateAgent handles POST /api/agents.
func (s *Server) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var req CreateAgentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if !validAvatar(req.AvatarID) {
		s.sendJSONError(w, http.StatusBadRequest, "unknown avatar_id")
		return
	}

	agent := &store.Agent{
		ID:           uuid.New().String(),
		Name:         req.Name,
		SystemPrompt: req.SystemPrompt,
		Model:        req.Model,
		AvatarID:     req.AvatarID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateAgent(r.Context(), agent); err != nil {
		s.internalError(w, "failed to create agent", err)
		return
	}
	s.sendJSON(w, http.StatusCreated, agentResponse(agent))
}

// handleUpdateAgent handles PUT /api/agents/{id}.
func (s *Server) handleUpdateAgent(w http.ResponseWriter, r *http.Request) {
	var req UpdateAgentRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.AvatarID != nil && !validAvatar(*req.AvatarID) {
		s.sendJSONError(w, http.StatusBadRequest, "unknown avatar_id")
		return
	}

	agent, err := s.store.GetAgent(r.Context(), r.PathValue("id"))
	if isNotFound(err) {
		s.sendJSONError(w, http.StatusNotFound, "agent not found")
		return
	}
	if err != nil {
		s.internalError(w, "failed to get agent", err)
		return
	}

	if req.Name != nil {
		agent.Name = *req.Name
	}
	if req.SystemPrompt != nil {
		agent.SystemPrompt = *req.SystemPrompt
	}
	if req.Model != nil {
		agent.Model = *req.Model
	}
	if req.AvatarID != nil {
		agent.AvatarID = *req.AvatarID
	}

	if err := s.store.UpdateAgent(r.Context(), agent); err != nil {
		if isNotFound(err) {
			s.sendJSONError(w, http.StatusNotFound, "agent not found")
			return
		}
		s.internalError(w, "failed to update agent", err)
		return
	}
	s.sendJSON(w, http.StatusOK, agentResponse(agent))
}

// handleDeleteAgent handles DELETE /api/agents/{id}.
func (s *Server) handleDeleteAgent(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteAgent(r.Context(), r.PathValue("id"))
	if isNotFound(err) {
		s.sendJSONError(w, http.StatusNotFound, "agent not found")
		return
	}
	if err != nil {
		s.internalError(w, "failed to delete agent", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
