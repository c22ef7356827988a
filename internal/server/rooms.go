// ABOUTME: Room HTTP handlers covering CRUD, participant assignment and history.
// ABOUTME: Participant mutations renumber turn orders through the store.

package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/baranbingol1/agent-nebula/internal/store"
)

const (
	defaultRoomMaxTurns = 20

	defaultMessageLimit = 100
	maxMessageLimit     = 500
)

// CreateRoomRequest is the JSON request body for POST /api/rooms.
type CreateRoomRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	MaxTurns    *int   `json:"max_turns" validate:"omitempty,min=1,max=1000"`
}

// UpdateRoomRequest is the JSON request body for PUT /api/rooms/{id}.
// Nil fields are left unchanged.
type UpdateRoomRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Description *string `json:"description"`
	MaxTurns    *int    `json:"max_turns" validate:"omitempty,min=1,max=1000"`
}

// ParticipantInfo is an agent's slot in a room's speaking order.
type ParticipantInfo struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
	TurnOrder int    `json:"turn_order"`
}

// RoomResponse is the JSON representation of a room with its participants.
type RoomResponse struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Status           string            `json:"status"`
	CurrentTurnIndex int               `json:"current_turn_index"`
	MaxTurns         int               `json:"max_turns"`
	CreatedAt        string            `json:"created_at"`
	Agents           []ParticipantInfo `json:"agents"`
}

// AddParticipantRequest is the JSON request body for POST /api/rooms/{id}/agents.
type AddParticipantRequest struct {
	AgentID string `json:"agent_id" validate:"required"`
}

// ReorderParticipantsRequest is the JSON request body for
// PUT /api/rooms/{id}/agents/reorder. AgentIDs must be a permutation of the
// room's current participants.
type ReorderParticipantsRequest struct {
	AgentIDs []string `json:"agent_ids" validate:"required,min=1"`
}

// MessageResponse is the JSON representation of a persisted message.
type MessageResponse struct {
	ID         string  `json:"id"`
	RoomID     string  `json:"room_id"`
	AgentID    *string `json:"agent_id"`
	Role       string  `json:"role"`
	Content    string  `json:"content"`
	TurnNumber int     `json:"turn_number"`
	CreatedAt  string  `json:"created_at"`
	AgentName  string  `json:"agent_name,omitempty"`
}

// ListMessagesResponse is the JSON response for GET /api/rooms/{id}/messages.
type ListMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}

func roomResponse(room *store.Room) RoomResponse {
	participants := make([]ParticipantInfo, 0, len(room.Participants))
	for _, p := range room.Participants {
		participants = append(participants, ParticipantInfo{
			AgentID:   p.AgentID,
			AgentName: p.AgentName,
			TurnOrder: p.TurnOrder,
		})
	}
	return RoomResponse{
		ID:               room.ID,
		Name:             room.Name,
		Description:      room.Description,
		Status:           room.Status,
		CurrentTurnIndex: room.CurrentTurnIndex,
		MaxTurns:         room.MaxTurns,
		CreatedAt:        room.CreatedAt.UTC().Format(time.RFC3339Nano),
		Agents:           participants,
	}
}

// handleListRooms handles GET /api/rooms.
func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.store.ListRooms(r.Context())
	if err != nil {
		s.internalError(w, "failed to list rooms", err)
		return
	}

	response := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		response = append(response, roomResponse(room))
	}
	s.sendJSON(w, http.StatusOK, response)
}

// handleGetRoom handles GET /api/rooms/{id}.
func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.store.GetRoom(r.Context(), r.PathValue("id"))
	if isNotFound(err) {
		s.sendJSONError(w, http.StatusNotFound, "room not found")
		return
	}
	if err != nil {
		s.internalError(w, "failed to get room", err)
		return
	}
	s.sendJSON(w, http.StatusOK, roomResponse(room))
}

// handleCreateRoom handles POST /api/rooms.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	maxTurns := defaultRoomMaxTurns
	if req.MaxTurns != nil {
		maxTurns = *req.MaxTurns
	}

	room := &store.Room{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Status:      store.RoomStatusIdle,
		MaxTurns:    maxTurns,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateRoom(r.Context(), room); err != nil {
		s.internalError(w, "failed to create room", err)
		return
	}
	s.sendJSON(w, http.StatusCreated, roomResponse(room))
}

// handleUpdateRoom handles PUT /api/rooms/{id}.
func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoomRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	room, err := s.store.GetRoom(r.Context(), r.PathValue("id"))
	if isNotFound(err) {
		s.sendJSONError(w, http.StatusNotFound, "room not found")
		return
	}
	if err != nil {
		s.internalError(w, "failed to get room", err)
		return
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.MaxTurns != nil {
		room.MaxTurns = *req.MaxTurns
	}

	if err := s.store.UpdateRoom(r.Context(), room); err != nil {
		if isNotFound(err) {
			s.sendJSONError(w, http.StatusNotFound, "room not found")
			return
		}
		s.internalError(w, "failed to update room", err)
		return
	}
	s.sendJSON(w, http.StatusOK, roomResponse(room))
}

// handleDeleteRoom handles DELETE /api/rooms/{id}.
func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteRoom(r.Context(), r.PathValue("id"))
	if isNotFound(err) {
		s.sendJSONError(w, http.StatusNotFound, "room not found")
		return
	}
	if err != nil {
		s.internalError(w, "failed to delete room", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddParticipant handles POST /api/rooms/{id}/agents.
// The agent joins at the end of the speaking order.
func (s *Server) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	var req AddParticipantRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	roomID := r.PathValue("id")
	err := s.store.AddParticipant(r.Context(), roomID, req.AgentID)
	if isNotFound(err) || errors.Is(err, store.ErrDuplicateParticipant) {
		s.sendJSONError(w, http.StatusBadRequest, "could not add agent to room (not found or already assigned)")
		return
	}
	if err != nil {
		s.internalError(w, "failed to add participant", err)
		return
	}

	s.respondWithRoom(w, r, roomID, http.StatusCreated)
}

// handleRemoveParticipant handles DELETE /api/rooms/{id}/agents/{agentID}.
// Remaining participants are renumbered to close the gap.
func (s *Server) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	err := s.store.RemoveParticipant(r.Context(), roomID, r.PathValue("agentID"))
	if isNotFound(err) {
		s.sendJSONError(w, http.StatusNotFound, "agent not in room")
		return
	}
	if err != nil {
		s.internalError(w, "failed to remove participant", err)
		return
	}

	s.respondWithRoom(w, r, roomID, http.StatusOK)
}

// handleReorderParticipants handles PUT /api/rooms/{id}/agents/reorder.
func (s *Server) handleReorderParticipants(w http.ResponseWriter, r *http.Request) {
	var req ReorderParticipantsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	roomID := r.PathValue("id")
	err := s.store.ReorderParticipants(r.Context(), roomID, req.AgentIDs)
	if isNotFound(err) {
		s.sendJSONError(w, http.StatusBadRequest, "invalid agent list for reorder")
		return
	}
	if err != nil {
		s.internalError(w, "failed to reorder participants", err)
		return
	}

	s.respondWithRoom(w, r, roomID, http.StatusOK)
}

// respondWithRoom reloads the room and writes it with the given status.
func (s *Server) respondWithRoom(w http.ResponseWriter, r *http.Request, roomID string, status int) {
	room, err := s.store.GetRoom(r.Context(), roomID)
	if err != nil {
		s.internalError(w, "failed to reload room", err)
		return
	}
	s.sendJSON(w, status, roomResponse(room))
}

// handleListMessages handles GET /api/rooms/{id}/messages.
// Supports ?limit=N (default 100, max 500) and ?offset=N pagination.
func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("id")
	if _, err := s.store.GetRoom(r.Context(), roomID); err != nil {
		if isNotFound(err) {
			s.sendJSONError(w, http.StatusNotFound, "room not found")
			return
		}
		s.internalError(w, "failed to get room", err)
		return
	}

	limit := defaultMessageLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > maxMessageLimit {
			s.sendJSONError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		parsed, err := strconv.Atoi(offsetStr)
		if err != nil || parsed < 0 {
			s.sendJSONError(w, http.StatusBadRequest, "offset must not be negative")
			return
		}
		offset = parsed
	}

	messages, total, err := s.store.ListMessages(r.Context(), roomID, limit, offset)
	if err != nil {
		s.internalError(w, "failed to list messages", err)
		return
	}

	response := ListMessagesResponse{
		Messages: make([]MessageResponse, len(messages)),
		Total:    total,
	}
	for i, m := range messages {
		response.Messages[i] = MessageResponse{
			ID:         m.ID,
			RoomID:     m.RoomID,
			AgentID:    m.AgentID,
			Role:       m.Role,
			Content:    m.Content,
			TurnNumber: m.TurnNumber,
			CreatedAt:  m.CreatedAt.UTC().Format(time.RFC3339Nano),
			AgentName:  m.AgentName,
		}
	}
	s.sendJSON(w, http.StatusOK, response)
}
