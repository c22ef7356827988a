// ABOUTME: Simulation control HTTP handlers.
// ABOUTME: Maps registry lifecycle errors to the API's 400/404 responses.

package server

import (
	"errors"
	"net/http"

	"github.com/baranbingol1/agent-nebula/internal/simulation"
	"github.com/baranbingol1/agent-nebula/internal/store"
)

// InjectMessageRequest is the JSON request body for POST /api/simulation/{id}/inject.
type InjectMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// SimulationStatusResponse is the JSON response for GET /api/simulation/{id}/status.
type SimulationStatusResponse struct {
	RoomID           string `json:"room_id"`
	Status           string `json:"status"`
	CurrentTurnIndex int    `json:"current_turn_index"`
	MaxTurns         int    `json:"max_turns"`
}

// handleSimulationStart handles POST /api/simulation/{id}/start.
func (s *Server) handleSimulationStart(w http.ResponseWriter, r *http.Request) {
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
	if len(room.Participants) == 0 {
		s.sendJSONError(w, http.StatusBadRequest, "room has no agents assigned")
		return
	}

	if err := s.registry.Start(roomID); err != nil {
		if errors.Is(err, simulation.ErrAlreadyRunning) {
			s.sendJSONError(w, http.StatusBadRequest, "simulation already running")
			return
		}
		s.internalError(w, "failed to start simulation", err)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "started"})
}

// handleSimulationPause handles POST /api/simulation/{id}/pause.
func (s *Server) handleSimulationPause(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Pause(r.Context(), r.PathValue("id")); err != nil {
		s.controlError(w, "cannot pause simulation", err)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "paused"})
}

// handleSimulationResume handles POST /api/simulation/{id}/resume.
func (s *Server) handleSimulationResume(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Resume(r.Context(), r.PathValue("id")); err != nil {
		s.controlError(w, "cannot resume simulation", err)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "resumed"})
}

// handleSimulationStop handles POST /api/simulation/{id}/stop.
func (s *Server) handleSimulationStop(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Stop(r.PathValue("id")); err != nil {
		s.controlError(w, "cannot stop simulation", err)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

// handleSimulationInject handles POST /api/simulation/{id}/inject.
func (s *Server) handleSimulationInject(w http.ResponseWriter, r *http.Request) {
	var req InjectMessageRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.registry.Inject(r.PathValue("id"), req.Content); err != nil {
		s.controlError(w, "cannot inject message (simulation not running)", err)
		return
	}
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "injected"})
}

// handleSimulationStatus handles GET /api/simulation/{id}/status.
// Status reflects the persisted room row, which the scheduler keeps current.
func (s *Server) handleSimulationStatus(w http.ResponseWriter, r *http.Request) {
	room, err := s.store.GetRoom(r.Context(), r.PathValue("id"))
	if isNotFound(err) {
		s.sendJSONError(w, http.StatusNotFound, "room not found")
		return
	}
	if err != nil {
		s.internalError(w, "failed to get room", err)
		return
	}

	s.sendJSON(w, http.StatusOK, SimulationStatusResponse{
		RoomID:           room.ID,
		Status:           room.Status,
		CurrentTurnIndex: room.CurrentTurnIndex,
		MaxTurns:         room.MaxTurns,
	})
}

// controlError maps a registry lifecycle rejection to 400, anything else to 500.
func (s *Server) controlError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, simulation.ErrNotRunning) || errors.Is(err, store.ErrNotFound) {
		s.sendJSONError(w, http.StatusBadRequest, msg)
		return
	}
	s.internalError(w, msg, err)
}
