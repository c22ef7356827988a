// ABOUTME: HTTP API server for agent-nebula wiring routes to the store and registry.
// ABOUTME: JSON helpers, request validation and store error mapping live here.

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/baranbingol1/agent-nebula/internal/avatars"
	"github.com/baranbingol1/agent-nebula/internal/simulation"
	"github.com/baranbingol1/agent-nebula/internal/store"
)

// Server exposes the REST API and the room event stream.
type Server struct {
	store    store.Store
	registry *simulation.Registry
	hub      *simulation.Hub
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a Server. If logger is nil, slog.Default() is used.
func New(st store.Store, registry *simulation.Registry, hub *simulation.Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:    st,
		registry: registry,
		hub:      hub,
		validate: validator.New(),
		logger:   logger.With("component", "server"),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Agent catalog
	mux.HandleFunc("GET /api/agents", s.handleListAgents)
	mux.HandleFunc("POST /api/agents", s.handleCreateAgent)
	mux.HandleFunc("GET /api/agents/{id}", s.handleGetAgent)
	mux.HandleFunc("PUT /api/agents/{id}", s.handleUpdateAgent)
	mux.HandleFunc("DELETE /api/agents/{id}", s.handleDeleteAgent)

	// Rooms and participant assignment
	mux.HandleFunc("GET /api/rooms", s.handleListRooms)
	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /api/rooms/{id}", s.handleGetRoom)
	mux.HandleFunc("PUT /api/rooms/{id}", s.handleUpdateRoom)
	mux.HandleFunc("DELETE /api/rooms/{id}", s.handleDeleteRoom)
	mux.HandleFunc("POST /api/rooms/{id}/agents", s.handleAddParticipant)
	mux.HandleFunc("PUT /api/rooms/{id}/agents/reorder", s.handleReorderParticipants)
	mux.HandleFunc("DELETE /api/rooms/{id}/agents/{agentID}", s.handleRemoveParticipant)
	mux.HandleFunc("GET /api/rooms/{id}/messages", s.handleListMessages)

	// Simulation control
	mux.HandleFunc("POST /api/simulation/{id}/start", s.handleSimulationStart)
	mux.HandleFunc("POST /api/simulation/{id}/pause", s.handleSimulationPause)
	mux.HandleFunc("POST /api/simulation/{id}/resume", s.handleSimulationResume)
	mux.HandleFunc("POST /api/simulation/{id}/stop", s.handleSimulationStop)
	mux.HandleFunc("POST /api/simulation/{id}/inject", s.handleSimulationInject)
	mux.HandleFunc("GET /api/simulation/{id}/status", s.handleSimulationStatus)

	// Observer stream
	mux.HandleFunc("GET /api/events/{id}", s.handleEvents)

	mux.HandleFunc("GET /api/avatars", s.handleListAvatars)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	return mux
}

// sendJSON writes a JSON response with the given status code.
func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			s.logger.Error("failed to encode response", "error", err)
		}
	}
}

// sendJSONError writes a JSON error response.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// decodeJSON decodes the request body into v and runs struct validation.
// On failure it writes a 400 response and returns false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// internalError logs the error and writes a generic 500 response.
func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	s.sendJSONError(w, http.StatusInternalServerError, "internal server error")
}

// isNotFound reports whether err is the store's missing-entity sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

// handleListAvatars handles GET /api/avatars.
func (s *Server) handleListAvatars(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, avatars.Catalog)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
