// Package server exposes the agent-nebula HTTP API.
//
// # Overview
//
// The server package wires the persistence layer and the simulation registry
// into a REST surface plus a streaming observer endpoint. It owns no domain
// state of its own; every handler delegates to the store or the registry and
// translates their sentinel errors into JSON error responses.
//
// # HTTP API
//
//   - GET/POST /api/agents, GET/PUT/DELETE /api/agents/{id} - agent catalog
//   - GET/POST /api/rooms, GET/PUT/DELETE /api/rooms/{id} - rooms
//   - POST /api/rooms/{id}/agents - assign an agent to a room
//   - DELETE /api/rooms/{id}/agents/{agentID} - remove an assignment
//   - PUT /api/rooms/{id}/agents/reorder - replace the speaking order
//   - GET /api/rooms/{id}/messages - paginated history with total count
//   - POST /api/simulation/{id}/start|pause|resume|stop|inject - lifecycle
//   - GET /api/simulation/{id}/status - persisted room status and counters
//   - GET /api/events/{id} - SSE stream of room events
//   - GET /api/avatars - avatar catalog
//   - GET /api/health - liveness check
//
// # Error Mapping
//
// Missing entities produce 404 with {"error": ...} bodies. Lifecycle
// rejections (double start, control of a non-running room) and validation
// failures produce 400. Everything else is a 500 with a generic body; the
// underlying error is logged, not leaked.
package server
