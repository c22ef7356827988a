// Package store provides persistent storage for agent-nebula using SQLite.
//
// # Data Models
//
//   - Agent: a configured participant (name, system prompt, model, avatar)
//   - Room: a conversation context with status, turn index and turn budget
//   - Participant: an agent's assignment to a room with its turn order
//   - Message: a single utterance, optionally linked to an agent
//
// Turn orders within a room are always a contiguous zero-based permutation;
// AddParticipant appends, RemoveParticipant and DeleteAgent close gaps, and
// ReorderParticipants swaps in a full permutation.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// Message ordering relies on created_at (RFC3339Nano) with rowid as the
// tiebreaker, so listing order always matches insertion order.
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: requested entity does not exist
//   - ErrDuplicateParticipant: agent already assigned to the room
//
// All methods accept context.Context for cancellation support. Use
// NewSQLiteStore(":memory:") for tests.
package store
