// ABOUTME: Store interface and data types for agent-nebula persistence
// ABOUTME: Defines Agent, Room, Participant, Message structs and the Store interface

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateParticipant is returned when assigning an agent to a room it already belongs to
var ErrDuplicateParticipant = errors.New("agent already assigned to room")

// Room status values. A room is idle until a simulation starts, and returns
// to idle when the simulation completes its turn budget or fails.
const (
	RoomStatusIdle    = "idle"
	RoomStatusRunning = "running"
	RoomStatusPaused  = "paused"
	RoomStatusStopped = "stopped"
)

// Message role values
const (
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// Agent is a configured conversation participant: a name, behavior
// instructions and the model identifier used for generation.
type Agent struct {
	ID           string
	Name         string
	SystemPrompt string
	Model        string
	AvatarID     string
	CreatedAt    time.Time
}

// Participant is an agent's assignment to a room. TurnOrder values within a
// room form a contiguous zero-based permutation.
type Participant struct {
	AgentID   string
	AgentName string
	TurnOrder int
}

// Room is a conversation context with an ordered participant list and a
// turn-count bound. CurrentTurnIndex advances only when a participant turn
// completes.
type Room struct {
	ID               string
	Name             string
	Description      string
	Status           string
	CurrentTurnIndex int
	MaxTurns         int
	CreatedAt        time.Time

	// Participants are ordered by turn_order. Populated by GetRoom and
	// ListRooms.
	Participants []Participant
}

// Message is a single utterance within a room. AgentID is nil for injected
// messages produced by an external actor. Ordering within a room is by
// CreatedAt, which coincides with insertion order.
type Message struct {
	ID         string
	RoomID     string
	AgentID    *string
	Role       string
	Content    string
	TurnNumber int
	CreatedAt  time.Time

	// AgentName is resolved from the agents table when loading; empty for
	// injected messages.
	AgentName string
}

// Store defines the persistence surface consumed by the service and the
// simulation core.
type Store interface {
	// Agents
	CreateAgent(ctx context.Context, agent *Agent) error
	GetAgent(ctx context.Context, id string) (*Agent, error)
	ListAgents(ctx context.Context) ([]*Agent, error)
	UpdateAgent(ctx context.Context, agent *Agent) error
	DeleteAgent(ctx context.Context, id string) error

	// Rooms
	CreateRoom(ctx context.Context, room *Room) error
	GetRoom(ctx context.Context, id string) (*Room, error)
	ListRooms(ctx context.Context) ([]*Room, error)
	UpdateRoom(ctx context.Context, room *Room) error
	DeleteRoom(ctx context.Context, id string) error

	// Participant assignment
	AddParticipant(ctx context.Context, roomID, agentID string) error
	RemoveParticipant(ctx context.Context, roomID, agentID string) error
	ReorderParticipants(ctx context.Context, roomID string, agentIDs []string) error

	// Messages
	SaveMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*Message, int, error)

	// Simulation state updates issued by the turn scheduler
	SetRoomStatus(ctx context.Context, roomID, status string) error
	SetRoomTurn(ctx context.Context, roomID string, status string, turnIndex int) error

	// Close releases any resources held by the store
	Close() error
}
