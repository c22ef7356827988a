// ABOUTME: Event payloads pushed to room observers during a simulation
// ABOUTME: Status, message, typing and error events with a type discriminator

package simulation

import (
	"time"

	"github.com/baranbingol1/agent-nebula/internal/store"
)

// Event type discriminators
const (
	EventTypeStatus  = "status"
	EventTypeMessage = "message"
	EventTypeTyping  = "typing"
	EventTypeError   = "error"
)

// Event is a single observer notification. Exactly one group of fields is
// populated depending on Type.
type Event struct {
	Type string `json:"type"`

	// status
	Status           string `json:"status,omitempty"`
	CurrentTurnIndex *int   `json:"current_turn_index,omitempty"`
	MaxTurns         *int   `json:"max_turns,omitempty"`

	// message
	Message *MessagePayload `json:"message,omitempty"`

	// typing
	AgentID   string `json:"agent_id,omitempty"`
	AgentName string `json:"agent_name,omitempty"`

	// error
	Error string `json:"error,omitempty"`
}

// MessagePayload is the wire form of a persisted message.
type MessagePayload struct {
	ID         string  `json:"id"`
	RoomID     string  `json:"room_id"`
	AgentID    *string `json:"agent_id"`
	Role       string  `json:"role"`
	Content    string  `json:"content"`
	TurnNumber int     `json:"turn_number"`
	CreatedAt  string  `json:"created_at"`
	AgentName  string  `json:"agent_name,omitempty"`
}

// StatusEvent builds a status event carrying the turn counters.
func StatusEvent(status string, turnIndex, maxTurns int) Event {
	return Event{
		Type:             EventTypeStatus,
		Status:           status,
		CurrentTurnIndex: &turnIndex,
		MaxTurns:         &maxTurns,
	}
}

// MessageEvent builds a message event from a persisted message.
func MessageEvent(msg *store.Message) Event {
	return Event{
		Type: EventTypeMessage,
		Message: &MessagePayload{
			ID:         msg.ID,
			RoomID:     msg.RoomID,
			AgentID:    msg.AgentID,
			Role:       msg.Role,
			Content:    msg.Content,
			TurnNumber: msg.TurnNumber,
			CreatedAt:  msg.CreatedAt.UTC().Format(time.RFC3339Nano),
			AgentName:  msg.AgentName,
		},
	}
}

// TypingEvent announces the agent about to produce the next turn.
func TypingEvent(agentID, agentName string) Event {
	return Event{Type: EventTypeTyping, AgentID: agentID, AgentName: agentName}
}

// ErrorEvent reports a fatal simulation failure to observers.
func ErrorEvent(message string) Event {
	return Event{Type: EventTypeError, Error: message}
}
