// ABOUTME: Text-generation collaborator interface and history projection
// ABOUTME: Builds each speaker's view of the conversation for generation calls

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/baranbingol1/agent-nebula/internal/store"
)

// seedPrompt opens the conversation when a room has no history yet.
const seedPrompt = "Start the conversation. Introduce yourself and begin discussing."

// ChatMessage is one role/content pair in a generation request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces content for a speaking agent given its view of the
// conversation so far.
type Generator interface {
	Generate(ctx context.Context, agent *store.Agent, history []ChatMessage) (string, error)
}

// BuildHistory projects a room's messages into the speaking agent's
// perspective: the speaker's own messages carry the assistant role, everything
// else (other speakers and injected content) becomes user input annotated with
// the originating name. An empty room yields the seed prompt.
func BuildHistory(messages []*store.Message, speakerID string) []ChatMessage {
	history := make([]ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if msg.AgentID != nil && *msg.AgentID == speakerID {
			history = append(history, ChatMessage{Role: "assistant", Content: msg.Content})
			continue
		}
		name := msg.AgentName
		if name == "" {
			name = "User"
		}
		history = append(history, ChatMessage{
			Role:    "user",
			Content: fmt.Sprintf("[%s]: %s", name, msg.Content),
		})
	}

	if len(history) == 0 {
		history = append(history, ChatMessage{Role: "user", Content: seedPrompt})
	}
	return history
}

// normalizeModel strips the routing prefix some agent configs carry.
func normalizeModel(model string) string {
	return strings.TrimPrefix(model, "litellm/")
}
