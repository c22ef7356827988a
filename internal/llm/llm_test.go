// ABOUTME: Tests for history projection and the OpenAI-compatible client
// ABOUTME: Uses httptest to stand in for the completion endpoint

package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baranbingol1/agent-nebula/internal/store"
)

func strptr(s string) *string { return &s }

func TestBuildHistory_SpeakerPerspective(t *testing.T) {
	messages := []*store.Message{
		{AgentID: strptr("a"), AgentName: "Alice", Content: "hello", Role: store.RoleAssistant},
		{AgentID: strptr("b"), AgentName: "Bob", Content: "hi there", Role: store.RoleAssistant},
		{AgentID: nil, Content: "focus please", Role: store.RoleUser},
	}

	history := BuildHistory(messages, "a")
	require.Len(t, history, 3)

	assert.Equal(t, ChatMessage{Role: "assistant", Content: "hello"}, history[0])
	assert.Equal(t, ChatMessage{Role: "user", Content: "[Bob]: hi there"}, history[1])
	assert.Equal(t, ChatMessage{Role: "user", Content: "[User]: focus please"}, history[2])
}

func TestBuildHistory_EmptySeedsOpeningPrompt(t *testing.T) {
	history := BuildHistory(nil, "a")
	require.Len(t, history, 1)
	assert.Equal(t, "user", history[0].Role)
	assert.Contains(t, history[0].Content, "Start the conversation")
}

func TestNormalizeModel(t *testing.T) {
	assert.Equal(t, "gpt-4o", normalizeModel("litellm/gpt-4o"))
	assert.Equal(t, "gpt-4o", normalizeModel("gpt-4o"))
}

func TestOpenAIClient_Generate(t *testing.T) {
	var gotReq chatCompletionRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "generated text"}},
			},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL}, nil)
	agent := &store.Agent{Name: "Nova", SystemPrompt: "Be curious", Model: "litellm/gpt-4o"}

	out, err := client.Generate(context.Background(), agent, []ChatMessage{
		{Role: "user", Content: "[Bob]: hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "generated text", out)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, ChatMessage{Role: "system", Content: "Be curious"}, gotReq.Messages[0])
}

func TestOpenAIClient_GenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited", "type": "rate_limit"},
		})
	}))
	defer srv.Close()

	client := NewOpenAIClient(ProviderConfig{BaseURL: srv.URL}, nil)
	agent := &store.Agent{Name: "Nova", Model: "gpt-4o"}

	_, err := client.Generate(context.Background(), agent, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestOpenAIClient_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body first: the server only observes a client disconnect
		// (and cancels r.Context()) once the request body has been consumed.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewOpenAIClient(ProviderConfig{BaseURL: srv.URL}, nil)
	agent := &store.Agent{Name: "Nova", Model: "gpt-4o"}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := client.Generate(ctx, agent, nil)
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Generate did not return after cancellation")
	}
}
