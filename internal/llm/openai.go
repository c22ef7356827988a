// ABOUTME: OpenAI-compatible chat-completions client implementing Generator
// ABOUTME: Credentials and endpoint come from NEBULA_* environment variables

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/baranbingol1/agent-nebula/internal/store"
)

// ProviderConfig holds generation-provider settings, loaded from the
// environment with the NEBULA_ prefix (NEBULA_API_KEY, NEBULA_BASE_URL).
type ProviderConfig struct {
	APIKey  string `envconfig:"API_KEY"`
	BaseURL string `envconfig:"BASE_URL" default:"https://api.openai.com/v1"`
}

// LoadProviderConfig reads provider settings from the environment.
func LoadProviderConfig() (ProviderConfig, error) {
	var cfg ProviderConfig
	if err := envconfig.Process("nebula", &cfg); err != nil {
		return cfg, fmt.Errorf("reading provider env: %w", err)
	}
	return cfg, nil
}

// OpenAIClient calls an OpenAI-compatible /chat/completions endpoint. The
// model identifier comes from the speaking agent's configuration, so one
// client serves every agent.
type OpenAIClient struct {
	cfg        ProviderConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOpenAIClient creates a client. Pass nil logger for default.
func NewOpenAIClient(cfg ProviderConfig, logger *slog.Logger) *OpenAIClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAIClient{
		cfg: cfg,
		// No client-level timeout: the caller bounds each request through ctx.
		httpClient: &http.Client{},
		logger:     logger.With("component", "llm"),
	}
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate requests a completion for the agent's model, prepending the
// agent's system prompt to the supplied history.
func (c *OpenAIClient) Generate(ctx context.Context, agent *store.Agent, history []ChatMessage) (string, error) {
	msgs := make([]ChatMessage, 0, len(history)+1)
	if agent.SystemPrompt != "" {
		msgs = append(msgs, ChatMessage{Role: "system", Content: agent.SystemPrompt})
	}
	msgs = append(msgs, history...)

	reqBody := chatCompletionRequest{
		Model:    normalizeModel(agent.Model),
		Messages: msgs,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if completion.Error != nil {
			return "", fmt.Errorf("completion failed: %s (%s)", completion.Error.Message, completion.Error.Type)
		}
		return "", fmt.Errorf("completion failed with status %d", resp.StatusCode)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	c.logger.Debug("completion succeeded",
		"model", reqBody.Model,
		"agent", agent.Name,
		"duration", time.Since(start))

	return completion.Choices[0].Message.Content, nil
}
