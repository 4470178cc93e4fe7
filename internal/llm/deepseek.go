package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/navan-labs/navan/internal/httpkit"
)

// DeepSeekClient is a client for the DeepSeek chat-completions API
// (OpenAI wire format).
type DeepSeekClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDeepSeekClient creates a DeepSeek client.
func NewDeepSeekClient(baseURL, apiKey, model string, logger *slog.Logger) *DeepSeekClient {
	if logger == nil {
		logger = slog.Default()
	}
	// Generation can take a while before headers arrive on long prompts,
	// so the transport gets a more generous header timeout than the
	// shared default.
	t := httpkit.NewTransport()
	t.ResponseHeaderTimeout = 60 * time.Second

	return &DeepSeekClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		logger:  logger.With("provider", "deepseek"),
		httpClient: httpkit.NewClient(
			httpkit.WithTimeout(90*time.Second),
			httpkit.WithTransport(t),
		),
	}
}

type deepseekRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type deepseekResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Chat sends a chat-completions request and returns the reply text.
func (c *DeepSeekClient) Chat(ctx context.Context, system, user string, history []Message) (string, error) {
	messages := make([]Message, 0, len(history)+2)
	if system != "" {
		messages = append(messages, Message{Role: "system", Content: system})
	}
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: user})

	body, err := json.Marshal(deepseekRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("deepseek: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("deepseek: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek: request failed: %w", err)
	}
	defer httpkit.DrainAndClose(resp.Body, 4096)

	if resp.StatusCode != http.StatusOK {
		errBody := httpkit.ReadErrorBody(resp.Body, 1024)
		return "", fmt.Errorf("deepseek: status %d: %s", resp.StatusCode, errBody)
	}

	var out deepseekResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("deepseek: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("deepseek: empty choices in response")
	}

	c.logger.Debug("chat completion",
		"model", c.model,
		"prompt_tokens", out.Usage.PromptTokens,
		"completion_tokens", out.Usage.CompletionTokens,
		"duration", time.Since(start),
	)

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
