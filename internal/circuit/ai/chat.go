package ai

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// ============================================================
// OpenAI-compatible chat backend
// ============================================================

const (
	DefaultChatURL   = "https://api.tambo.ai/v1"
	DefaultChatModel = "gpt-4"
)

type ChatConfig struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
	Retries int
}

type ChatBackend struct {
	baseURL string
	model   string
	apiKey  string
	http    *transport
}

func NewChatBackend(cfg ChatConfig) (*ChatBackend, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultChatURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultChatModel
	}
	return &ChatBackend{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		apiKey:  cfg.APIKey,
		http:    newTransport(cfg.Timeout, cfg.Retries),
	}, nil
}

func (b *ChatBackend) Name() string {
	return "chat"
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (b *ChatBackend) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + b.apiKey}
}

func (b *ChatBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	var messages []chatMessage
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := chatRequest{
		Model:       b.model,
		Messages:    messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	}

	var resp chatResponse
	if err := b.http.do(ctx, http.MethodPost, b.baseURL+"/chat/completions", b.headers(), body, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

type chatModelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (b *ChatBackend) Models(ctx context.Context) ([]string, error) {
	var resp chatModelsResponse
	if err := b.http.do(ctx, http.MethodGet, b.baseURL+"/models", b.headers(), nil, &resp); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(resp.Data))
	for _, m := range resp.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}
