package ai

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// ============================================================
// Ollama backend
// ============================================================

const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "llama2"
)

type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
	Retries int
}

type OllamaBackend struct {
	baseURL string
	model   string
	http    *transport
}

func NewOllamaBackend(cfg OllamaConfig) *OllamaBackend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOllamaURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaModel
	}
	return &OllamaBackend{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		http:    newTransport(cfg.Timeout, cfg.Retries),
	}
}

func (b *OllamaBackend) Name() string {
	return "ollama"
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func (b *OllamaBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body := ollamaGenerateRequest{
		Model:  b.model,
		Prompt: req.Prompt,
		System: req.System,
		Stream: false,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			TopP:        req.TopP,
			NumPredict:  req.MaxTokens,
		},
	}

	var resp ollamaGenerateResponse
	if err := b.http.do(ctx, http.MethodPost, b.baseURL+"/api/generate", nil, body, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Response) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Response, nil
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

func (b *OllamaBackend) Models(ctx context.Context) ([]string, error) {
	var resp ollamaTagsResponse
	if err := b.http.do(ctx, http.MethodGet, b.baseURL+"/api/tags", nil, nil, &resp); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
