package ai

import (
	"context"
	"encoding/json"
	"sync"
)

// ============================================================
// Static backend
// ============================================================

// StaticBackend отвечает одним и тем же текстом на любой запрос.
// Используется в режиме AI_BACKEND=mock и в тестах.
type StaticBackend struct {
	Response string
	Err      error
	mu       sync.Mutex
	requests []CompletionRequest
}

func NewStaticBackend(response string) *StaticBackend {
	return &StaticBackend{Response: response}
}

// NewMockBackend отдаёт образцовую схему мигалки на NE555.
func NewMockBackend() *StaticBackend {
	var spec map[string]any
	if err := json.Unmarshal([]byte(exampleSpec), &spec); err != nil {
		panic("ai: embedded example spec is not valid JSON: " + err.Error())
	}
	spec["circuit_name"] = "555 LED Blinker"
	spec["description"] = "A simple LED blinker circuit using the NE555 timer IC"
	data, _ := json.MarshalIndent(spec, "", "  ")
	return NewStaticBackend(string(data))
}

func (b *StaticBackend) Name() string {
	return "mock"
}

func (b *StaticBackend) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.mu.Lock()
	b.requests = append(b.requests, req)
	b.mu.Unlock()
	if b.Err != nil {
		return "", b.Err
	}
	return b.Response, nil
}

// Requests возвращает копию принятых запросов.
func (b *StaticBackend) Requests() []CompletionRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]CompletionRequest(nil), b.requests...)
}

func (b *StaticBackend) Models(context.Context) ([]string, error) {
	if b.Err != nil {
		return nil, b.Err
	}
	return []string{"mock"}, nil
}
