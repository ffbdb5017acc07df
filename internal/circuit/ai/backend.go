package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ============================================================
// Backend contract
// ============================================================

var (
	ErrEmptyResponse = errors.New("empty response from AI backend")
	ErrNoJSON        = errors.New("no JSON object found in response")
	ErrMissingAPIKey = errors.New("api key is required")
)

// CompletionRequest — один запрос к языковой модели.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// Backend — внешний генератор текста. Реализации создаются явно
// и передаются в конвейер, глобальных экземпляров нет.
type Backend interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Models(ctx context.Context) ([]string, error)
}

// ============================================================
// HTTP transport with retries
// ============================================================

// StatusError — ответ backend'а с кодом не 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Body)
}

type transport struct {
	client  *http.Client
	retries int
	backoff time.Duration
}

func newTransport(timeout time.Duration, retries int) *transport {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	return &transport{
		client:  &http.Client{Timeout: timeout},
		retries: retries,
		backoff: 500 * time.Millisecond,
	}
}

// do выполняет запрос и декодирует JSON-ответ в out. Повторяет попытку
// при сетевой ошибке и ответах 5xx, 4xx возвращает сразу.
func (t *transport) do(ctx context.Context, method, url string, headers map[string]string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= t.retries; attempt++ {
		if attempt > 0 {
			log.Printf("[AI] retry %d/%d %s %s: %v", attempt, t.retries, method, url, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(t.backoff * time.Duration(attempt)):
			}
		}

		lastErr = t.once(ctx, method, url, headers, payload, out)
		if lastErr == nil {
			return nil
		}
		var status *StatusError
		if errors.As(lastErr, &status) && status.Code < 500 {
			return lastErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return lastErr
}

func (t *transport) once(ctx context.Context, method, url string, headers map[string]string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: truncate(string(data), 200)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
