package proxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Proxy Handler
// ============================================================

var client = &http.Client{Timeout: 2 * time.Minute}

// forwardedHeaders копируются из входящего запроса в upstream.
var forwardedHeaders = []string{"Content-Type", "Accept", "Authorization", "X-Request-ID"}

// skippedHeaders не копируются из ответа upstream.
var skippedHeaders = map[string]bool{
	"Content-Length":    true,
	"Transfer-Encoding": true,
	"Connection":        true,
}

// ProxyTo прокси запрос к другому сервису
func ProxyTo(targetURL string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return forwardRequest(c, withQuery(c, targetURL))
	}
}

// ProxyPrefix проксирует все, что попало под wildcard маршрута, на baseURL
// с сохранением хвоста пути и query.
func ProxyPrefix(baseURL string) fiber.Handler {
	base := strings.TrimRight(baseURL, "/")
	return func(c fiber.Ctx) error {
		return forwardRequest(c, withQuery(c, base+"/"+c.Params("*")))
	}
}

func withQuery(c fiber.Ctx, targetURL string) string {
	if q := string(c.Request().URI().QueryString()); q != "" {
		return targetURL + "?" + q
	}
	return targetURL
}

func forwardRequest(c fiber.Ctx, targetURL string) error {
	log.Printf("[PROXY] Request: %s %s", c.Method(), c.Path())
	log.Printf("[PROXY] Content-Length: %d", len(c.Body()))
	log.Printf("[PROXY] Forwarding to: %s", targetURL)

	var body io.Reader
	if len(c.Body()) > 0 {
		body = bytes.NewReader(c.Body())
	}
	req, err := http.NewRequestWithContext(c.Context(), c.Method(), targetURL, body)
	if err != nil {
		log.Printf("[PROXY] build request error: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "proxy failed"})
	}

	for _, name := range forwardedHeaders {
		if v := c.Get(name); v != "" {
			req.Header.Set(name, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[PROXY] Error: %v", err)
		return c.Status(502).JSON(fiber.Map{"error": "failed to reach upstream service"})
	}
	defer resp.Body.Close()

	return copyResponse(c, resp)
}

func copyResponse(c fiber.Ctx, resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[PROXY] Read response error: %v", err)
		return c.Status(502).JSON(fiber.Map{"error": "invalid upstream response"})
	}

	for key, values := range resp.Header {
		if len(values) > 0 && !skippedHeaders[key] {
			c.Set(key, values[0])
		}
	}

	c.Status(resp.StatusCode)
	return c.Send(data)
}

// Ping проверяет, что upstream отвечает 2xx на GET url.
func Ping(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("upstream unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	return nil
}
