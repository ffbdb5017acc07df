package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"circuit-copilot/internal/circuit/ai"
	"circuit-copilot/internal/circuit/cache"
	"circuit-copilot/internal/circuit/handlers"
	"circuit-copilot/internal/circuit/service"
	"circuit-copilot/internal/common/config"
	"circuit-copilot/internal/common/middleware"
	health "circuit-copilot/internal/gateway/handlers"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Circuits Service
// ============================================================

func main() {
	cfg := config.Load()

	app, cleanup, err := newServer(cfg)
	if err != nil {
		log.Fatalf("Failed to configure service: %v", err)
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Circuits Service on %s (env: %s, ai: %s)", addr, cfg.Environment, cfg.AIBackend)

	err = app.Listen(addr)
	if cerr := cleanup(); cerr != nil {
		log.Printf("[CACHE] close: %v", cerr)
	}
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newServer собирает приложение. cleanup освобождает кэш и должен быть
// вызван после остановки сервера.
func newServer(cfg *config.Config) (*fiber.App, func() error, error) {
	backend, err := ai.NewBackend(cfg.AIBackend,
		ai.OllamaConfig{
			BaseURL: cfg.OllamaURL,
			Model:   cfg.OllamaModel,
			Timeout: cfg.AITimeoutDuration(),
			Retries: cfg.AIRetries,
		},
		ai.ChatConfig{
			BaseURL: cfg.ChatURL,
			Model:   cfg.ChatModel,
			APIKey:  cfg.ChatAPIKey,
			Timeout: cfg.AITimeoutDuration(),
			Retries: cfg.AIRetries,
		})
	if err != nil {
		return nil, nil, fmt.Errorf("ai backend: %w", err)
	}

	var (
		renderCache service.RenderCache
		checks      []health.Check
		cleanup     = func() error { return nil }
	)
	if cfg.CacheDBPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		c, err := cache.Open(ctx, cfg.CacheDBPath)
		cancel()
		if err != nil {
			return nil, nil, fmt.Errorf("render cache: %w", err)
		}
		renderCache = c
		checks = append(checks, c.Ping)
		cleanup = c.Close
	}

	pipeline := service.NewPipeline(backend, renderCache, service.Options{
		StrictReferences: cfg.StrictReferences,
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:    cfg.BodyLimit,
		AppName:      "Circuits Service",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", health.LivenessProbe)
	app.Get("/health/ready", health.ReadinessProbe(checks...))
	app.Get("/health/startup", health.StartupProbe)

	// ============================================================
	// Circuit Routes
	// ============================================================

	handlers.NewCircuitHandler(pipeline).Register(app)

	return app, cleanup, nil
}
