package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// Check — проверка зависимости для readiness.
type Check func(ctx context.Context) error

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe проверяет готовность приложения обрабатывать запросы.
// Первая упавшая проверка переводит ответ в 503.
func ReadinessProbe(checks ...Check) fiber.Handler {
	return func(c fiber.Ctx) error {
		for _, check := range checks {
			if err := check(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "not ready",
					"error":  err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}

// StartupProbe проверяет, что приложение успешно запустилось
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
