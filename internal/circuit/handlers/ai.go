package handlers

import (
	"encoding/json"
	"strings"

	"circuit-copilot/internal/circuit/ai"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// AI Handlers
// ============================================================

type generateRequest struct {
	Description string `json:"description"`
}

// Generate просит модель придумать схему по текстовому описанию.
func (h *CircuitHandler) Generate(c fiber.Ctx) error {
	var req generateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	if strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "description required"})
	}

	design, err := h.pipeline.Generate(c.Context(), req.Description)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(design)
}

type specKindRequest struct {
	Spec json.RawMessage `json:"spec"`
	Kind string          `json:"kind"`
}

func (h *CircuitHandler) Refine(c fiber.Ctx) error {
	var req specKindRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	kind, err := ai.ParseRefineKind(req.Kind)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	spec, _, err := h.admit(req.Spec)
	if err != nil {
		return h.fail(c, err)
	}

	design, err := h.pipeline.Refine(c.Context(), spec, kind)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(design)
}

func (h *CircuitHandler) ImagePrompt(c fiber.Ctx) error {
	var req specKindRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	kind, err := ai.ParseImageKind(req.Kind)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	spec, _, err := h.admit(req.Spec)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(h.pipeline.ImagePrompt(c.Context(), spec, kind))
}

// Status сообщает, какой backend подключен и отвечает ли он.
func (h *CircuitHandler) Status(c fiber.Ctx) error {
	return c.JSON(h.pipeline.Status(c.Context()))
}
