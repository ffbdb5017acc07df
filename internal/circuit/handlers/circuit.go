package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"circuit-copilot/internal/circuit/export"
	"circuit-copilot/internal/circuit/layout"
	"circuit-copilot/internal/circuit/models"
	"circuit-copilot/internal/circuit/service"
	"circuit-copilot/internal/circuit/validation"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Circuit Handler
// ============================================================

type CircuitHandler struct {
	pipeline *service.Pipeline
}

func NewCircuitHandler(pipeline *service.Pipeline) *CircuitHandler {
	return &CircuitHandler{pipeline: pipeline}
}

// Register вешает маршруты сервиса на роутер.
func (h *CircuitHandler) Register(r fiber.Router) {
	circuits := r.Group("/circuits")
	circuits.Post("/validate", h.Validate)
	circuits.Post("/generate", h.Generate)
	circuits.Post("/refine", h.Refine)
	circuits.Post("/image-prompt", h.ImagePrompt)
	circuits.Post("/layout/:view", h.Layout)
	circuits.Post("/render/:view", h.Render)
	circuits.Post("/render", h.RenderAll)
	circuits.Post("/netlist", h.Netlist)
	circuits.Post("/optimize", h.Optimize)
	circuits.Post("/export", h.Export)

	r.Get("/library", ListLibrary)
	r.Get("/library/:type", LibraryByType)
	r.Get("/ai/status", h.Status)
}

// ============================================================
// Spec admission
// ============================================================

// Validate проверяет спецификацию и возвращает ее в нормализованном виде.
func (h *CircuitHandler) Validate(c fiber.Ctx) error {
	spec, warnings, err := h.admit(c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"valid":    true,
		"spec":     spec,
		"warnings": warnings,
	})
}

// admit разбирает JSON спецификации. Ошибки декодирования оборачиваются
// в errInvalidJSON.
func (h *CircuitHandler) admit(body []byte) (*models.CircuitSpec, []validation.Issue, error) {
	if len(body) == 0 {
		return nil, nil, errSpecRequired
	}
	spec, warnings, err := h.pipeline.AdmitJSON(body)
	var verr *validation.Error
	if err != nil && !errors.As(err, &verr) {
		return nil, nil, fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return spec, warnings, err
}

// ============================================================
// Layout & render
// ============================================================

func (h *CircuitHandler) Layout(c fiber.Ctx) error {
	view, ok := layout.ParseView(c.Params("view"))
	if !ok {
		return h.fail(c, service.ErrUnknownView)
	}
	spec, _, err := h.admit(c.Body())
	if err != nil {
		return h.fail(c, err)
	}

	result, err := h.pipeline.Layout(spec, view)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(result)
}

// Render отдает один вид как image/svg+xml.
func (h *CircuitHandler) Render(c fiber.Ctx) error {
	view, err := service.ParseRenderView(c.Params("view"))
	if err != nil {
		return h.fail(c, err)
	}
	spec, _, err := h.admit(c.Body())
	if err != nil {
		return h.fail(c, err)
	}

	out, err := h.pipeline.Render(c.Context(), spec, view)
	if err != nil {
		return h.fail(c, err)
	}

	c.Set("X-Skipped-Connections", strconv.Itoa(out.Skipped))
	c.Set("X-Render-Cache", cacheStatus(out.Cached))
	c.Set("Content-Type", export.ContentTypeSVG)
	return c.SendString(out.SVG)
}

func (h *CircuitHandler) RenderAll(c fiber.Ctx) error {
	spec, _, err := h.admit(c.Body())
	if err != nil {
		return h.fail(c, err)
	}

	views, err := h.pipeline.RenderAll(c.Context(), spec)
	if err != nil {
		return h.fail(c, err)
	}

	svgs := fiber.Map{}
	skipped := fiber.Map{}
	for view, out := range views {
		svgs[string(view)] = out.SVG
		skipped[string(view)] = out.Skipped
	}
	svgs["skipped_connections"] = skipped
	return c.JSON(svgs)
}

func (h *CircuitHandler) Netlist(c fiber.Ctx) error {
	spec, _, err := h.admit(c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	power := c.Query("power") == "true"
	return c.JSON(h.pipeline.Netlist(spec, power))
}

func (h *CircuitHandler) Optimize(c fiber.Ctx) error {
	spec, _, err := h.admit(c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(h.pipeline.Optimize(spec))
}

// ============================================================
// Export
// ============================================================

type exportRequest struct {
	Spec    json.RawMessage `json:"spec"`
	Options map[string]any  `json:"options"`
}

func (h *CircuitHandler) Export(c fiber.Ctx) error {
	var req exportRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON payload"})
	}
	spec, _, err := h.admit(req.Spec)
	if err != nil {
		return h.fail(c, err)
	}
	var candidate any
	if req.Options != nil {
		candidate = req.Options
	}
	opts, err := validation.ValidateExportOptions(candidate)
	if err != nil {
		return h.fail(c, err)
	}

	art, err := h.pipeline.Export(spec, *opts)
	if err != nil {
		return h.fail(c, err)
	}

	log.Printf("[CIRCUITS] export %s (%d bytes, placeholder=%t)", art.Filename, len(art.Data), art.Placeholder)
	if art.Placeholder {
		c.Set("X-Placeholder", "true")
	}
	c.Set("Content-Type", art.ContentType)
	c.Attachment(art.Filename)
	return c.Send(art.Data)
}

// ============================================================
// Errors
// ============================================================

var (
	errSpecRequired = errors.New("spec required")
	errInvalidJSON  = errors.New("invalid JSON payload")
)

// fail переводит ошибку конвейера в HTTP-ответ.
func (h *CircuitHandler) fail(c fiber.Ctx, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "validation failed",
			"issues": verr.Issues,
		})
	case errors.Is(err, errSpecRequired), errors.Is(err, errInvalidJSON):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownView):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, export.ErrUnsupportedFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNoBackend):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCollaborator):
		log.Printf("[CIRCUITS] collaborator error: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	log.Printf("[CIRCUITS] error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
