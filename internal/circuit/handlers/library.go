package handlers

import (
	"circuit-copilot/internal/circuit/library"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Library Handlers
// ============================================================

// ListLibrary отдает все посадочные места и детали макетки.
func ListLibrary(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"component_types": library.ComponentTypes(),
		"footprints":      library.Footprints(),
		"parts":           library.PhysicalParts(),
	})
}

func LibraryByType(c fiber.Ctx) error {
	componentType := c.Params("type")
	footprint, hasFootprint := library.ResolveFootprint(componentType, "")
	part, hasPart := library.ResolvePhysicalPart(componentType, "")
	if !hasFootprint && !hasPart {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown component type: " + componentType,
		})
	}

	resp := fiber.Map{
		"type":       componentType,
		"dimensions": library.ComponentDimensions(componentType),
	}
	if hasFootprint {
		resp["footprint"] = footprint
	}
	if hasPart {
		resp["part"] = part
	}
	return c.JSON(resp)
}
