package validation

import (
	"fmt"

	"circuit-copilot/internal/circuit/library"
	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Referential audit
// ============================================================

// Audit проверяет ссылочную целостность уже принятой спецификации.
// Найденное не мешает построению раскладок: невалидные соединения
// там просто пропускаются.
func Audit(spec *models.CircuitSpec) []Issue {
	if spec == nil {
		return nil
	}
	c := &collector{}

	seen := make(map[string]int, len(spec.Components))
	for i, comp := range spec.Components {
		if first, dup := seen[comp.ID]; dup {
			c.add(join(index("components", i), "id"),
				fmt.Sprintf("Duplicate component id %q (first at components.%d)", comp.ID, first))
			continue
		}
		seen[comp.ID] = i

		_, hasFootprint := library.ResolveFootprint(comp.Type, comp.Value)
		_, hasPart := library.ResolvePhysicalPart(comp.Type, comp.Value)
		if !hasFootprint && !hasPart {
			c.add(join(index("components", i), "type"),
				fmt.Sprintf("No footprint for component type %q", comp.Type))
		}
	}

	for i, conn := range spec.Connections {
		path := index("connections", i)
		auditEndpoint(c, spec, join(path, "from"), conn.From)
		auditEndpoint(c, spec, join(path, "to"), conn.To)
	}

	placed := make(map[string]int, len(spec.Breadboard))
	for i, p := range spec.Breadboard {
		path := index("breadboard", i)
		if _, ok := seen[p.ComponentID]; !ok {
			c.add(join(path, "component_id"), fmt.Sprintf("Unknown component %q", p.ComponentID))
		}
		if first, dup := placed[p.ComponentID]; dup {
			c.add(join(path, "component_id"),
				fmt.Sprintf("Component %q already placed at breadboard.%d", p.ComponentID, first))
		} else {
			placed[p.ComponentID] = i
		}
		if library.RowIndex(p.Row) < 0 {
			c.add(join(path, "row"), fmt.Sprintf("Row %q is outside A-J", p.Row))
		}
		if p.Col < 1 || p.Col > library.Columns {
			c.add(join(path, "col"), fmt.Sprintf("Column %d is outside 1-%d", p.Col, library.Columns))
		}
	}

	for i, step := range spec.AssemblySteps {
		if step.StepNumber != i+1 {
			c.add(join(index("assembly_steps", i), "step_number"),
				fmt.Sprintf("Expected step %d, got %d", i+1, step.StepNumber))
		}
	}

	return c.issues
}

func auditEndpoint(c *collector, spec *models.CircuitSpec, path, raw string) {
	ep, err := models.ParseEndpoint(raw)
	if err != nil {
		c.add(path, fmt.Sprintf("Malformed endpoint %q", raw))
		return
	}
	comp, ok := spec.ComponentByID(ep.Component)
	if !ok {
		c.add(path, fmt.Sprintf("Unknown component %q", ep.Component))
		return
	}
	if !PinExists(comp, ep.Pin) {
		c.add(path, fmt.Sprintf("Unknown pin %q on %s", ep.Pin, comp.ID))
	}
}

// PinExists проверяет вывод по корпусу (номер или имя) и по детали макетки.
// Для компонентов без корпуса и детали любой вывод считается неизвестным.
func PinExists(comp models.Component, pin string) bool {
	if fp, ok := library.ResolveFootprint(comp.Type, comp.Value); ok {
		if _, ok := fp.Pin(pin); ok {
			return true
		}
	}
	if part, ok := library.ResolvePhysicalPart(comp.Type, comp.Value); ok {
		if _, ok := part.Pin(pin); ok {
			return true
		}
	}
	return false
}
