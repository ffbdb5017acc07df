package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Schema Validator
// ============================================================

// ValidateJSON декодирует JSON и проверяет его как CircuitSpec.
func ValidateJSON(data []byte) (*models.CircuitSpec, error) {
	candidate, err := decode(data)
	if err != nil {
		return nil, err
	}
	return Validate(candidate)
}

// Validate проверяет форму недоверенного объекта (результат декодирования
// JSON или YAML) и собирает из него CircuitSpec. Ссылочная целостность
// здесь не проверяется, для этого есть Audit.
func Validate(candidate any) (*models.CircuitSpec, error) {
	c := &collector{}

	obj, ok := asObject(candidate)
	if !ok {
		c.add(rootPath, "Expected object, received "+typeName(candidate))
		return nil, c.err()
	}

	spec := &models.CircuitSpec{
		CircuitName: requiredString(c, obj, "circuit_name", "", "Circuit name is required"),
		Description: requiredString(c, obj, "description", "", "Circuit description is required"),
	}

	for i, item := range requiredArray(c, obj, "components", "", "At least one component is required") {
		spec.Components = append(spec.Components, component(c, item, index("components", i)))
	}
	for i, item := range requiredArray(c, obj, "connections", "", "At least one connection is required") {
		spec.Connections = append(spec.Connections, connection(c, item, index("connections", i)))
	}

	spec.Breadboard = []models.BreadboardPlacement{}
	for i, item := range requiredArray(c, obj, "breadboard", "", "") {
		spec.Breadboard = append(spec.Breadboard, placement(c, item, index("breadboard", i)))
	}

	spec.PCBHints = pcbHints(c, obj)

	for i, item := range requiredArray(c, obj, "assembly_steps", "", "At least one assembly step is required") {
		spec.AssemblySteps = append(spec.AssemblySteps, assemblyStep(c, item, index("assembly_steps", i)))
	}

	spec.SchematicPrompt = optionalString(c, obj, "schematic_prompt", "")
	spec.BreadboardPrompt = optionalString(c, obj, "breadboard_prompt", "")
	spec.PCBPrompt = optionalString(c, obj, "pcb_prompt", "")

	difficulty := requiredEnum(c, obj, "estimated_difficulty", "",
		string(models.DifficultyBeginner), string(models.DifficultyIntermediate), string(models.DifficultyAdvanced))
	spec.EstimatedDifficulty = models.Difficulty(difficulty)
	spec.EstimatedTime = requiredString(c, obj, "estimated_time", "", "Estimated time is required")

	spec.RequiredTools = stringArray(c, obj, "required_tools", "", true)
	if spec.RequiredTools == nil && c.err() == nil {
		spec.RequiredTools = []string{}
	}

	if err := c.err(); err != nil {
		return nil, err
	}
	return spec, nil
}

// ============================================================
// Nested objects
// ============================================================

func component(c *collector, item any, path string) models.Component {
	obj, ok := asObject(item)
	if !ok {
		c.add(path, "Expected object, received "+typeName(item))
		return models.Component{}
	}
	return models.Component{
		ID:          requiredString(c, obj, "id", path, "Component ID is required"),
		Type:        requiredString(c, obj, "type", path, "Component type is required"),
		Value:       requiredString(c, obj, "value", path, "Component value is required"),
		Footprint:   requiredString(c, obj, "footprint", path, "KiCad footprint is required"),
		Model:       optionalString(c, obj, "model", path),
		Description: optionalString(c, obj, "description", path),
	}
}

func connection(c *collector, item any, path string) models.Connection {
	obj, ok := asObject(item)
	if !ok {
		c.add(path, "Expected object, received "+typeName(item))
		return models.Connection{}
	}
	return models.Connection{
		From:        requiredString(c, obj, "from", path, "Connection from is required"),
		To:          requiredString(c, obj, "to", path, "Connection to is required"),
		WireColor:   requiredString(c, obj, "wire_color", path, "Wire color is required"),
		Description: optionalString(c, obj, "description", path),
	}
}

func placement(c *collector, item any, path string) models.BreadboardPlacement {
	obj, ok := asObject(item)
	if !ok {
		c.add(path, "Expected object, received "+typeName(item))
		return models.BreadboardPlacement{}
	}

	p := models.BreadboardPlacement{
		ComponentID: requiredString(c, obj, "component_id", path, "Component ID is required"),
		Row:         requiredString(c, obj, "row", path, "Row is required"),
	}

	if col, ok := requiredInteger(c, obj, "col", path); ok {
		if col < 0 {
			c.add(join(path, "col"), "Column must be positive")
		}
		p.Col = col
	}

	if _, present := obj["orientation"]; present {
		p.Orientation = models.Orientation(requiredEnum(c, obj, "orientation", path,
			string(models.OrientationHorizontal), string(models.OrientationVertical)))
	}
	return p
}

func pcbHints(c *collector, root map[string]any) models.PCBHints {
	raw, present := root["pcb_hints"]
	if !present {
		c.add("pcb_hints", "Required")
		return models.PCBHints{}
	}
	obj, ok := asObject(raw)
	if !ok {
		c.add("pcb_hints", "Expected object, received "+typeName(raw))
		return models.PCBHints{}
	}

	const path = "pcb_hints"
	hints := models.PCBHints{
		Layer: models.BoardLayer(requiredEnum(c, obj, "layer", path, string(models.LayerSingle), string(models.LayerDouble))),
	}

	if width, ok := requiredNumber(c, obj, "trace_width", path); ok {
		if width <= 0 {
			c.add(join(path, "trace_width"), "Trace width must be positive")
		}
		hints.TraceWidth = width
	}
	hints.ViaSize = optionalPositive(c, obj, "via_size", path)
	hints.Clearance = optionalPositive(c, obj, "clearance", path)
	return hints
}

func assemblyStep(c *collector, item any, path string) models.AssemblyStep {
	obj, ok := asObject(item)
	if !ok {
		c.add(path, "Expected object, received "+typeName(item))
		return models.AssemblyStep{}
	}

	step := models.AssemblyStep{}
	if n, ok := requiredInteger(c, obj, "step_number", path); ok {
		if n <= 0 {
			c.add(join(path, "step_number"), "Step number must be positive")
		}
		step.StepNumber = n
	}
	step.Description = requiredString(c, obj, "description", path, "Step description is required")
	step.ImagePrompt = optionalString(c, obj, "image_prompt", path)
	step.Components = stringArray(c, obj, "components", path, false)
	step.Tools = stringArray(c, obj, "tools", path, false)
	return step
}

// ============================================================
// Field helpers
// ============================================================

func requiredString(c *collector, obj map[string]any, key, path, emptyMsg string) string {
	p := join(path, key)
	raw, present := obj[key]
	if !present {
		c.add(p, emptyMsg)
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		c.add(p, "Expected string, received "+typeName(raw))
		return ""
	}
	if s == "" {
		c.add(p, emptyMsg)
	}
	return s
}

func optionalString(c *collector, obj map[string]any, key, path string) string {
	raw, present := obj[key]
	if !present || raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		c.add(join(path, key), "Expected string, received "+typeName(raw))
		return ""
	}
	return s
}

func requiredEnum(c *collector, obj map[string]any, key, path string, allowed ...string) string {
	p := join(path, key)
	raw, present := obj[key]
	if !present {
		c.add(p, "Required")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		c.add(p, "Expected string, received "+typeName(raw))
		return ""
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	c.add(p, fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", quoteAll(allowed), s))
	return ""
}

// requiredArray возвращает элементы массива; пустое emptyMsg разрешает пустой массив.
func requiredArray(c *collector, obj map[string]any, key, path, emptyMsg string) []any {
	p := join(path, key)
	raw, present := obj[key]
	if !present {
		c.add(p, "Required")
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		c.add(p, "Expected array, received "+typeName(raw))
		return nil
	}
	if len(items) == 0 && emptyMsg != "" {
		c.add(p, emptyMsg)
	}
	return items
}

func stringArray(c *collector, obj map[string]any, key, path string, required bool) []string {
	p := join(path, key)
	raw, present := obj[key]
	if !present || (raw == nil && !required) {
		if required {
			c.add(p, "Required")
		}
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		c.add(p, "Expected array, received "+typeName(raw))
		return nil
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			c.add(index(p, i), "Expected string, received "+typeName(item))
			continue
		}
		out = append(out, s)
	}
	return out
}

func requiredNumber(c *collector, obj map[string]any, key, path string) (float64, bool) {
	p := join(path, key)
	raw, present := obj[key]
	if !present {
		c.add(p, "Required")
		return 0, false
	}
	f, ok := toFloat(raw)
	if !ok {
		c.add(p, "Expected number, received "+typeName(raw))
		return 0, false
	}
	return f, true
}

func requiredInteger(c *collector, obj map[string]any, key, path string) (int, bool) {
	f, ok := requiredNumber(c, obj, key, path)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		c.add(join(path, key), "Expected integer, received float")
		return 0, false
	}
	return int(f), true
}

func optionalPositive(c *collector, obj map[string]any, key, path string) *float64 {
	raw, present := obj[key]
	if !present || raw == nil {
		return nil
	}
	f, ok := toFloat(raw)
	if !ok {
		c.add(join(path, key), "Expected number, received "+typeName(raw))
		return nil
	}
	if f <= 0 {
		c.add(join(path, key), "Number must be greater than 0")
	}
	return &f
}

// ============================================================
// Type helpers
// ============================================================

// ErrTrailingData — после JSON-значения идет что-то кроме пробелов.
var ErrTrailingData = errors.New("decode candidate: unexpected data after JSON value")

func decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var candidate any
	if err := dec.Decode(&candidate); err != nil {
		return nil, fmt.Errorf("decode candidate: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return candidate, nil
}

// asObject принимает и map[string]any (JSON, yaml.v3), и map[any]any.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any, map[any]any:
		return "object"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, " | ")
}
