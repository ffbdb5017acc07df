package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circuit-copilot/internal/circuit/ai"
	"circuit-copilot/internal/circuit/service"
	"circuit-copilot/internal/circuit/svgparse"
)

const timerJSON = `{
  "circuit_name": "LED Blinker",
  "description": "555 astable driving an LED",
  "components": [
    {"id": "U1", "type": "IC", "value": "NE555", "footprint": "DIP-8"},
    {"id": "R1", "type": "Resistor", "value": "1k", "footprint": "R_0805_2012Metric"}
  ],
  "connections": [
    {"from": "U1-3", "to": "R1-1", "wire_color": "red"},
    {"from": "U1-3", "to": "Q1-1", "wire_color": "blue"}
  ],
  "breadboard": [
    {"component_id": "U1", "row": "E", "col": 10},
    {"component_id": "R1", "row": "A", "col": 15}
  ],
  "pcb_hints": {"layer": "single", "trace_width": 0.5},
  "assembly_steps": [
    {"step_number": 1, "description": "Insert the timer"}
  ],
  "estimated_difficulty": "beginner",
  "estimated_time": "30 minutes",
  "required_tools": []
}`

func newApp(backend ai.Backend) *fiber.App {
	app := fiber.New()
	NewCircuitHandler(service.NewPipeline(backend, nil, service.Options{})).Register(app)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

// ============================================================
// Validation
// ============================================================

func TestValidateEndpoint(t *testing.T) {
	resp, data := post(t, newApp(nil), "/circuits/validate", timerJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, data)
	assert.Equal(t, true, body["valid"])
	warnings := body["warnings"].([]any)
	require.Len(t, warnings, 1)
	assert.Equal(t, "connections.1.to", warnings[0].(map[string]any)["path"])
}

func TestValidateRejectsSchemaViolations(t *testing.T) {
	resp, data := post(t, newApp(nil), "/circuits/validate", `{"circuit_name": ""}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode(t, data)
	assert.Equal(t, "validation failed", body["error"])
	assert.NotEmpty(t, body["issues"])
}

func TestValidateBadPayload(t *testing.T) {
	app := newApp(nil)

	resp, _ := post(t, app, "/circuits/validate", `{"circuit_name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, data := post(t, app, "/circuits/validate", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "spec required", decode(t, data)["error"])
}

// ============================================================
// Layout & render
// ============================================================

func TestRenderEndpoint(t *testing.T) {
	app := newApp(nil)
	for _, view := range []string{"breadboard", "schematic", "pcb", "netlist"} {
		t.Run(view, func(t *testing.T) {
			resp, data := post(t, app, "/circuits/render/"+view, timerJSON)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
			assert.Equal(t, "miss", resp.Header.Get("X-Render-Cache"))

			_, err := svgparse.Parse(strings.NewReader(string(data)))
			require.NoError(t, err)
		})
	}
}

func TestRenderReportsSkippedConnections(t *testing.T) {
	resp, _ := post(t, newApp(nil), "/circuits/render/breadboard", timerJSON)
	assert.Equal(t, "1", resp.Header.Get("X-Skipped-Connections"))
}

func TestRenderUnknownView(t *testing.T) {
	resp, _ := post(t, newApp(nil), "/circuits/render/isometric", timerJSON)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRenderAllEndpoint(t *testing.T) {
	resp, data := post(t, newApp(nil), "/circuits/render", timerJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, data)
	for _, view := range []string{"schematic", "breadboard", "pcb"} {
		assert.True(t, strings.HasPrefix(body[view].(string), "<?xml"), view)
	}
	skipped := body["skipped_connections"].(map[string]any)
	assert.Equal(t, float64(1), skipped["breadboard"])
}

func TestLayoutEndpoint(t *testing.T) {
	app := newApp(nil)

	resp, data := post(t, app, "/circuits/layout/pcb", timerJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, data)
	assert.Len(t, body["components"], 2)
	assert.Len(t, body["skipped"], 1)

	resp, _ = post(t, app, "/circuits/layout/netlist", timerJSON)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNetlistEndpoint(t *testing.T) {
	app := newApp(nil)

	_, data := post(t, app, "/circuits/netlist", timerJSON)
	plain := decode(t, data)
	_, data = post(t, app, "/circuits/netlist?power=true", timerJSON)
	powered := decode(t, data)

	assert.Len(t, powered["connections"], len(plain["connections"].([]any))+2)
	assert.Equal(t, "circuit-copilot", plain["metadata"].(map[string]any)["author"])
}

func TestOptimizeEndpoint(t *testing.T) {
	resp, data := post(t, newApp(nil), "/circuits/optimize", timerJSON)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	placements := decode(t, data)["breadboard"].([]any)
	require.Len(t, placements, 2)
	assert.Equal(t, "U1", placements[0].(map[string]any)["component_id"])
}

// ============================================================
// Export
// ============================================================

func TestExportSVG(t *testing.T) {
	body := `{"spec": ` + timerJSON + `, "options": {"format": "svg", "include_schematic": true,
		"include_breadboard": false, "include_pcb": true, "include_3d": false, "include_assembly": false}}`

	resp, data := post(t, newApp(nil), "/circuits/export", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "LED_Blinker_circuit_diagrams.svg")
	assert.Empty(t, resp.Header.Get("X-Placeholder"))
	assert.Contains(t, string(data), "section-pcb")
}

func TestExportPlaceholder(t *testing.T) {
	body := `{"spec": ` + timerJSON + `, "options": {"format": "stl", "include_schematic": false,
		"include_breadboard": false, "include_pcb": false, "include_3d": true, "include_assembly": false}}`

	resp, data := post(t, newApp(nil), "/circuits/export", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Placeholder"))
	assert.True(t, strings.HasPrefix(string(data), "solid circuit_model"))
}

func TestExportRejectsBadOptions(t *testing.T) {
	body := `{"spec": ` + timerJSON + `, "options": {"format": "docx"}}`
	resp, _ := post(t, newApp(nil), "/circuits/export", body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

// ============================================================
// AI
// ============================================================

func TestGenerateEndpoint(t *testing.T) {
	resp, data := post(t, newApp(ai.NewStaticBackend("```json\n"+timerJSON+"\n```")), "/circuits/generate", `{"description": "blink"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, data)
	assert.NotEmpty(t, body["design_id"])
	assert.Equal(t, "LED Blinker", body["spec"].(map[string]any)["circuit_name"])
	assert.Len(t, body["warnings"], 1)
}

func TestGenerateEndpointFailures(t *testing.T) {
	resp, _ := post(t, newApp(&ai.StaticBackend{Err: assert.AnError}), "/circuits/generate", `{"description": "blink"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	resp, _ = post(t, newApp(nil), "/circuits/generate", `{"description": "blink"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = post(t, newApp(ai.NewMockBackend()), "/circuits/generate", `{"description": "  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, newApp(ai.NewStaticBackend(`{"circuit_name": 1}`)), "/circuits/generate", `{"description": "blink"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRefineEndpoint(t *testing.T) {
	app := newApp(ai.NewStaticBackend(timerJSON))

	resp, _ := post(t, app, "/circuits/refine", `{"spec": `+timerJSON+`, "kind": "pcb"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = post(t, app, "/circuits/refine", `{"spec": `+timerJSON+`, "kind": "colour"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImagePromptEndpoint(t *testing.T) {
	resp, data := post(t, newApp(&ai.StaticBackend{Err: assert.AnError}), "/circuits/image-prompt", `{"spec": `+timerJSON+`, "kind": "schematic"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, data)
	assert.Equal(t, "Image of LED Blinker", body["prompt"])
	assert.Equal(t, true, body["fallback"])
}

func TestStatusEndpoint(t *testing.T) {
	_, data := get(t, newApp(ai.NewMockBackend()), "/ai/status")
	body := decode(t, data)
	assert.Equal(t, "mock", body["backend"])
	assert.Equal(t, true, body["reachable"])
}

// ============================================================
// Library
// ============================================================

func TestLibraryEndpoints(t *testing.T) {
	app := newApp(nil)

	_, data := get(t, app, "/library")
	body := decode(t, data)
	assert.Len(t, body["footprints"], 5)
	assert.Len(t, body["parts"], 4)

	resp, data := get(t, app, "/library/LED")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decode(t, data)
	assert.Equal(t, "LED_D5.0mm", body["footprint"].(map[string]any)["name"])
	assert.Equal(t, "LED_5mm", body["part"].(map[string]any)["id"])

	resp, _ = get(t, app, "/library/Relay")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
