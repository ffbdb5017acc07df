package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"circuit-copilot/internal/circuit/models"
)

const timerJSON = `{
  "circuit_name": "LED Blinker",
  "description": "555 astable driving an LED",
  "components": [
    {"id": "U1", "type": "IC", "value": "NE555", "footprint": "DIP-8", "model": "NE555P"},
    {"id": "R1", "type": "Resistor", "value": "1k", "footprint": "R_0805_2012Metric"}
  ],
  "connections": [
    {"from": "U1-3", "to": "R1-1", "wire_color": "red", "description": "output"}
  ],
  "breadboard": [
    {"component_id": "U1", "row": "E", "col": 10, "orientation": "horizontal"},
    {"component_id": "R1", "row": "A", "col": 15}
  ],
  "pcb_hints": {"layer": "single", "trace_width": 0.5, "via_size": 0.8},
  "assembly_steps": [
    {"step_number": 1, "description": "Insert the timer", "components": ["U1"], "tools": ["tweezers"]}
  ],
  "estimated_difficulty": "beginner",
  "estimated_time": "30 minutes",
  "required_tools": ["soldering iron"]
}`

func decodeFixture(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(timerJSON), &m))
	return m
}

func issuesOf(t *testing.T, err error) *Error {
	t.Helper()
	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	return verr
}

func TestValidateAcceptsWellFormedSpec(t *testing.T) {
	spec, err := ValidateJSON([]byte(timerJSON))
	require.NoError(t, err)

	via := 0.8
	want := &models.CircuitSpec{
		CircuitName: "LED Blinker",
		Description: "555 astable driving an LED",
		Components: []models.Component{
			{ID: "U1", Type: "IC", Value: "NE555", Footprint: "DIP-8", Model: "NE555P"},
			{ID: "R1", Type: "Resistor", Value: "1k", Footprint: "R_0805_2012Metric"},
		},
		Connections: []models.Connection{
			{From: "U1-3", To: "R1-1", WireColor: "red", Description: "output"},
		},
		Breadboard: []models.BreadboardPlacement{
			{ComponentID: "U1", Row: "E", Col: 10, Orientation: models.OrientationHorizontal},
			{ComponentID: "R1", Row: "A", Col: 15},
		},
		PCBHints: models.PCBHints{Layer: models.LayerSingle, TraceWidth: 0.5, ViaSize: &via},
		AssemblySteps: []models.AssemblyStep{
			{StepNumber: 1, Description: "Insert the timer", Components: []string{"U1"}, Tools: []string{"tweezers"}},
		},
		EstimatedDifficulty: models.DifficultyBeginner,
		EstimatedTime:       "30 minutes",
		RequiredTools:       []string{"soldering iron"},
	}
	assert.Equal(t, want, spec)
}

func TestValidateAcceptsYAMLDecodedInput(t *testing.T) {
	var candidate any
	require.NoError(t, yaml.Unmarshal([]byte(timerJSON), &candidate))

	spec, err := Validate(candidate)
	require.NoError(t, err)
	assert.Equal(t, 10, spec.Breadboard[0].Col)
	assert.Equal(t, 0.5, spec.PCBHints.TraceWidth)
}

func TestValidateRejectsMissingCollections(t *testing.T) {
	for _, field := range []string{"components", "connections"} {
		t.Run(field, func(t *testing.T) {
			m := decodeFixture(t)
			delete(m, field)

			_, err := Validate(m)
			require.Error(t, err)
			verr := issuesOf(t, err)
			assert.True(t, verr.HasPath(field))
			assert.Contains(t, err.Error(), field+": Required")
		})
	}
}

func TestValidateRejectsEmptyCollections(t *testing.T) {
	m := decodeFixture(t)
	m["components"] = []any{}
	m["assembly_steps"] = []any{}

	_, err := Validate(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "components: At least one component is required")
	assert.Contains(t, err.Error(), "assembly_steps: At least one assembly step is required")
}

func TestValidateFieldMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]any)
		want   string
	}{
		{
			name: "empty component id",
			mutate: func(m map[string]any) {
				m["components"].([]any)[0].(map[string]any)["id"] = ""
			},
			want: "components.0.id: Component ID is required",
		},
		{
			name: "missing footprint",
			mutate: func(m map[string]any) {
				delete(m["components"].([]any)[1].(map[string]any), "footprint")
			},
			want: "components.1.footprint: KiCad footprint is required",
		},
		{
			name: "numeric wire color",
			mutate: func(m map[string]any) {
				m["connections"].([]any)[0].(map[string]any)["wire_color"] = 3.0
			},
			want: "connections.0.wire_color: Expected string, received number",
		},
		{
			name: "negative column",
			mutate: func(m map[string]any) {
				m["breadboard"].([]any)[0].(map[string]any)["col"] = -1.0
			},
			want: "breadboard.0.col: Column must be positive",
		},
		{
			name: "fractional column",
			mutate: func(m map[string]any) {
				m["breadboard"].([]any)[0].(map[string]any)["col"] = 1.5
			},
			want: "breadboard.0.col: Expected integer, received float",
		},
		{
			name: "zero trace width",
			mutate: func(m map[string]any) {
				m["pcb_hints"].(map[string]any)["trace_width"] = 0.0
			},
			want: "pcb_hints.trace_width: Trace width must be positive",
		},
		{
			name: "unknown layer",
			mutate: func(m map[string]any) {
				m["pcb_hints"].(map[string]any)["layer"] = "quad"
			},
			want: "pcb_hints.layer: Invalid enum value. Expected 'single' | 'double', received 'quad'",
		},
		{
			name: "zero step number",
			mutate: func(m map[string]any) {
				m["assembly_steps"].([]any)[0].(map[string]any)["step_number"] = 0.0
			},
			want: "assembly_steps.0.step_number: Step number must be positive",
		},
		{
			name: "null estimated time",
			mutate: func(m map[string]any) {
				m["estimated_time"] = nil
			},
			want: "estimated_time: Expected string, received null",
		},
		{
			name: "bad difficulty",
			mutate: func(m map[string]any) {
				m["estimated_difficulty"] = "expert"
			},
			want: "estimated_difficulty: Invalid enum value",
		},
		{
			name: "required tools not array",
			mutate: func(m map[string]any) {
				m["required_tools"] = "iron"
			},
			want: "required_tools: Expected array, received string",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := decodeFixture(t)
			tt.mutate(m)

			_, err := Validate(m)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateCollectsEveryIssue(t *testing.T) {
	m := decodeFixture(t)
	delete(m, "circuit_name")
	delete(m, "description")

	_, err := Validate(m)
	verr := issuesOf(t, err)
	require.Len(t, verr.Issues, 2)
	assert.Equal(t, "circuit_name: Circuit name is required, description: Circuit description is required", err.Error())
}

func TestValidateRejectsNonObject(t *testing.T) {
	_, err := Validate([]any{1, 2})
	verr := issuesOf(t, err)
	assert.Equal(t, "(root)", verr.Issues[0].Path)
}

func TestValidateJSONDecodeFailure(t *testing.T) {
	_, err := ValidateJSON([]byte("{not json"))
	require.Error(t, err)
	var verr *Error
	assert.False(t, errors.As(err, &verr))
}

func TestValidateJSONRejectsTrailingData(t *testing.T) {
	for _, tail := range []string{" trailing-garbage", " {}", "}"} {
		_, err := ValidateJSON([]byte(timerJSON + tail))
		assert.ErrorIs(t, err, ErrTrailingData, tail)
	}

	_, err := ValidateJSON([]byte(timerJSON + "\n\t "))
	assert.NoError(t, err)
}

func TestValidateDropsUnknownKeys(t *testing.T) {
	m := decodeFixture(t)
	m["extra"] = "ignored"

	spec, err := Validate(m)
	require.NoError(t, err)
	assert.Equal(t, "LED Blinker", spec.CircuitName)
}

func TestAuditCleanSpec(t *testing.T) {
	spec, err := ValidateJSON([]byte(timerJSON))
	require.NoError(t, err)
	assert.Empty(t, Audit(spec))
}

func TestAuditReportsReferentialProblems(t *testing.T) {
	spec, err := ValidateJSON([]byte(timerJSON))
	require.NoError(t, err)

	spec.Components = append(spec.Components, models.Component{ID: "R1", Type: "Resistor", Value: "2k", Footprint: "R"})
	spec.Connections = append(spec.Connections,
		models.Connection{From: "Q1-1", To: "R1-2", WireColor: "black"},
		models.Connection{From: "U1-9", To: "bad", WireColor: "black"},
	)
	spec.Breadboard = append(spec.Breadboard,
		models.BreadboardPlacement{ComponentID: "U1", Row: "K", Col: 70},
	)
	spec.AssemblySteps = append(spec.AssemblySteps, models.AssemblyStep{StepNumber: 3, Description: "skip"})

	issues := Audit(spec)
	paths := make([]string, 0, len(issues))
	for _, issue := range issues {
		paths = append(paths, issue.Path)
	}

	assert.Contains(t, paths, "components.2.id")
	assert.Contains(t, paths, "connections.1.from")
	assert.Contains(t, paths, "connections.2.from")
	assert.Contains(t, paths, "connections.2.to")
	assert.Contains(t, paths, "breadboard.2.component_id")
	assert.Contains(t, paths, "breadboard.2.row")
	assert.Contains(t, paths, "breadboard.2.col")
	assert.Contains(t, paths, "assembly_steps.1.step_number")
}

func TestPinExistsMatchesNumbersAndNames(t *testing.T) {
	ic := models.Component{ID: "U1", Type: "IC"}
	assert.True(t, PinExists(ic, "3"))
	assert.True(t, PinExists(ic, "VCC"))
	assert.False(t, PinExists(ic, "12"))

	led := models.Component{ID: "D1", Type: "LED"}
	assert.True(t, PinExists(led, "K"))
	assert.True(t, PinExists(led, "1"))

	unknown := models.Component{ID: "X1", Type: "Crystal"}
	assert.False(t, PinExists(unknown, "1"))
}

func TestValidateExportOptions(t *testing.T) {
	opts, err := ValidateExportOptions(map[string]any{
		"format":             "svg",
		"include_schematic":  true,
		"include_breadboard": false,
		"include_pcb":        true,
		"include_3d":         false,
		"include_assembly":   true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FormatSVG, opts.Format)
	assert.True(t, opts.IncludePCB)
	assert.False(t, opts.IncludeBreadboard)

	_, err = ValidateExportOptions(map[string]any{"format": "docx"})
	require.Error(t, err)
	verr := issuesOf(t, err)
	assert.True(t, verr.HasPath("format"))
	assert.True(t, verr.HasPath("include_3d"))
}

func TestModelsEndpointParsing(t *testing.T) {
	ep, err := models.ParseEndpoint("U1-3")
	require.NoError(t, err)
	assert.Equal(t, models.Endpoint{Component: "U1", Pin: "3"}, ep)

	ep, err = models.ParseEndpoint("VCC-RAIL-1")
	require.NoError(t, err)
	assert.Equal(t, "RAIL-1", ep.Pin)

	for _, bad := range []string{"U1", "-3", "U1-", ""} {
		_, err := models.ParseEndpoint(bad)
		assert.Error(t, err, bad)
	}
}
