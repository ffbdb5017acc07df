package models

import "slices"

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ============================================================
// Circuit specification
// ============================================================

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

type BoardLayer string

const (
	LayerSingle BoardLayer = "single"
	LayerDouble BoardLayer = "double"
)

type Component struct {
	ID          string `json:"id" yaml:"id"`
	Type        string `json:"type" yaml:"type"`
	Value       string `json:"value" yaml:"value"`
	Footprint   string `json:"footprint" yaml:"footprint"`
	Model       string `json:"model,omitempty" yaml:"model,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Connection struct {
	From        string `json:"from" yaml:"from"`
	To          string `json:"to" yaml:"to"`
	WireColor   string `json:"wire_color" yaml:"wire_color"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type BreadboardPlacement struct {
	ComponentID string      `json:"component_id" yaml:"component_id"`
	Row         string      `json:"row" yaml:"row"`
	Col         int         `json:"col" yaml:"col"`
	Orientation Orientation `json:"orientation,omitempty" yaml:"orientation,omitempty"`
}

// PCBHints: ViaSize и Clearance опциональны, nil означает "не задано".
type PCBHints struct {
	Layer      BoardLayer `json:"layer" yaml:"layer"`
	TraceWidth float64    `json:"trace_width" yaml:"trace_width"`
	ViaSize    *float64   `json:"via_size,omitempty" yaml:"via_size,omitempty"`
	Clearance  *float64   `json:"clearance,omitempty" yaml:"clearance,omitempty"`
}

type AssemblyStep struct {
	StepNumber  int      `json:"step_number" yaml:"step_number"`
	Description string   `json:"description" yaml:"description"`
	ImagePrompt string   `json:"image_prompt,omitempty" yaml:"image_prompt,omitempty"`
	Components  []string `json:"components,omitempty" yaml:"components,omitempty"`
	Tools       []string `json:"tools,omitempty" yaml:"tools,omitempty"`
}

// CircuitSpec — проверенное описание одной схемы. После валидации считается
// неизменяемым: оптимизация и доработка возвращают новый экземпляр.
type CircuitSpec struct {
	CircuitName         string                `json:"circuit_name" yaml:"circuit_name"`
	Description         string                `json:"description" yaml:"description"`
	Components          []Component           `json:"components" yaml:"components"`
	Connections         []Connection          `json:"connections" yaml:"connections"`
	Breadboard          []BreadboardPlacement `json:"breadboard" yaml:"breadboard"`
	PCBHints            PCBHints              `json:"pcb_hints" yaml:"pcb_hints"`
	AssemblySteps       []AssemblyStep        `json:"assembly_steps" yaml:"assembly_steps"`
	SchematicPrompt     string                `json:"schematic_prompt,omitempty" yaml:"schematic_prompt,omitempty"`
	BreadboardPrompt    string                `json:"breadboard_prompt,omitempty" yaml:"breadboard_prompt,omitempty"`
	PCBPrompt           string                `json:"pcb_prompt,omitempty" yaml:"pcb_prompt,omitempty"`
	EstimatedDifficulty Difficulty            `json:"estimated_difficulty" yaml:"estimated_difficulty"`
	EstimatedTime       string                `json:"estimated_time" yaml:"estimated_time"`
	RequiredTools       []string              `json:"required_tools" yaml:"required_tools"`
}

// ComponentByID возвращает первый компонент с указанным id.
func (s *CircuitSpec) ComponentByID(id string) (Component, bool) {
	for _, c := range s.Components {
		if c.ID == id {
			return c, true
		}
	}
	return Component{}, false
}

// PlacementFor возвращает первое размещение компонента на макетке.
func (s *CircuitSpec) PlacementFor(componentID string) (BreadboardPlacement, bool) {
	for _, p := range s.Breadboard {
		if p.ComponentID == componentID {
			return p, true
		}
	}
	return BreadboardPlacement{}, false
}

// Clone делает глубокую копию спецификации.
func (s *CircuitSpec) Clone() *CircuitSpec {
	if s == nil {
		return nil
	}
	out := *s
	out.Components = slices.Clone(s.Components)
	out.Connections = slices.Clone(s.Connections)
	out.Breadboard = slices.Clone(s.Breadboard)
	out.RequiredTools = slices.Clone(s.RequiredTools)
	if s.PCBHints.ViaSize != nil {
		v := *s.PCBHints.ViaSize
		out.PCBHints.ViaSize = &v
	}
	if s.PCBHints.Clearance != nil {
		v := *s.PCBHints.Clearance
		out.PCBHints.Clearance = &v
	}
	if s.AssemblySteps != nil {
		out.AssemblySteps = make([]AssemblyStep, len(s.AssemblySteps))
		for i, step := range s.AssemblySteps {
			step.Components = slices.Clone(step.Components)
			step.Tools = slices.Clone(step.Tools)
			out.AssemblySteps[i] = step
		}
	}
	return &out
}

// ============================================================
// Export options
// ============================================================

type ExportFormat string

const (
	FormatPDF ExportFormat = "pdf"
	FormatPNG ExportFormat = "png"
	FormatSVG ExportFormat = "svg"
	FormatSTL ExportFormat = "stl"
	FormatOBJ ExportFormat = "obj"
)

type ExportOptions struct {
	Format            ExportFormat `json:"format" yaml:"format"`
	IncludeSchematic  bool         `json:"include_schematic" yaml:"include_schematic"`
	IncludeBreadboard bool         `json:"include_breadboard" yaml:"include_breadboard"`
	IncludePCB        bool         `json:"include_pcb" yaml:"include_pcb"`
	Include3D         bool         `json:"include_3d" yaml:"include_3d"`
	IncludeAssembly   bool         `json:"include_assembly" yaml:"include_assembly"`
}
