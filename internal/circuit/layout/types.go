package layout

import (
	"circuit-copilot/internal/circuit/library"
	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Shared layout types
// ============================================================

type View string

const (
	ViewBreadboard View = "breadboard"
	ViewSchematic  View = "schematic"
	ViewPCB        View = "pcb"
)

// Views — все раскладки в порядке вывода.
func Views() []View {
	return []View{ViewSchematic, ViewBreadboard, ViewPCB}
}

func ParseView(s string) (View, bool) {
	for _, v := range Views() {
		if string(v) == s {
			return v, true
		}
	}
	return "", false
}

const (
	CanvasWidth  = 800.0
	CanvasHeight = 600.0
)

const (
	ReasonMalformed        = "malformed endpoint"
	ReasonUnknownComponent = "unknown component"
	ReasonNotInLayout      = "component not in layout"
	ReasonUnknownPin       = "unknown pin"
)

// SkippedConnection — соединение, которое не удалось провести.
type SkippedConnection struct {
	Index  int    `json:"index"`
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason"`
}

// Diagnostics встраивается в каждую раскладку.
type Diagnostics struct {
	Skipped  []SkippedConnection `json:"skipped"`
	Unplaced []string            `json:"unplaced"`
}

func (d Diagnostics) SkippedCount() int {
	return len(d.Skipped)
}

func newDiagnostics() Diagnostics {
	return Diagnostics{Skipped: []SkippedConnection{}, Unplaced: []string{}}
}

// ============================================================
// Breadboard
// ============================================================

type BreadboardPin struct {
	ID        string       `json:"id"`
	Position  models.Point `json:"position"`
	Connected bool         `json:"connected"`
	Net       string       `json:"net,omitempty"`
}

type BreadboardComponent struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Value    string          `json:"value"`
	PartID   string          `json:"part_id"`
	PartName string          `json:"part_name"`
	Position models.Point    `json:"position"`
	Rotation float64         `json:"rotation"`
	Pins     []BreadboardPin `json:"pins"`
}

type Wire struct {
	Net   string          `json:"net"`
	From  models.Endpoint `json:"from"`
	To    models.Endpoint `json:"to"`
	Color string          `json:"color"`
	Path  []models.Point  `json:"path"`
}

type RailType string

const (
	RailVCC RailType = "VCC"
	RailGND RailType = "GND"
)

type PowerRail struct {
	Type     RailType     `json:"type"`
	Position models.Point `json:"position"`
	Length   float64      `json:"length"`
}

type BreadboardLayout struct {
	Title      string                `json:"title"`
	Width      float64               `json:"width"`
	Height     float64               `json:"height"`
	Components []BreadboardComponent `json:"components"`
	Wires      []Wire                `json:"connections"`
	Rails      []PowerRail           `json:"power_rails"`
	Diagnostics
}

// ============================================================
// Schematic
// ============================================================

type SchematicPin struct {
	Number    string          `json:"number"`
	Name      string          `json:"name"`
	Role      library.PinRole `json:"type"`
	Position  models.Point    `json:"position"`
	Connected bool            `json:"connected"`
	Net       string          `json:"net,omitempty"`
}

type SchematicComponent struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Value     string         `json:"value"`
	Footprint string         `json:"footprint"`
	Position  models.Point   `json:"position"`
	Rotation  float64        `json:"rotation"`
	Pins      []SchematicPin `json:"pins"`
}

type SchematicConnection struct {
	From   models.Endpoint `json:"from"`
	To     models.Endpoint `json:"to"`
	Net    string          `json:"net"`
	Points []models.Point  `json:"wire_points"`
}

type SchematicLayout struct {
	Title       string                `json:"title"`
	Components  []SchematicComponent  `json:"components"`
	Connections []SchematicConnection `json:"connections"`
	PowerNets   []string              `json:"power_nets"`
	GroundNets  []string              `json:"ground_nets"`
	Diagnostics
}

// ============================================================
// PCB
// ============================================================

type Pad struct {
	ID       string             `json:"id"`
	Position models.Point       `json:"position"`
	Size     library.Dimensions `json:"size"`
	Shape    string             `json:"shape"`
	Layer    string             `json:"layer"`
	Net      string             `json:"net,omitempty"`
}

type PCBComponent struct {
	ID        string       `json:"id"`
	Footprint string       `json:"footprint"`
	Position  models.Point `json:"position"`
	Rotation  float64      `json:"rotation"`
	Layer     string       `json:"layer"`
	Pads      []Pad        `json:"pads"`
}

type Trace struct {
	Net    string          `json:"net"`
	From   models.Endpoint `json:"from"`
	To     models.Endpoint `json:"to"`
	Width  float64         `json:"width"`
	Layer  string          `json:"layer"`
	Points []models.Point  `json:"points"`
}

type PCBLayout struct {
	Title      string             `json:"title"`
	Dimensions library.Dimensions `json:"dimensions"`
	Layers     int                `json:"layers"`
	Components []PCBComponent     `json:"components"`
	Traces     []Trace            `json:"traces"`
	Pads       []Pad              `json:"pads"`
	Diagnostics
}
