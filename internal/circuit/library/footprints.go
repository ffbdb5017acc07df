package library

import (
	"sort"

	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// KiCad footprints
// ============================================================

type PinRole string

const (
	RoleInput   PinRole = "input"
	RoleOutput  PinRole = "output"
	RolePower   PinRole = "power"
	RolePassive PinRole = "passive"
)

// FootprintPin — вывод посадочного места, смещение в мм от центра корпуса.
type FootprintPin struct {
	Number   string       `json:"number"`
	Name     string       `json:"name"`
	Role     PinRole      `json:"type"`
	Position models.Point `json:"position"`
}

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Footprint struct {
	Name        string         `json:"name"`
	Library     string         `json:"library"`
	Description string         `json:"description"`
	Pins        []FootprintPin `json:"pins"`
	Dimensions  Dimensions     `json:"dimensions"`
}

// Pin ищет вывод сначала по номеру, затем по имени.
func (f Footprint) Pin(ref string) (FootprintPin, bool) {
	for _, p := range f.Pins {
		if p.Number == ref {
			return p, true
		}
	}
	for _, p := range f.Pins {
		if p.Name == ref {
			return p, true
		}
	}
	return FootprintPin{}, false
}

func (f Footprint) clone() Footprint {
	f.Pins = append([]FootprintPin(nil), f.Pins...)
	return f
}

var footprints = map[string]Footprint{
	"DIP-8": {
		Name:        "DIP-8",
		Library:     "Package_DIP",
		Description: "8-pin DIP package",
		Pins: []FootprintPin{
			{Number: "1", Name: "VCC", Role: RolePower, Position: models.Point{X: -2.54, Y: 0}},
			{Number: "2", Name: "TRIG", Role: RoleInput, Position: models.Point{X: -1.27, Y: 0}},
			{Number: "3", Name: "OUT", Role: RoleOutput, Position: models.Point{X: 0, Y: 0}},
			{Number: "4", Name: "RESET", Role: RoleInput, Position: models.Point{X: 1.27, Y: 0}},
			{Number: "5", Name: "CTRL", Role: RoleInput, Position: models.Point{X: 2.54, Y: 0}},
			{Number: "6", Name: "THRES", Role: RoleInput, Position: models.Point{X: 2.54, Y: -7.62}},
			{Number: "7", Name: "DISCH", Role: RoleOutput, Position: models.Point{X: 1.27, Y: -7.62}},
			{Number: "8", Name: "GND", Role: RolePower, Position: models.Point{X: -1.27, Y: -7.62}},
		},
		Dimensions: Dimensions{Width: 9.4, Height: 6.35},
	},
	"R_0805_2012Metric": {
		Name:        "R_0805_2012Metric",
		Library:     "Resistor_SMD",
		Description: "0805 resistor package",
		Pins: []FootprintPin{
			{Number: "1", Name: "P1", Role: RolePassive, Position: models.Point{X: -1, Y: 0}},
			{Number: "2", Name: "P2", Role: RolePassive, Position: models.Point{X: 1, Y: 0}},
		},
		Dimensions: Dimensions{Width: 2, Height: 1.25},
	},
	"C_0805_2012Metric": {
		Name:        "C_0805_2012Metric",
		Library:     "Capacitor_SMD",
		Description: "0805 capacitor package",
		Pins: []FootprintPin{
			{Number: "1", Name: "P1", Role: RolePassive, Position: models.Point{X: -1, Y: 0}},
			{Number: "2", Name: "P2", Role: RolePassive, Position: models.Point{X: 1, Y: 0}},
		},
		Dimensions: Dimensions{Width: 2, Height: 1.25},
	},
	"LED_D5.0mm": {
		Name:        "LED_D5.0mm",
		Library:     "LED_THT",
		Description: "5mm LED package",
		Pins: []FootprintPin{
			{Number: "1", Name: "A", Role: RoleInput, Position: models.Point{X: -2.5, Y: 0}},
			{Number: "2", Name: "K", Role: RoleOutput, Position: models.Point{X: 2.5, Y: 0}},
		},
		Dimensions: Dimensions{Width: 5, Height: 5},
	},
	"R_Axial_DIN0207_L6.3mm_D2.5mm_P7.62mm_Horizontal": {
		Name:        "R_Axial_DIN0207_L6.3mm_D2.5mm_P7.62mm_Horizontal",
		Library:     "Resistor_THT",
		Description: "Axial resistor package",
		Pins: []FootprintPin{
			{Number: "1", Name: "P1", Role: RolePassive, Position: models.Point{X: -3.81, Y: 0}},
			{Number: "2", Name: "P2", Role: RolePassive, Position: models.Point{X: 3.81, Y: 0}},
		},
		Dimensions: Dimensions{Width: 7.62, Height: 2.5},
	},
}

var footprintByType = map[string]string{
	"IC":        "DIP-8",
	"Resistor":  "R_0805_2012Metric",
	"Capacitor": "C_0805_2012Metric",
	"LED":       "LED_D5.0mm",
}

// ResolveFootprint подбирает посадочное место по типу компонента.
// value не участвует в выборе: все резисторы получают один корпус.
func ResolveFootprint(componentType, _ string) (Footprint, bool) {
	name, ok := footprintByType[componentType]
	if !ok {
		return Footprint{}, false
	}
	return FootprintByName(name)
}

func FootprintByName(name string) (Footprint, bool) {
	f, ok := footprints[name]
	if !ok {
		return Footprint{}, false
	}
	return f.clone(), true
}

// Footprints возвращает все посадочные места, отсортированные по имени.
func Footprints() []Footprint {
	names := make([]string, 0, len(footprints))
	for name := range footprints {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Footprint, 0, len(names))
	for _, name := range names {
		out = append(out, footprints[name].clone())
	}
	return out
}

// ComponentTypes — типы, для которых есть и корпус, и деталь для макетки.
func ComponentTypes() []string {
	return []string{"IC", "Resistor", "Capacitor", "LED"}
}

var dimensionsByType = map[string]Dimensions{
	"IC":        {Width: 9.4, Height: 6.35},
	"Resistor":  {Width: 2, Height: 1.25},
	"Capacitor": {Width: 2, Height: 1.25},
	"LED":       {Width: 5, Height: 5},
}

func ComponentDimensions(componentType string) Dimensions {
	if d, ok := dimensionsByType[componentType]; ok {
		return d
	}
	return Dimensions{Width: 2, Height: 2}
}
