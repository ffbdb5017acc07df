package layout

import (
	"fmt"

	"circuit-copilot/internal/circuit/library"
	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// PCB layout
// ============================================================

const (
	pcbOrigin  = 10.0
	pcbSpacing = 20.0
	padSize    = 1.5
	layerTop   = "top"
)

var boardSize = library.Dimensions{Width: 100, Height: 80}

// PCB использует ту же сетку, что и схема, но в миллиметрах.
// Дорожки прокладываются без обхода препятствий.
func PCB(spec *models.CircuitSpec) *PCBLayout {
	layers := 2
	if spec.PCBHints.Layer == models.LayerSingle {
		layers = 1
	}

	out := &PCBLayout{
		Title:       spec.CircuitName,
		Dimensions:  boardSize,
		Layers:      layers,
		Components:  []PCBComponent{},
		Traces:      []Trace{},
		Pads:        []Pad{},
		Diagnostics: newDiagnostics(),
	}

	res := newResolver(spec)
	n := len(spec.Components)
	numbers := make([][]string, 0, n)
	names := make([][]string, 0, n)

	for i, comp := range spec.Components {
		fp, ok := library.ResolveFootprint(comp.Type, comp.Value)
		if !ok {
			out.Unplaced = append(out.Unplaced, comp.ID)
			continue
		}

		pos := gridPosition(i, n, pcbOrigin, pcbSpacing)
		pc := PCBComponent{
			ID:        comp.ID,
			Footprint: comp.Footprint,
			Position:  pos,
			Layer:     layerTop,
			Pads:      make([]Pad, 0, len(fp.Pins)),
		}
		pinNumbers := make([]string, 0, len(fp.Pins))
		pinNames := make([]string, 0, len(fp.Pins))
		for _, pin := range fp.Pins {
			pc.Pads = append(pc.Pads, Pad{
				ID:       fmt.Sprintf("%s_%s", comp.ID, pin.Number),
				Position: models.Point{X: pos.X + pin.Position.X, Y: pos.Y + pin.Position.Y},
				Size:     library.Dimensions{Width: padSize, Height: padSize},
				Shape:    "round",
				Layer:    layerTop,
				Net:      fmt.Sprintf("%s-%s", comp.ID, pin.Number),
			})
			pinNumbers = append(pinNumbers, pin.Number)
			pinNames = append(pinNames, pin.Name)
		}

		res.place(comp.ID, len(out.Components))
		out.Components = append(out.Components, pc)
		out.Pads = append(out.Pads, pc.Pads...)
		numbers = append(numbers, pinNumbers)
		names = append(names, pinNames)
	}

	locate := func(ci int, ref string) (int, bool) {
		return footprintPinIndex(len(numbers[ci]), ref, func(i int) (string, string) {
			return numbers[ci][i], names[ci][i]
		})
	}

	for i, conn := range spec.Connections {
		from, to, skipped := res.connection(i, conn, locate)
		if skipped != nil {
			out.Skipped = append(out.Skipped, *skipped)
			continue
		}

		fromPad := out.Components[from.Component].Pads[from.Pin]
		toPad := out.Components[to.Component].Pads[to.Pin]
		out.Traces = append(out.Traces, Trace{
			Net:    models.NetName(conn),
			From:   models.Endpoint{Component: from.Endpoint.Component, Pin: numbers[from.Component][from.Pin]},
			To:     models.Endpoint{Component: to.Endpoint.Component, Pin: numbers[to.Component][to.Pin]},
			Width:  spec.PCBHints.TraceWidth,
			Layer:  layerTop,
			Points: orthogonalPath(fromPad.Position, toPad.Position),
		})
	}

	return out
}
