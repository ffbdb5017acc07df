package layout

import (
	"circuit-copilot/internal/circuit/library"
	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Breadboard layout
// ============================================================

const railLength = 700.0

// Breadboard раскладывает компоненты по отверстиям макетной платы.
// Компоненты без размещения или без детали попадают в Unplaced.
func Breadboard(spec *models.CircuitSpec) *BreadboardLayout {
	out := &BreadboardLayout{
		Title:      spec.CircuitName,
		Width:      CanvasWidth,
		Height:     CanvasHeight,
		Components: []BreadboardComponent{},
		Wires:      []Wire{},
		Rails: []PowerRail{
			{Type: RailVCC, Position: models.Point{X: 50, Y: 50}, Length: railLength},
			{Type: RailGND, Position: models.Point{X: 50, Y: 550}, Length: railLength},
		},
		Diagnostics: newDiagnostics(),
	}

	res := newResolver(spec)

	for _, comp := range spec.Components {
		part, ok := library.ResolvePhysicalPart(comp.Type, comp.Value)
		if !ok {
			out.Unplaced = append(out.Unplaced, comp.ID)
			continue
		}
		placement, ok := spec.PlacementFor(comp.ID)
		if !ok {
			out.Unplaced = append(out.Unplaced, comp.ID)
			continue
		}

		origin := library.RowColToPosition(placement.Row, placement.Col)
		rotation := 0.0
		if placement.Orientation == models.OrientationVertical {
			rotation = 90
		}

		bc := BreadboardComponent{
			ID:       comp.ID,
			Type:     comp.Type,
			Value:    comp.Value,
			PartID:   part.ID,
			PartName: part.Name,
			Position: origin,
			Rotation: rotation,
			Pins:     make([]BreadboardPin, 0, len(part.Pins)),
		}
		for _, pin := range part.Pins {
			bc.Pins = append(bc.Pins, BreadboardPin{
				ID:       pin.ID,
				Position: pinPosition(origin, pin),
			})
		}

		res.place(comp.ID, len(out.Components))
		out.Components = append(out.Components, bc)
	}

	locate := func(ci int, pin string) (int, bool) {
		for pi, p := range out.Components[ci].Pins {
			if p.ID == pin {
				return pi, true
			}
		}
		return 0, false
	}

	for i, conn := range spec.Connections {
		from, to, skipped := res.connection(i, conn, locate)
		if skipped != nil {
			out.Skipped = append(out.Skipped, *skipped)
			continue
		}

		net := models.NetName(conn)
		fromPin := &out.Components[from.Component].Pins[from.Pin]
		toPin := &out.Components[to.Component].Pins[to.Pin]
		fromPin.Connected, fromPin.Net = true, net
		toPin.Connected, toPin.Net = true, net

		out.Wires = append(out.Wires, Wire{
			Net:   net,
			From:  from.Endpoint,
			To:    to.Endpoint,
			Color: conn.WireColor,
			Path:  orthogonalPath(fromPin.Position, toPin.Position),
		})
	}

	return out
}

// pinPosition: начало детали плюс смещение вывода в шагах сетки.
// Ориентация хранится только в Rotation и на выводы не влияет.
func pinPosition(origin models.Point, pin library.PartPin) models.Point {
	return models.Point{
		X: origin.X + float64(pin.X)*library.Pitch,
		Y: origin.Y + float64(pin.Y)*library.Pitch,
	}
}
