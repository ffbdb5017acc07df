package layout

import (
	"circuit-copilot/internal/circuit/library"
	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Schematic layout
// ============================================================

const (
	schematicOrigin  = 100.0
	schematicSpacing = 100.0
)

// Schematic ставит компоненты на квадратную сетку в порядке объявления.
// Индекс в сетке считается по всем компонентам, включая пропущенные,
// поэтому компонент без корпуса оставляет пустую клетку.
func Schematic(spec *models.CircuitSpec) *SchematicLayout {
	out := &SchematicLayout{
		Title:       spec.CircuitName,
		Components:  []SchematicComponent{},
		Connections: []SchematicConnection{},
		PowerNets:   []string{"VCC", "GND"},
		GroundNets:  []string{"GND"},
		Diagnostics: newDiagnostics(),
	}

	res := newResolver(spec)
	n := len(spec.Components)

	for i, comp := range spec.Components {
		fp, ok := library.ResolveFootprint(comp.Type, comp.Value)
		if !ok {
			out.Unplaced = append(out.Unplaced, comp.ID)
			continue
		}

		pos := gridPosition(i, n, schematicOrigin, schematicSpacing)
		sc := SchematicComponent{
			ID:        comp.ID,
			Type:      comp.Type,
			Value:     comp.Value,
			Footprint: comp.Footprint,
			Position:  pos,
			Pins:      make([]SchematicPin, 0, len(fp.Pins)),
		}
		for _, pin := range fp.Pins {
			sc.Pins = append(sc.Pins, SchematicPin{
				Number:   pin.Number,
				Name:     pin.Name,
				Role:     pin.Role,
				Position: models.Point{X: pos.X + pin.Position.X, Y: pos.Y + pin.Position.Y},
			})
		}

		res.place(comp.ID, len(out.Components))
		out.Components = append(out.Components, sc)
	}

	locate := func(ci int, ref string) (int, bool) {
		return footprintPinIndex(len(out.Components[ci].Pins), ref, func(i int) (string, string) {
			p := out.Components[ci].Pins[i]
			return p.Number, p.Name
		})
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

		out.Connections = append(out.Connections, SchematicConnection{
			From:   models.Endpoint{Component: from.Endpoint.Component, Pin: fromPin.Number},
			To:     models.Endpoint{Component: to.Endpoint.Component, Pin: toPin.Number},
			Net:    net,
			Points: orthogonalPath(fromPin.Position, toPin.Position),
		})
	}

	return out
}

// footprintPinIndex ищет вывод по номеру, затем по имени.
func footprintPinIndex(n int, ref string, pin func(i int) (number, name string)) (int, bool) {
	for i := 0; i < n; i++ {
		if number, _ := pin(i); number == ref {
			return i, true
		}
	}
	for i := 0; i < n; i++ {
		if _, name := pin(i); name == ref {
			return i, true
		}
	}
	return 0, false
}
