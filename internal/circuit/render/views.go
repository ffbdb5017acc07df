package render

import (
	"math"

	"circuit-copilot/internal/circuit/layout"
	"circuit-copilot/internal/circuit/library"
	"circuit-copilot/internal/circuit/models"
)

var (
	breadboardViewport = viewport{originX: 50, originY: 100, scale: 4}
	pcbViewport        = viewport{originX: 50, originY: 50, scale: 5}
)

// ============================================================
// Breadboard
// ============================================================

func (r *Renderer) Breadboard(l *layout.BreadboardLayout) string {
	doc := &document{}
	doc.background("#f8f9fa")
	doc.title(l.Title, "#212529")
	r.breadboardGrid(doc)

	for _, rail := range l.Rails {
		color := ColorVCCRail
		if rail.Type == layout.RailGND {
			color = ColorGNDRail
		}
		doc.add(`<g class="rail" id="rail-%s"><line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="4"/><text x="%s" y="%s" font-family="%s" font-size="12" font-weight="bold" fill="%s">%s</text></g>`,
			escape(string(rail.Type)),
			formatFloat(rail.Position.X), formatFloat(rail.Position.Y),
			formatFloat(rail.Position.X+rail.Length), formatFloat(rail.Position.Y), color,
			formatFloat(rail.Position.X-40), formatFloat(rail.Position.Y+5), fontFamily, color,
			escape(string(rail.Type)))
	}

	for _, comp := range l.Components {
		r.breadboardComponent(doc, comp)
	}

	for _, wire := range l.Wires {
		points := make([]models.Point, 0, len(wire.Path))
		for _, p := range wire.Path {
			points = append(points, breadboardViewport.point(p))
		}
		doc.add(`<path class="wire" data-net="%s" d="%s" stroke="%s" stroke-width="2" fill="none" stroke-linecap="round" stroke-linejoin="round"/>`,
			escape(wire.Net), pathData(points), escape(wire.Color))
	}

	return doc.String()
}

func (r *Renderer) breadboardGrid(doc *document) {
	topLeft := breadboardViewport.point(library.RowColToPosition("A", 1))
	bottomRight := breadboardViewport.point(library.RowColToPosition(library.RowLetter(len(library.Rows)-1), library.Columns))

	doc.add(`<rect class="breadboard" x="%s" y="%s" width="%s" height="%s" fill="#ffffff" stroke="%s" stroke-width="1"/>`,
		formatFloat(topLeft.X-4), formatFloat(topLeft.Y-4),
		formatFloat(bottomRight.X-topLeft.X+8), formatFloat(bottomRight.Y-topLeft.Y+8), ColorGrid)

	for col := 1; col <= library.Columns; col++ {
		x := breadboardViewport.point(library.RowColToPosition("A", col)).X
		doc.add(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="0.5"/>`,
			formatFloat(x), formatFloat(topLeft.Y), formatFloat(x), formatFloat(bottomRight.Y), ColorGrid)
	}
	for i := range len(library.Rows) {
		y := breadboardViewport.point(library.RowColToPosition(library.RowLetter(i), 1)).Y
		doc.add(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="0.5"/>`,
			formatFloat(topLeft.X), formatFloat(y), formatFloat(bottomRight.X), formatFloat(y), ColorGrid)
	}
}

func (r *Renderer) breadboardComponent(doc *document, comp layout.BreadboardComponent) {
	origin := breadboardViewport.point(comp.Position)
	minX, minY := origin.X, origin.Y
	maxX, maxY := origin.X, origin.Y
	for _, pin := range comp.Pins {
		p := breadboardViewport.point(pin.Position)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	const pad = 6.0

	var pins string
	for _, pin := range comp.Pins {
		p := breadboardViewport.point(pin.Position)
		pins += `<circle cx="` + formatFloat(p.X) + `" cy="` + formatFloat(p.Y) + `" r="3" fill="` + pinColor(pin.Connected) +
			`" stroke="white" stroke-width="1"/>`
	}

	doc.add(`<g class="component" id="%s"><rect x="%s" y="%s" width="%s" height="%s" fill="#ffffff" stroke="%s" stroke-width="2" rx="4"/><text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="10" font-weight="bold">%s</text><text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="8">%s</text>%s</g>`,
		escape(comp.ID),
		formatFloat(minX-pad), formatFloat(minY-pad),
		formatFloat(maxX-minX+2*pad), formatFloat(maxY-minY+2*pad), ColorUnconnected,
		formatFloat((minX+maxX)/2), formatFloat(minY-pad-14), fontFamily, escape(comp.ID),
		formatFloat((minX+maxX)/2), formatFloat(minY-pad-4), fontFamily, escape(comp.PartName),
		pins)
}

// ============================================================
// Schematic
// ============================================================

func (r *Renderer) Schematic(l *layout.SchematicLayout) string {
	doc := &document{}
	doc.background("white")
	doc.title(l.Title, "#212529")

	for _, comp := range l.Components {
		c := comp.Position
		var pins string
		for _, pin := range comp.Pins {
			pins += `<circle cx="` + formatFloat(pin.Position.X) + `" cy="` + formatFloat(pin.Position.Y) +
				`" r="3" fill="` + pinColor(pin.Connected) + `" stroke="white" stroke-width="1"/>` +
				`<text x="` + formatFloat(pin.Position.X+8) + `" y="` + formatFloat(pin.Position.Y+3) +
				`" font-family="` + fontFamily + `" font-size="8">` + escape(pin.Number) + `</text>`
		}
		doc.add(`<g class="component" id="%s"><rect x="%s" y="%s" width="60" height="40" fill="#f8f9fa" stroke="%s" stroke-width="2" rx="4"/><text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="12" font-weight="bold">%s</text><text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="10">%s</text>%s</g>`,
			escape(comp.ID),
			formatFloat(c.X-30), formatFloat(c.Y-20), ColorUnconnected,
			formatFloat(c.X), formatFloat(c.Y-5), fontFamily, escape(comp.ID),
			formatFloat(c.X), formatFloat(c.Y+10), fontFamily, escape(comp.Value),
			pins)
	}

	for _, conn := range l.Connections {
		doc.add(`<path class="wire" data-net="%s" d="%s" stroke="%s" stroke-width="2" fill="none" stroke-linecap="round" stroke-linejoin="round"/>`,
			escape(conn.Net), pathData(conn.Points), ColorWire)
	}

	return doc.String()
}

// ============================================================
// PCB
// ============================================================

func (r *Renderer) PCB(l *layout.PCBLayout) string {
	doc := &document{}
	doc.background("#2c3e50")
	doc.title(l.Title, "white")

	board := pcbViewport.point(models.Point{})
	doc.add(`<rect class="board" x="%s" y="%s" width="%s" height="%s" fill="#34495e" stroke="#ecf0f1" stroke-width="2"/>`,
		formatFloat(board.X), formatFloat(board.Y),
		formatFloat(l.Dimensions.Width*pcbViewport.scale), formatFloat(l.Dimensions.Height*pcbViewport.scale))

	for _, trace := range l.Traces {
		points := make([]models.Point, 0, len(trace.Points))
		for _, p := range trace.Points {
			points = append(points, pcbViewport.point(p))
		}
		doc.add(`<path class="trace" data-net="%s" d="%s" stroke="%s" stroke-width="%s" fill="none" stroke-linecap="round" stroke-linejoin="round"/>`,
			escape(trace.Net), pathData(points), ColorTrace, formatFloat(trace.Width*pcbViewport.scale))
	}

	for _, comp := range l.Components {
		c := pcbViewport.point(comp.Position)
		doc.add(`<g class="component" id="%s"><rect x="%s" y="%s" width="30" height="20" fill="#ecf0f1" stroke="#bdc3c7" stroke-width="1" rx="2"/><text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="8" fill="#2c3e50">%s</text></g>`,
			escape(comp.ID),
			formatFloat(c.X-15), formatFloat(c.Y-10),
			formatFloat(c.X), formatFloat(c.Y+3), fontFamily, escape(comp.ID))
	}

	for _, pad := range l.Pads {
		p := pcbViewport.point(pad.Position)
		color := ColorPad
		if pad.Net == "" {
			color = ColorPadNoNet
		}
		doc.add(`<circle class="pad" id="%s" cx="%s" cy="%s" r="%s" fill="%s" stroke="white" stroke-width="1"/>`,
			escape(pad.ID), formatFloat(p.X), formatFloat(p.Y),
			formatFloat(pad.Size.Width/2*pcbViewport.scale), color)
	}

	return doc.String()
}

// ============================================================
// Netlist diagram
// ============================================================

const (
	netMargin    = 50.0
	netBoxWidth  = 80.0
	netBoxHeight = 40.0
)

func (r *Renderer) Netlist(n *layout.Netlist) string {
	doc := &document{}
	doc.background("white")
	doc.add(`<defs><marker id="arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto"><polygon points="0 0, 10 3.5, 0 7" fill="%s"/></marker></defs>`, ColorWire)
	doc.title(n.Metadata.Title, "#212529")

	count := len(n.Nodes)
	if count == 0 {
		return doc.String()
	}

	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := int(math.Ceil(float64(count) / float64(cols)))
	cellWidth := (layout.CanvasWidth - 2*netMargin) / float64(cols)
	cellHeight := (layout.CanvasHeight - 2*netMargin - 50) / float64(rows)

	centers := make(map[string]models.Point, count)
	for i, node := range n.Nodes {
		x := netMargin + float64(i%cols)*cellWidth + cellWidth/2
		y := netMargin + 50 + float64(i/cols)*cellHeight + cellHeight/2
		if _, ok := centers[node.ID]; !ok {
			centers[node.ID] = models.Point{X: x, Y: y}
		}

		var pins string
		spacing := netBoxWidth / float64(len(node.Pins)+1)
		for pi, pin := range node.Pins {
			px := x - netBoxWidth/2 + float64(pi+1)*spacing
			py := y - netBoxHeight/2
			label := pin
			if ep, err := models.ParseEndpoint(pin); err == nil {
				label = ep.Pin
			}
			pins += `<circle cx="` + formatFloat(px) + `" cy="` + formatFloat(py) + `" r="3" fill="` + ColorNetPin +
				`" stroke="white" stroke-width="1"/><text x="` + formatFloat(px) + `" y="` + formatFloat(py-8) +
				`" text-anchor="middle" font-family="` + fontFamily + `" font-size="8">` + escape(label) + `</text>`
		}

		doc.add(`<g class="node" id="%s"><rect x="%s" y="%s" width="%s" height="%s" fill="#f8f9fa" stroke="%s" stroke-width="2" rx="4"/><text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="12" font-weight="bold">%s</text><text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="10">%s</text>%s</g>`,
			escape(node.ID),
			formatFloat(x-netBoxWidth/2), formatFloat(y-netBoxHeight/2),
			formatFloat(netBoxWidth), formatFloat(netBoxHeight), ColorUnconnected,
			formatFloat(x), formatFloat(y-5), fontFamily, escape(node.ID),
			formatFloat(x), formatFloat(y+10), fontFamily, escape(node.Properties["value"]),
			pins)
	}

	for _, net := range n.Nets {
		var components []string
		seen := make(map[string]bool)
		for _, endpoint := range net.Nodes {
			id := endpoint
			if ep, err := models.ParseEndpoint(endpoint); err == nil {
				id = ep.Component
			}
			if !seen[id] {
				seen[id] = true
				components = append(components, id)
			}
		}
		for i := 0; i+1 < len(components); i++ {
			a, okA := centers[components[i]]
			b, okB := centers[components[i+1]]
			if !okA || !okB {
				continue
			}
			doc.add(`<line class="net" data-net="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2" marker-end="url(#arrowhead)"/>`,
				escape(net.Name), formatFloat(a.X), formatFloat(a.Y), formatFloat(b.X), formatFloat(b.Y), ColorWire)
		}
	}

	return doc.String()
}
