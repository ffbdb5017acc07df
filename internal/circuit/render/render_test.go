package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circuit-copilot/internal/circuit/layout"
	"circuit-copilot/internal/circuit/models"
	"circuit-copilot/internal/circuit/svgparse"
)

func timerSpec() *models.CircuitSpec {
	return &models.CircuitSpec{
		CircuitName: "Blinker <555> & LED",
		Components: []models.Component{
			{ID: "U1", Type: "IC", Value: "NE555", Footprint: "DIP-8"},
			{ID: "R1", Type: "Resistor", Value: "1k", Footprint: "R_0805_2012Metric"},
		},
		Connections: []models.Connection{
			{From: "U1-3", To: "R1-1", WireColor: "red"},
		},
		Breadboard: []models.BreadboardPlacement{
			{ComponentID: "U1", Row: "E", Col: 10},
			{ComponentID: "R1", Row: "A", Col: 15},
		},
		PCBHints: models.PCBHints{Layer: models.LayerDouble, TraceWidth: 0.4},
	}
}

func parse(t *testing.T, svg string) *svgparse.Document {
	t.Helper()
	require.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`))
	doc, err := svgparse.Parse(strings.NewReader(svg))
	require.NoError(t, err)
	return doc
}

func TestBreadboardSVG(t *testing.T) {
	r := NewRenderer()
	doc := parse(t, r.Breadboard(layout.Breadboard(timerSpec())))

	assert.Equal(t, 800.0, doc.Width)
	assert.Equal(t, 600.0, doc.Height)
	assert.Equal(t, "Blinker <555> & LED", doc.Title)
	assert.Equal(t, []string{"rail-VCC", "rail-GND"}, doc.Rails)
	require.Len(t, doc.Components, 2)
	require.Len(t, doc.Wires, 1)
	assert.Equal(t, "red", doc.Wires[0].Stroke)

	u1 := doc.Components[0]
	require.Len(t, u1.Pins, 8)
	assert.Equal(t, ColorUnconnected, u1.Pins[0].Fill)
	assert.Equal(t, ColorConnected, u1.Pins[2].Fill)

	// пин 3 микросхемы: E10 -> (9*2.54, 4*2.54) мм, +2 шага по X, 4 px/мм от (50,100)
	assert.InDelta(t, 50+11*2.54*4, u1.Pins[2].X, 1e-9)
	assert.InDelta(t, 100+4*2.54*4, u1.Pins[2].Y, 1e-9)
	assert.Equal(t, doc.Wires[0].Points[0].X, u1.Pins[2].X)
}

func TestRailColors(t *testing.T) {
	svg := NewRenderer().Breadboard(layout.Breadboard(timerSpec()))
	assert.Contains(t, svg, `stroke="`+ColorVCCRail+`" stroke-width="4"`)
	assert.Contains(t, svg, `stroke="`+ColorGNDRail+`" stroke-width="4"`)
}

func TestSchematicSVG(t *testing.T) {
	doc := parse(t, NewRenderer().Schematic(layout.Schematic(timerSpec())))

	require.Len(t, doc.Components, 2)
	require.Len(t, doc.Wires, 1)
	assert.Equal(t, "net_U1-3_R1-1", doc.Wires[0].Net)
	assert.Len(t, doc.Wires[0].Points, 4)
	assert.Equal(t, ColorConnected, doc.Components[1].Pins[0].Fill)
	assert.Equal(t, ColorUnconnected, doc.Components[1].Pins[1].Fill)
}

func TestPCBSVG(t *testing.T) {
	svg := NewRenderer().PCB(layout.PCB(timerSpec()))
	doc := parse(t, svg)

	assert.Equal(t, 10, doc.Pads)
	require.Len(t, doc.Wires, 1)
	assert.Equal(t, "trace", doc.Wires[0].Class)
	assert.Equal(t, ColorTrace, doc.Wires[0].Stroke)
	assert.Contains(t, svg, `stroke-width="2"`)

	// U1 pin 3 в (10,10) мм -> (100,100) px
	assert.InDelta(t, 100, doc.Wires[0].Points[0].X, 1e-9)
	assert.InDelta(t, 100, doc.Wires[0].Points[0].Y, 1e-9)
	assert.Contains(t, svg, `fill="`+ColorPad+`"`)
}

func TestNetlistSVG(t *testing.T) {
	nl := layout.BuildNetlist(timerSpec()).WithPowerNets()
	doc := parse(t, NewRenderer().Netlist(nl))

	assert.Equal(t, []string{"U1", "R1", "VCC", "GND"}, doc.Nodes)
	// net_U1-3_R1-1: U1->R1; VCC_NET: VCC->U1; GND_NET: GND->U1
	assert.Equal(t, 3, doc.NetLinks)
}

func TestRenderZeroConnections(t *testing.T) {
	spec := timerSpec()
	spec.Connections = nil

	r := NewRenderer()
	for _, view := range layout.Views() {
		t.Run(string(view), func(t *testing.T) {
			doc := parse(t, r.Render(spec, view))
			assert.Empty(t, doc.Wires)
			assert.NotEmpty(t, doc.Components)
		})
	}
}

func TestRenderEmptyLayout(t *testing.T) {
	spec := timerSpec()
	spec.Components = nil
	spec.Connections = nil
	spec.Breadboard = nil

	r := NewRenderer()
	for _, svg := range []string{
		r.Breadboard(layout.Breadboard(spec)),
		r.Schematic(layout.Schematic(spec)),
		r.PCB(layout.PCB(spec)),
		r.Netlist(layout.BuildNetlist(spec)),
	} {
		doc := parse(t, svg)
		assert.Empty(t, doc.Components)
		assert.Equal(t, "Blinker <555> & LED", doc.Title)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r := NewRenderer()
	for _, view := range layout.Views() {
		assert.Equal(t, r.Render(timerSpec(), view), r.Render(timerSpec(), view))
	}
}

func TestHostileWireColorIsEscaped(t *testing.T) {
	spec := timerSpec()
	spec.Connections[0].WireColor = `red"/><script>alert(1)</script>`

	svg := NewRenderer().Breadboard(layout.Breadboard(spec))
	assert.NotContains(t, svg, "<script>")
	parse(t, svg)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0", formatFloat(-0.0*1))
	assert.Equal(t, "2.54", formatFloat(2.54))
	assert.Equal(t, "M 0 0 L 1.5 2", pathData([]models.Point{{X: 0, Y: 0}, {X: 1.5, Y: 2}}))
	assert.Equal(t, "", pathData(nil))
}
