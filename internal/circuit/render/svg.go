package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"circuit-copilot/internal/circuit/layout"
	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Palette
// ============================================================

const (
	ColorConnected   = "#28a745"
	ColorUnconnected = "#6c757d"
	ColorVCCRail     = "#dc3545"
	ColorGNDRail     = "#6c757d"
	ColorTrace       = "#e67e22"
	ColorPad         = "#f39c12"
	ColorPadNoNet    = "#95a5a6"
	ColorWire        = "#dc3545"
	ColorNetPin      = "#007bff"
	ColorGrid        = "#dee2e6"
)

const fontFamily = "Arial, sans-serif"

// ============================================================
// Renderer
// ============================================================

// Renderer превращает раскладки в SVG-документы. Методы не падают:
// на пустой раскладке получается фон с заголовком.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render выбирает раскладку по виду и отрисовывает ее.
func (r *Renderer) Render(spec *models.CircuitSpec, view layout.View) string {
	switch view {
	case layout.ViewBreadboard:
		return r.Breadboard(layout.Breadboard(spec))
	case layout.ViewPCB:
		return r.PCB(layout.PCB(spec))
	default:
		return r.Schematic(layout.Schematic(spec))
	}
}

// ============================================================
// Document helpers
// ============================================================

type document struct {
	elements []string
}

func (d *document) add(format string, args ...any) {
	d.elements = append(d.elements, fmt.Sprintf(format, args...))
}

func (d *document) background(fill string) {
	d.add(`<rect width="%s" height="%s" fill="%s" stroke="none"/>`,
		formatFloat(layout.CanvasWidth), formatFloat(layout.CanvasHeight), fill)
}

func (d *document) title(text, fill string) {
	d.add(`<text x="%s" y="30" text-anchor="middle" font-family="%s" font-size="20" font-weight="bold" fill="%s">%s</text>`,
		formatFloat(layout.CanvasWidth/2), fontFamily, fill, escape(text))
}

func (d *document) String() string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(layout.CanvasWidth), formatFloat(layout.CanvasHeight),
		formatFloat(layout.CanvasWidth), formatFloat(layout.CanvasHeight)))
	builder.WriteString("\n")

	for _, elem := range d.elements {
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String()
}

// viewport переводит миллиметры раскладки в пиксели холста.
type viewport struct {
	originX, originY float64
	scale            float64
}

func (v viewport) point(p models.Point) models.Point {
	return models.Point{X: v.originX + p.X*v.scale, Y: v.originY + p.Y*v.scale}
}

// ============================================================
// Formatting helpers
// ============================================================

func escape(s string) string {
	return html.EscapeString(s)
}

func formatFloat(val float64) string {
	if val == 0 {
		val = 0 // -0
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p models.Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}

func pathData(points []models.Point) string {
	if len(points) == 0 {
		return ""
	}
	var path strings.Builder
	path.WriteString("M ")
	path.WriteString(formatPoint(points[0]))
	for _, p := range points[1:] {
		path.WriteString(" L ")
		path.WriteString(formatPoint(p))
	}
	return path.String()
}

func pinColor(connected bool) string {
	if connected {
		return ColorConnected
	}
	return ColorUnconnected
}
