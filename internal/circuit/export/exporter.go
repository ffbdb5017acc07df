package export

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"circuit-copilot/internal/circuit/layout"
	"circuit-copilot/internal/circuit/models"
	"circuit-copilot/internal/circuit/render"
)

// ============================================================
// Exporter
// ============================================================

var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	ContentTypeSVG         = "image/svg+xml"
	ContentTypePlaceholder = "text/plain; charset=utf-8"
)

// Artifact — готовый файл. Placeholder означает, что содержимое только
// текстовая заглушка, а не настоящий PDF/PNG/STL/OBJ.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	Placeholder bool
}

type Exporter struct {
	renderer *render.Renderer
}

func NewExporter(renderer *render.Renderer) *Exporter {
	return &Exporter{renderer: renderer}
}

func (e *Exporter) Export(spec *models.CircuitSpec, opts models.ExportOptions) (*Artifact, error) {
	switch opts.Format {
	case models.FormatSVG:
		return &Artifact{
			Filename:    Filename(spec.CircuitName, "_circuit_diagrams.svg"),
			ContentType: ContentTypeSVG,
			Data:        []byte(e.combinedSVG(spec, opts)),
		}, nil
	case models.FormatPDF:
		return placeholder(spec, "_assembly_guide.pdf", assemblyGuide(spec, opts)), nil
	case models.FormatPNG:
		return placeholder(spec, "_circuit_diagrams.png", diagramSummary(spec)), nil
	case models.FormatSTL:
		return placeholder(spec, "_3d_model.stl", stlModel), nil
	case models.FormatOBJ:
		return placeholder(spec, "_3d_model.obj", objModel), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
}

var whitespace = regexp.MustCompile(`\s+`)

// Filename заменяет пробельные последовательности в имени схемы на "_".
func Filename(circuitName, suffix string) string {
	return whitespace.ReplaceAllString(circuitName, "_") + suffix
}

func placeholder(spec *models.CircuitSpec, suffix, content string) *Artifact {
	return &Artifact{
		Filename:    Filename(spec.CircuitName, suffix),
		ContentType: ContentTypePlaceholder,
		Data:        []byte(content),
		Placeholder: true,
	}
}

// ============================================================
// Combined SVG
// ============================================================

const (
	sectionHeight = 400.0
	sectionScale  = 0.8
)

func (e *Exporter) combinedSVG(spec *models.CircuitSpec, opts models.ExportOptions) string {
	type section struct {
		title string
		view  layout.View
		on    bool
	}
	sections := []section{
		{"Schematic Diagram", layout.ViewSchematic, opts.IncludeSchematic},
		{"Breadboard Layout", layout.ViewBreadboard, opts.IncludeBreadboard},
		{"PCB Layout", layout.ViewPCB, opts.IncludePCB},
	}

	var body strings.Builder
	y := 60.0
	for _, s := range sections {
		if !s.on {
			continue
		}
		body.WriteString(fmt.Sprintf(`  <text x="20" y="%g" font-family="Arial, sans-serif" font-size="16" font-weight="bold">%s</text>`+"\n", y, s.title))
		y += 30
		body.WriteString(fmt.Sprintf(`  <g class="section" id="section-%s" transform="translate(20, %g) scale(%g)">`, s.view, y, sectionScale))
		body.WriteString(innerSVG(e.renderer.Render(spec, s.view)))
		body.WriteString("</g>\n")
		y += sectionHeight + 100
	}

	height := max(y, layout.CanvasHeight)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`,
		layout.CanvasWidth, height, layout.CanvasWidth, height))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(`  <rect width="%g" height="%g" fill="white" stroke="none"/>`+"\n", layout.CanvasWidth, height))
	builder.WriteString(fmt.Sprintf(`  <text x="%g" y="30" text-anchor="middle" font-family="Arial, sans-serif" font-size="20" font-weight="bold">%s</text>`+"\n",
		layout.CanvasWidth/2, html.EscapeString(spec.CircuitName)))
	builder.WriteString(body.String())
	builder.WriteString(`</svg>`)
	return builder.String()
}

// innerSVG отрезает пролог и корневой тег, оставляя содержимое документа.
func innerSVG(doc string) string {
	start := strings.Index(doc, "<svg")
	if start < 0 {
		return ""
	}
	open := strings.Index(doc[start:], ">")
	end := strings.LastIndex(doc, "</svg>")
	if open < 0 || end < start+open {
		return ""
	}
	return doc[start+open+1 : end]
}

// ============================================================
// Placeholders
// ============================================================

func assemblyGuide(spec *models.CircuitSpec, opts models.ExportOptions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Circuit Assembly Guide: %s\n", spec.CircuitName)
	fmt.Fprintf(&b, "Description: %s\n\n", spec.Description)

	b.WriteString("Components:\n")
	for i, c := range spec.Components {
		fmt.Fprintf(&b, "%d. %s: %s (%s)\n", i+1, c.ID, c.Value, c.Type)
	}

	if opts.IncludeAssembly {
		b.WriteString("\nAssembly Steps:\n")
		for _, step := range spec.AssemblySteps {
			fmt.Fprintf(&b, "Step %d: %s\n", step.StepNumber, step.Description)
		}
	}
	return b.String()
}

func diagramSummary(spec *models.CircuitSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PNG Export: %s\n", spec.CircuitName)
	b.WriteString("Format: PNG\n")
	fmt.Fprintf(&b, "Components: %d\n", len(spec.Components))
	fmt.Fprintf(&b, "Connections: %d\n", len(spec.Connections))
	return b.String()
}

const stlModel = `solid circuit_model
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 100 0 0
      vertex 100 80 0
    endloop
  endfacet
endsolid circuit_model
`

const objModel = `# OBJ placeholder for circuit board
v 0 0 0
v 100 0 0
v 100 80 0
v 0 80 0

f 1 2 3 4
`
