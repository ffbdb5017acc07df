package svgparse

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================
// XML Structures
// ============================================================

type svgRoot struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	element
}

type element struct {
	Texts   []Text   `xml:"text"`
	Rects   []Rect   `xml:"rect"`
	Paths   []Path   `xml:"path"`
	Circles []Circle `xml:"circle"`
	Lines   []Line   `xml:"line"`
	Groups  []Group  `xml:"g"`
}

type Group struct {
	ID    string `xml:"id,attr"`
	Class string `xml:"class,attr"`
	element
}

type Text struct {
	Value string `xml:",chardata"`
}

type Rect struct {
	ID     string  `xml:"id,attr"`
	Class  string  `xml:"class,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type Path struct {
	Class  string `xml:"class,attr"`
	Net    string `xml:"data-net,attr"`
	D      string `xml:"d,attr"`
	Stroke string `xml:"stroke,attr"`
}

type Circle struct {
	ID    string  `xml:"id,attr"`
	Class string  `xml:"class,attr"`
	CX    float64 `xml:"cx,attr"`
	CY    float64 `xml:"cy,attr"`
	Fill  string  `xml:"fill,attr"`
}

type Line struct {
	Class string `xml:"class,attr"`
	Net   string `xml:"data-net,attr"`
}

// ============================================================
// Document summary
// ============================================================

var ErrMultipleRoots = errors.New("svg: content after root element")

type Pin struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Fill string  `json:"fill"`
}

type Component struct {
	ID   string `json:"id"`
	Pins []Pin  `json:"pins"`
}

type Wire struct {
	Class  string  `json:"class"`
	Net    string  `json:"net"`
	Stroke string  `json:"stroke"`
	Points []Point `json:"points"`
}

// Document — то, что удалось прочитать из отрисованной схемы.
type Document struct {
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Title      string      `json:"title"`
	Components []Component `json:"components"`
	Wires      []Wire      `json:"wires"`
	Pads       int         `json:"pads"`
	Rails      []string    `json:"rails"`
	Nodes      []string    `json:"nodes"`
	NetLinks   int         `json:"net_links"`
}

// Parse читает ровно один корневой элемент <svg> и собирает сводку
// по группам с классами component, rail, node и элементам wire, trace, pad, net.
func Parse(r io.Reader) (*Document, error) {
	var root svgRoot
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&root); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode svg: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return nil, ErrMultipleRoots
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, ErrMultipleRoots
			}
		}
	}

	doc := &Document{
		Width:  parseLength(root.Width),
		Height: parseLength(root.Height),
	}
	if len(root.Texts) > 0 {
		doc.Title = strings.TrimSpace(root.Texts[0].Value)
	}
	if err := doc.collect(root.element); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) collect(e element) error {
	for _, p := range e.Paths {
		if p.Class != "wire" && p.Class != "trace" {
			continue
		}
		points, err := ParsePath(p.D)
		if err != nil {
			return fmt.Errorf("%s %q: %w", p.Class, p.Net, err)
		}
		d.Wires = append(d.Wires, Wire{Class: p.Class, Net: p.Net, Stroke: p.Stroke, Points: points})
	}
	for _, c := range e.Circles {
		if c.Class == "pad" {
			d.Pads++
		}
	}
	for _, l := range e.Lines {
		if l.Class == "net" {
			d.NetLinks++
		}
	}

	for _, g := range e.Groups {
		switch g.Class {
		case "component":
			comp := Component{ID: g.ID, Pins: []Pin{}}
			for _, c := range g.Circles {
				comp.Pins = append(comp.Pins, Pin{X: c.CX, Y: c.CY, Fill: c.Fill})
			}
			d.Components = append(d.Components, comp)
		case "rail":
			d.Rails = append(d.Rails, g.ID)
		case "node":
			d.Nodes = append(d.Nodes, g.ID)
		}
		if err := d.collect(g.element); err != nil {
			return err
		}
	}
	return nil
}

func parseLength(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
