package svgparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Path Parser
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

var pathCommand = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// ParsePath разбирает d-атрибут в список точек.
// Поддерживаются команды M, L, H, V, Z в абсолютной и относительной форме;
// несколько пар координат после M или L трактуются как продолжение линии.
func ParsePath(d string) ([]Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var points []Point
	var x, y float64

	for _, match := range pathCommand.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		coords, err := parseCoords(match[2])
		if err != nil {
			return nil, fmt.Errorf("command %s: %w", cmd, err)
		}
		relative := strings.ToLower(cmd) == cmd

		switch strings.ToUpper(cmd) {
		case "M", "L":
			if len(coords) < 2 || len(coords)%2 != 0 {
				return nil, fmt.Errorf("command %s: expected coordinate pairs, got %d values", cmd, len(coords))
			}
			for i := 0; i < len(coords); i += 2 {
				if relative {
					x, y = x+coords[i], y+coords[i+1]
				} else {
					x, y = coords[i], coords[i+1]
				}
				points = append(points, Point{X: x, Y: y})
			}

		case "H":
			for _, c := range coords {
				if relative {
					x += c
				} else {
					x = c
				}
				points = append(points, Point{X: x, Y: y})
			}

		case "V":
			for _, c := range coords {
				if relative {
					y += c
				} else {
					y = c
				}
				points = append(points, Point{X: x, Y: y})
			}

		case "Z":
			if len(points) > 0 {
				points = append(points, points[0])
			}
		}
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("path %q has no points", d)
	}
	return points, nil
}

func parseCoords(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	// Разделитель: запятая или пробел
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))

	coords := make([]float64, 0, len(parts))
	for _, part := range parts {
		val, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, err
		}
		coords = append(coords, val)
	}
	return coords, nil
}
