package layout

import (
	"math"

	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Routing & endpoint resolution
// ============================================================

// orthogonalPath — путь из четырех точек с изломом по середине по X.
// Пересечения не обходятся.
func orthogonalPath(from, to models.Point) []models.Point {
	midX := (from.X + to.X) / 2
	return []models.Point{
		from,
		{X: midX, Y: from.Y},
		{X: midX, Y: to.Y},
		to,
	}
}

// gridPosition — клетка квадратной сетки для i-го компонента из n.
func gridPosition(i, n int, origin, spacing float64) models.Point {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols == 0 {
		cols = 1
	}
	return models.Point{
		X: origin + float64(i%cols)*spacing,
		Y: origin + float64(i/cols)*spacing,
	}
}

// pinLocator возвращает индекс вывода компонента раскладки по ссылке из соединения.
type pinLocator func(component int, pin string) (int, bool)

type resolvedEnd struct {
	Endpoint  models.Endpoint
	Component int
	Pin       int
}

type resolver struct {
	declared map[string]bool
	placed   map[string]int
}

func newResolver(spec *models.CircuitSpec) *resolver {
	r := &resolver{
		declared: make(map[string]bool, len(spec.Components)),
		placed:   make(map[string]int, len(spec.Components)),
	}
	for _, c := range spec.Components {
		r.declared[c.ID] = true
	}
	return r
}

// place запоминает первый экземпляр компонента в раскладке.
func (r *resolver) place(id string, index int) {
	if _, ok := r.placed[id]; !ok {
		r.placed[id] = index
	}
}

func (r *resolver) end(raw string, locate pinLocator) (resolvedEnd, string) {
	ep, err := models.ParseEndpoint(raw)
	if err != nil {
		return resolvedEnd{}, ReasonMalformed
	}
	idx, ok := r.placed[ep.Component]
	if !ok {
		if r.declared[ep.Component] {
			return resolvedEnd{}, ReasonNotInLayout
		}
		return resolvedEnd{}, ReasonUnknownComponent
	}
	pin, ok := locate(idx, ep.Pin)
	if !ok {
		return resolvedEnd{}, ReasonUnknownPin
	}
	return resolvedEnd{Endpoint: ep, Component: idx, Pin: pin}, ""
}

// connection разрешает оба конца; при неудаче возвращает запись для Skipped.
func (r *resolver) connection(i int, conn models.Connection, locate pinLocator) (resolvedEnd, resolvedEnd, *SkippedConnection) {
	from, reason := r.end(conn.From, locate)
	if reason == "" {
		var to resolvedEnd
		to, reason = r.end(conn.To, locate)
		if reason == "" {
			return from, to, nil
		}
	}
	return resolvedEnd{}, resolvedEnd{}, &SkippedConnection{
		Index:  i,
		From:   conn.From,
		To:     conn.To,
		Reason: reason,
	}
}
