package layout

import (
	"sort"

	"circuit-copilot/internal/circuit/library"
	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Optimizer
// ============================================================

const optimizerColumns = 10

var typePriority = map[string]int{
	"IC":        0,
	"Resistor":  1,
	"Capacitor": 2,
	"LED":       3,
}

func priority(componentType string) int {
	if p, ok := typePriority[componentType]; ok {
		return p
	}
	return len(typePriority)
}

// Optimize возвращает копию спецификации с компонентами, отсортированными
// по типу. Размещения остаются в прежнем порядке и получают новые
// ряд и столбец подряд, по 10 в строке. Вход не меняется.
func Optimize(spec *models.CircuitSpec) *models.CircuitSpec {
	out := spec.Clone()

	sort.SliceStable(out.Components, func(i, j int) bool {
		return priority(out.Components[i].Type) < priority(out.Components[j].Type)
	})

	for i := range out.Breadboard {
		out.Breadboard[i].Row = library.RowLetter(i / optimizerColumns)
		out.Breadboard[i].Col = i%optimizerColumns + 1
	}
	return out
}
