package library

import "sort"

// ============================================================
// Breadboard parts
// ============================================================

// PartPin — вывод детали; X и Y заданы в шагах макетной платы.
type PartPin struct {
	ID   string `json:"id"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Type string `json:"type"`
}

type PhysicalPart struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Pins     []PartPin `json:"pins"`
}

func (p PhysicalPart) Pin(id string) (PartPin, bool) {
	for _, pin := range p.Pins {
		if pin.ID == id {
			return pin, true
		}
	}
	return PartPin{}, false
}

func twoPin(first, second string) []PartPin {
	return []PartPin{
		{ID: first, X: 0, Y: 0, Type: "male"},
		{ID: second, X: 1, Y: 0, Type: "male"},
	}
}

var parts = map[string]PhysicalPart{
	"NE555": {
		ID:       "NE555",
		Name:     "NE555 Timer IC",
		Category: "IC",
		Width:    4,
		Height:   2,
		Pins: []PartPin{
			{ID: "1", X: 0, Y: 0, Type: "male"},
			{ID: "2", X: 1, Y: 0, Type: "male"},
			{ID: "3", X: 2, Y: 0, Type: "male"},
			{ID: "4", X: 3, Y: 0, Type: "male"},
			{ID: "5", X: 3, Y: 1, Type: "male"},
			{ID: "6", X: 2, Y: 1, Type: "male"},
			{ID: "7", X: 1, Y: 1, Type: "male"},
			{ID: "8", X: 0, Y: 1, Type: "male"},
		},
	},
	"LED_5mm": {
		ID:       "LED_5mm",
		Name:     "5mm LED",
		Category: "LED",
		Width:    2,
		Height:   1,
		Pins:     twoPin("A", "K"),
	},
	"Resistor_1k": {
		ID:       "Resistor_1k",
		Name:     "1kΩ Resistor",
		Category: "Resistor",
		Width:    2,
		Height:   1,
		Pins:     twoPin("1", "2"),
	},
	"Capacitor_10uF": {
		ID:       "Capacitor_10uF",
		Name:     "10µF Capacitor",
		Category: "Capacitor",
		Width:    2,
		Height:   1,
		Pins:     twoPin("1", "2"),
	},
}

var partByType = map[string]string{
	"IC":        "NE555",
	"Resistor":  "Resistor_1k",
	"Capacitor": "Capacitor_10uF",
	"LED":       "LED_5mm",
}

// ResolvePhysicalPart подбирает деталь для макетки по типу компонента, value игнорируется.
func ResolvePhysicalPart(componentType, _ string) (PhysicalPart, bool) {
	id, ok := partByType[componentType]
	if !ok {
		return PhysicalPart{}, false
	}
	return PhysicalPartByID(id)
}

func PhysicalPartByID(id string) (PhysicalPart, bool) {
	p, ok := parts[id]
	if !ok {
		return PhysicalPart{}, false
	}
	p.Pins = append([]PartPin(nil), p.Pins...)
	return p, true
}

// PhysicalParts возвращает все детали макетки, отсортированные по id.
func PhysicalParts() []PhysicalPart {
	ids := make([]string, 0, len(parts))
	for id := range parts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]PhysicalPart, 0, len(ids))
	for _, id := range ids {
		p, _ := PhysicalPartByID(id)
		out = append(out, p)
	}
	return out
}
