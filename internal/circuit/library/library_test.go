package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFootprintByType(t *testing.T) {
	tests := []struct {
		componentType string
		want          string
	}{
		{"IC", "DIP-8"},
		{"Resistor", "R_0805_2012Metric"},
		{"Capacitor", "C_0805_2012Metric"},
		{"LED", "LED_D5.0mm"},
	}
	for _, tt := range tests {
		t.Run(tt.componentType, func(t *testing.T) {
			fp, ok := ResolveFootprint(tt.componentType, "anything")
			require.True(t, ok)
			assert.Equal(t, tt.want, fp.Name)
		})
	}

	_, ok := ResolveFootprint("Transistor", "2N2222")
	assert.False(t, ok)
}

func TestResolveFootprintIgnoresValue(t *testing.T) {
	a, _ := ResolveFootprint("Resistor", "1k")
	b, _ := ResolveFootprint("Resistor", "470R")
	assert.Equal(t, a, b)
}

func TestFootprintPinLookup(t *testing.T) {
	fp, ok := FootprintByName("DIP-8")
	require.True(t, ok)

	pin, ok := fp.Pin("3")
	require.True(t, ok)
	assert.Equal(t, "OUT", pin.Name)

	pin, ok = fp.Pin("GND")
	require.True(t, ok)
	assert.Equal(t, "8", pin.Number)
	assert.Equal(t, RolePower, pin.Role)

	_, ok = fp.Pin("9")
	assert.False(t, ok)
}

func TestLookupsReturnCopies(t *testing.T) {
	fp, _ := FootprintByName("DIP-8")
	fp.Pins[0].Name = "changed"

	again, _ := FootprintByName("DIP-8")
	assert.Equal(t, "VCC", again.Pins[0].Name)

	part, _ := PhysicalPartByID("NE555")
	part.Pins[0].ID = "changed"

	partAgain, _ := PhysicalPartByID("NE555")
	assert.Equal(t, "1", partAgain.Pins[0].ID)
}

func TestResolvePhysicalPart(t *testing.T) {
	part, ok := ResolvePhysicalPart("IC", "NE555")
	require.True(t, ok)
	assert.Equal(t, "NE555", part.ID)
	assert.Len(t, part.Pins, 8)

	pin, ok := part.Pin("5")
	require.True(t, ok)
	assert.Equal(t, 3, pin.X)
	assert.Equal(t, 1, pin.Y)

	led, ok := ResolvePhysicalPart("LED", "red")
	require.True(t, ok)
	_, ok = led.Pin("K")
	assert.True(t, ok)

	_, ok = ResolvePhysicalPart("Relay", "")
	assert.False(t, ok)
}

func TestFootprintsSorted(t *testing.T) {
	all := Footprints()
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name, all[i].Name)
	}
}

func TestPhysicalPartsSorted(t *testing.T) {
	all := PhysicalParts()
	require.Len(t, all, 4)
	assert.Equal(t, "Capacitor_10uF", all[0].ID)
	assert.Equal(t, "Resistor_1k", all[3].ID)

	all[0].Pins[0].ID = "mutated"
	again, _ := PhysicalPartByID("Capacitor_10uF")
	assert.Equal(t, "1", again.Pins[0].ID)
}

func TestComponentDimensions(t *testing.T) {
	assert.Equal(t, Dimensions{Width: 9.4, Height: 6.35}, ComponentDimensions("IC"))
	assert.Equal(t, Dimensions{Width: 2, Height: 2}, ComponentDimensions("Diode"))
}

func TestRowColToPosition(t *testing.T) {
	origin := RowColToPosition("A", 1)
	assert.Equal(t, 0.0, origin.X)
	assert.Equal(t, 0.0, origin.Y)

	last := RowColToPosition("J", 63)
	assert.InDelta(t, 157.48, last.X, 1e-9)
	assert.InDelta(t, 22.86, last.Y, 1e-9)

	lower := RowColToPosition("j", 63)
	assert.Equal(t, last, lower)
}

func TestRowColToPositionClampsColumns(t *testing.T) {
	tests := []struct {
		name string
		col  int
		want float64
	}{
		{"zero", 0, 0},
		{"negative", -5, 0},
		{"past end", 64, 157.48},
		{"far past end", 1000, 157.48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RowColToPosition("A", tt.col).X, 1e-9)
		})
	}
}

func TestRowColToPositionUnknownRow(t *testing.T) {
	assert.Equal(t, 0.0, RowColToPosition("Z", 5).Y)
	assert.Equal(t, 0.0, RowColToPosition("", 5).Y)
}

func TestHolePosition(t *testing.T) {
	p := HolePosition("B", 2)
	assert.InDelta(t, 3.81, p.X, 1e-9)
	assert.InDelta(t, 3.81, p.Y, 1e-9)
}

func TestRowLetter(t *testing.T) {
	assert.Equal(t, "A", RowLetter(0))
	assert.Equal(t, "J", RowLetter(9))
	assert.Equal(t, 3, RowIndex("d"))
	assert.Equal(t, -1, RowIndex("AB"))
}
