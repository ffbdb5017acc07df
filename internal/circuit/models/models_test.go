package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		in      string
		want    Endpoint
		wantErr bool
	}{
		{in: "U1-3", want: Endpoint{Component: "U1", Pin: "3"}},
		{in: " R1-1 ", want: Endpoint{Component: "R1", Pin: "1"}},
		{in: "LED1-ANODE-2", want: Endpoint{Component: "LED1", Pin: "ANODE-2"}},
		{in: "U1-3-x", want: Endpoint{Component: "U1", Pin: "3-x"}},
		{in: "U1", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "U1-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEndpoint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Component+"-"+tt.want.Pin, got.String())
		})
	}
}

func TestNetName(t *testing.T) {
	assert.Equal(t, "net_U1-3_R1-1", NetName(Connection{From: "U1-3", To: "R1-1"}))
}

func TestLookups(t *testing.T) {
	spec := &CircuitSpec{
		Components: []Component{{ID: "U1", Type: "IC"}, {ID: "U1", Type: "LED"}},
		Breadboard: []BreadboardPlacement{{ComponentID: "U1", Row: "E", Col: 10}},
	}

	c, ok := spec.ComponentByID("U1")
	require.True(t, ok)
	assert.Equal(t, "IC", c.Type)

	_, ok = spec.ComponentByID("R9")
	assert.False(t, ok)

	p, ok := spec.PlacementFor("U1")
	require.True(t, ok)
	assert.Equal(t, 10, p.Col)

	_, ok = spec.PlacementFor("R9")
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	via := 0.8
	spec := &CircuitSpec{
		CircuitName:   "Blinker",
		Components:    []Component{{ID: "U1"}},
		Breadboard:    []BreadboardPlacement{{ComponentID: "U1", Row: "E", Col: 10}},
		PCBHints:      PCBHints{Layer: LayerSingle, TraceWidth: 0.5, ViaSize: &via},
		AssemblySteps: []AssemblyStep{{StepNumber: 1, Tools: []string{"iron"}}},
		RequiredTools: []string{},
	}

	clone := spec.Clone()
	clone.Components[0].ID = "U2"
	clone.Breadboard[0].Col = 20
	*clone.PCBHints.ViaSize = 1.2
	clone.AssemblySteps[0].Tools[0] = "pliers"

	assert.Equal(t, "U1", spec.Components[0].ID)
	assert.Equal(t, 10, spec.Breadboard[0].Col)
	assert.Equal(t, 0.8, *spec.PCBHints.ViaSize)
	assert.Equal(t, "iron", spec.AssemblySteps[0].Tools[0])
	assert.NotNil(t, clone.RequiredTools)
	assert.Nil(t, clone.PCBHints.Clearance)

	var nilSpec *CircuitSpec
	assert.Nil(t, nilSpec.Clone())
}
