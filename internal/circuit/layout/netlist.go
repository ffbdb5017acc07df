package layout

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"circuit-copilot/internal/circuit/library"
	"circuit-copilot/internal/circuit/models"
)

// ============================================================
// Netlist
// ============================================================

const netlistAuthor = "circuit-copilot"

type NetlistNode struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Pins       []string          `json:"pins"`
	Properties map[string]string `json:"properties"`
}

type Net struct {
	Name  string   `json:"net"`
	Nodes []string `json:"nodes"`
}

type NetlistMetadata struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type Netlist struct {
	Nodes    []NetlistNode   `json:"nodes"`
	Nets     []Net           `json:"connections"`
	Metadata NetlistMetadata `json:"metadata"`
}

// BuildNetlist строит список узлов и цепей. Соединения с общим концом
// сливаются в одну цепь, названную по первому соединению.
func BuildNetlist(spec *models.CircuitSpec) *Netlist {
	out := &Netlist{
		Nodes:    make([]NetlistNode, 0, len(spec.Components)),
		Nets:     []Net{},
		Metadata: NetlistMetadata{Title: spec.CircuitName, Author: netlistAuthor},
	}

	for _, comp := range spec.Components {
		pins := []string{comp.ID + "-1", comp.ID + "-2"}
		if fp, ok := library.ResolveFootprint(comp.Type, comp.Value); ok {
			pins = make([]string, 0, len(fp.Pins))
			for _, pin := range fp.Pins {
				pins = append(pins, comp.ID+"-"+pin.Number)
			}
		}
		out.Nodes = append(out.Nodes, NetlistNode{
			ID:   comp.ID,
			Type: comp.Type,
			Pins: pins,
			Properties: map[string]string{
				"value":       comp.Value,
				"footprint":   comp.Footprint,
				"description": comp.Description,
			},
		})
	}

	out.Nets = groupNets(spec.Connections)
	return out
}

// groupNets находит компоненты связности графа концов соединений.
// Идентификаторы узлов графа выдаются в порядке первого появления конца,
// так что сортировка по ID восстанавливает этот порядок.
func groupNets(conns []models.Connection) []Net {
	g := simple.NewUndirectedGraph()
	ids := make(map[string]int64)
	var labels []string

	nodeFor := func(endpoint string) int64 {
		endpoint = strings.TrimSpace(endpoint)
		if id, ok := ids[endpoint]; ok {
			return id
		}
		id := int64(len(labels))
		ids[endpoint] = id
		labels = append(labels, endpoint)
		g.AddNode(simple.Node(id))
		return id
	}

	for _, conn := range conns {
		from, to := nodeFor(conn.From), nodeFor(conn.To)
		if from != to {
			g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
		}
	}

	componentOf := make(map[int64]int)
	groups := topo.ConnectedComponents(g)
	for gi, group := range groups {
		for _, n := range group {
			componentOf[n.ID()] = gi
		}
	}

	nets := []Net{}
	emitted := make(map[int]bool, len(groups))
	for _, conn := range conns {
		gi := componentOf[ids[strings.TrimSpace(conn.From)]]
		if emitted[gi] {
			continue
		}
		emitted[gi] = true
		nets = append(nets, Net{
			Name:  models.NetName(conn),
			Nodes: nodeLabels(groups[gi], labels),
		})
	}
	return nets
}

func nodeLabels(group []graph.Node, labels []string) []string {
	ids := make([]int64, 0, len(group))
	for _, n := range group {
		ids = append(ids, n.ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, labels[id])
	}
	return out
}

// WithPowerNets добавляет узлы VCC и GND и подключает к ним выводы питания
// всех микросхем.
func (n *Netlist) WithPowerNets() *Netlist {
	out := &Netlist{
		Nodes:    append([]NetlistNode(nil), n.Nodes...),
		Nets:     append([]Net(nil), n.Nets...),
		Metadata: n.Metadata,
	}

	vcc := Net{Name: "VCC_NET", Nodes: []string{"VCC"}}
	gnd := Net{Name: "GND_NET", Nodes: []string{"GND"}}
	for _, node := range n.Nodes {
		if node.Type == "IC" {
			vcc.Nodes = append(vcc.Nodes, node.ID+"-VCC")
			gnd.Nodes = append(gnd.Nodes, node.ID+"-GND")
		}
	}

	out.Nodes = append(out.Nodes,
		NetlistNode{
			ID:         "VCC",
			Type:       "Power",
			Pins:       []string{"VCC"},
			Properties: map[string]string{"value": "5V", "footprint": "Power", "description": "Positive power supply"},
		},
		NetlistNode{
			ID:         "GND",
			Type:       "Ground",
			Pins:       []string{"GND"},
			Properties: map[string]string{"value": "0V", "footprint": "Ground", "description": "Ground reference"},
		},
	)
	out.Nets = append(out.Nets, vcc, gnd)
	return out
}
