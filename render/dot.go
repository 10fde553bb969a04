package render

import (
	"math"

	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/routelab/routelab/state"
)

type dotNode struct {
	id   int64
	name string
}

func (n dotNode) ID() int64     { return n.id }
func (n dotNode) DOTID() string { return n.name }

type dotEdge struct {
	simple.WeightedEdge
}

func (e dotEdge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "label", Value: state.Cost(e.W).String()}}
}

// TopologyDOT renders the topology in Graphviz DOT form, link costs as edge
// labels. This stands in for the original lab's graph drawings.
func TopologyDOT(topo *state.Topology) (string, error) {
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	index := make(map[state.NodeId]dotNode)
	for i, name := range topo.Nodes() {
		n := dotNode{id: int64(i), name: string(name)}
		index[name] = n
		g.AddNode(n)
	}
	for link, cost := range topo.Links() {
		g.SetWeightedEdge(dotEdge{simple.WeightedEdge{
			F: index[link.A],
			T: index[link.B],
			W: float64(cost),
		}})
	}
	out, err := dot.Marshal(g, "topology", "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
