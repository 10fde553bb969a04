package core

// Distance-vector simulation in the style of RIP (RFC 2453): every round each
// node advertises its full distance vector to its neighbours, and receivers
// apply Bellman-Ford relaxation.

import (
	"fmt"

	"github.com/routelab/routelab/state"
)

// DistanceVector holds the distance vector of every node in the simulation.
// It implements RuleSet[state.Vector].
type DistanceVector struct {
	topo    *state.Topology
	vectors map[state.NodeId]state.Vector
}

// NewDistanceVector seeds each node's vector: (0, self) for itself, the link
// cost for each direct neighbour, and (Inf, none) for everything else.
func NewDistanceVector(topo *state.Topology) *DistanceVector {
	dv := &DistanceVector{
		topo:    topo,
		vectors: make(map[state.NodeId]state.Vector),
	}
	nodes := topo.Nodes()
	for _, id := range nodes {
		vec := make(state.Vector, len(nodes))
		for _, dest := range nodes {
			switch {
			case dest == id:
				vec[dest] = state.Route{Cost: 0, NextHop: id}
			default:
				if cost, ok := topo.LinkCost(id, dest); ok {
					vec[dest] = state.Route{Cost: cost, NextHop: dest}
				} else {
					vec[dest] = state.Route{Cost: state.Inf}
				}
			}
		}
		dv.vectors[id] = vec
	}
	return dv
}

// Advertisement returns a copy of the node's full vector. Real RIP would
// prune to changed entries (and apply split horizon); advertising the whole
// table every round keeps the model deterministic.
func (dv *DistanceVector) Advertisement(id state.NodeId) state.Vector {
	return dv.vectors[id].Clone()
}

// Deliver relaxes the receiver's vector against a neighbour's advertisement.
// An entry is replaced only when the candidate cost is strictly smaller;
// ties never replace, which guarantees termination.
func (dv *DistanceVector) Deliver(to, from state.NodeId, adv state.Vector) bool {
	linkCost, ok := dv.topo.LinkCost(to, from)
	if !ok {
		// the engine only delivers along topology edges
		panic(fmt.Sprintf("delivery between non-adjacent nodes %s and %s", from, to))
	}
	vec := dv.vectors[to]
	changed := false
	for dest, route := range adv {
		candidate := state.AddCost(linkCost, route.Cost)
		if candidate < vec[dest].Cost {
			vec[dest] = state.Route{Cost: candidate, NextHop: from}
			changed = true
		}
	}
	return changed
}

// Table returns the node's current routing table.
func (dv *DistanceVector) Table(id state.NodeId) state.RoutingTable {
	return dv.vectors[id].Clone()
}

// Tables returns every node's routing table.
func (dv *DistanceVector) Tables() map[state.NodeId]state.RoutingTable {
	out := make(map[state.NodeId]state.RoutingTable, len(dv.vectors))
	for id, vec := range dv.vectors {
		out[id] = vec.Clone()
	}
	return out
}
