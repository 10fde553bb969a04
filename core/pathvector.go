package core

// Path-vector simulation in the style of BGP (RFC 4271): nodes advertise
// AS-paths per prefix, receivers reject any path containing their own
// identifier, and select by hop count with a lexicographic tie-break.
//
// Each node keeps, per neighbour, the latest advertisement received from it
// (an Adj-RIB-In) and recomputes its selected paths from scratch against
// everything currently advertised. A prefix missing from a later
// advertisement therefore acts as an implicit withdrawal: the stale path is
// re-evaluated away and the loss cascades round by round until every node
// has either a surviving alternative or no path at all.

import (
	"slices"

	expmaps "golang.org/x/exp/maps"

	"github.com/routelab/routelab/state"
)

type pvNode struct {
	origins []state.Prefix
	locRib  state.Rib
	// adjIn holds the most recent advertisement from each neighbour,
	// replaced wholesale on every delivery.
	adjIn map[state.NodeId]state.Rib
}

// PathVector holds the RIBs of every node. It implements RuleSet[state.Rib].
type PathVector struct {
	topo  *state.Topology
	nodes map[state.NodeId]*pvNode
}

// NewPathVector installs the origin paths: an originating node starts with
// the single-element path [self] for each of its prefixes.
func NewPathVector(topo *state.Topology, origins map[state.NodeId][]state.Prefix) *PathVector {
	pv := &PathVector{
		topo:  topo,
		nodes: make(map[state.NodeId]*pvNode),
	}
	for _, id := range topo.Nodes() {
		n := &pvNode{
			locRib: make(state.Rib),
			adjIn:  make(map[state.NodeId]state.Rib),
		}
		for _, prefix := range origins[id] {
			n.origins = append(n.origins, prefix)
			n.locRib[prefix] = state.Path{id}
		}
		pv.nodes[id] = n
	}
	return pv
}

// Advertisement builds the node's outgoing update: every selected path is
// presented with the sender prepended and any occurrence of the sender
// stripped from the tail, so a path always names its advertiser exactly once
// at the head.
func (pv *PathVector) Advertisement(id state.NodeId) state.Rib {
	n := pv.nodes[id]
	adv := make(state.Rib, len(n.locRib))
	for prefix, p := range n.locRib {
		out := make(state.Path, 0, len(p)+1)
		out = append(out, id)
		for _, hop := range p {
			if hop != id {
				out = append(out, hop)
			}
		}
		adv[prefix] = out
	}
	return adv
}

// Deliver replaces the sender's Adj-RIB-In entry with the new advertisement
// and re-runs best-path selection for the receiver. The result is compared
// with the previous selection to report change.
func (pv *PathVector) Deliver(to, from state.NodeId, adv state.Rib) bool {
	n := pv.nodes[to]
	n.adjIn[from] = adv
	selected := pv.decide(to)
	if selected.Equal(n.locRib) {
		return false
	}
	n.locRib = selected
	return true
}

// decide recomputes the node's Loc-RIB from its origins and every path its
// neighbours currently advertise.
func (pv *PathVector) decide(id state.NodeId) state.Rib {
	n := pv.nodes[id]
	rib := make(state.Rib)
	for _, prefix := range n.origins {
		rib[prefix] = state.Path{id}
	}
	// neighbours in sorted order: with the deterministic tie-break the order
	// cannot change the outcome, but it keeps any walk of the RIB stable
	neighs := expmaps.Keys(n.adjIn)
	slices.Sort(neighs)
	for _, neigh := range neighs {
		for prefix, candidate := range n.adjIn[neigh] {
			// loop prevention is a hard invariant, not a preference
			if candidate.Contains(id) {
				continue
			}
			if betterPath(candidate, rib[prefix]) {
				rib[prefix] = slices.Clone(candidate)
			}
		}
	}
	return rib
}

// betterPath implements best-path selection: any path beats none, fewer hops
// beats more, and on equal length the lexicographically smaller sequence
// wins. Age and policy play no part.
func betterPath(candidate, current state.Path) bool {
	if current == nil {
		return true
	}
	if len(candidate) != len(current) {
		return len(candidate) < len(current)
	}
	return slices.Compare(candidate, current) < 0
}

// Withdraw removes a prefix from an originating node. The prefix disappears
// from the node's own advertisements, and subsequent rounds propagate the
// loss to every node that depended on it.
func (pv *PathVector) Withdraw(id state.NodeId, prefix state.Prefix) bool {
	n, ok := pv.nodes[id]
	if !ok || !slices.Contains(n.origins, prefix) {
		return false
	}
	n.origins = slices.DeleteFunc(n.origins, func(p state.Prefix) bool { return p == prefix })
	n.locRib = pv.decide(id)
	return true
}

// Rib returns a copy of the node's selected paths.
func (pv *PathVector) Rib(id state.NodeId) state.Rib {
	return pv.nodes[id].locRib.Clone()
}

// Ribs returns every node's selected paths.
func (pv *PathVector) Ribs() map[state.NodeId]state.Rib {
	out := make(map[state.NodeId]state.Rib, len(pv.nodes))
	for id, n := range pv.nodes {
		out[id] = n.locRib.Clone()
	}
	return out
}
