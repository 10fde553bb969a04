package state

import (
	"fmt"
	"slices"
)

type NodeId string

// Link identifies an undirected edge. The endpoints are kept in canonical
// order so that (u,v) and (v,u) are the same key.
type Link struct {
	A, B NodeId
}

// MakeLink returns the canonical Link for the unordered pair (u, v).
func MakeLink(u, v NodeId) Link {
	if v < u {
		u, v = v, u
	}
	return Link{A: u, B: v}
}

func (l Link) String() string {
	return string(l.A) + "-" + string(l.B)
}

// Other returns the endpoint opposite to n.
func (l Link) Other(n NodeId) NodeId {
	if l.A == n {
		return l.B
	}
	return l.A
}

// Edge is the construction-time form of a link.
type Edge struct {
	A, B NodeId
	Cost Cost // 0 means "use the default cost of 1"
}

// Topology is an immutable undirected weighted graph of nodes. Adjacency is
// symmetric by construction and never mutated after NewTopology returns.
type Topology struct {
	nodes []NodeId
	adj   map[NodeId][]NodeId
	costs map[Link]Cost
}

// NewTopology validates the edge list and builds the graph. Self-loops,
// duplicate edges, unnamed endpoints and infinite costs are construction
// errors; a zero cost means the default cost of 1.
func NewTopology(edges []Edge) (*Topology, error) {
	t := &Topology{
		adj:   make(map[NodeId][]NodeId),
		costs: make(map[Link]Cost),
	}
	for _, e := range edges {
		if e.A == "" || e.B == "" {
			return nil, fmt.Errorf("edge with unnamed endpoint: %q, %q", e.A, e.B)
		}
		if e.A == e.B {
			return nil, fmt.Errorf("self-loop on node %s", e.A)
		}
		cost := e.Cost
		if cost == 0 {
			cost = 1
		}
		if cost == Inf {
			return nil, fmt.Errorf("link %s-%s has infinite cost", e.A, e.B)
		}
		link := MakeLink(e.A, e.B)
		if _, dup := t.costs[link]; dup {
			return nil, fmt.Errorf("duplicate edge %s", link)
		}
		t.costs[link] = cost
		t.adj[e.A] = append(t.adj[e.A], e.B)
		t.adj[e.B] = append(t.adj[e.B], e.A)
	}
	for n, neighs := range t.adj {
		slices.Sort(neighs)
		t.nodes = append(t.nodes, n)
	}
	slices.Sort(t.nodes)
	return t, nil
}

// Nodes returns all node identifiers in sorted order.
func (t *Topology) Nodes() []NodeId {
	return slices.Clone(t.nodes)
}

// Neighbours returns the sorted neighbour set of n.
func (t *Topology) Neighbours(n NodeId) []NodeId {
	return slices.Clone(t.adj[n])
}

func (t *Topology) HasNode(n NodeId) bool {
	_, ok := t.adj[n]
	return ok
}

// LinkCost returns the cost of the link between u and v, if one exists.
func (t *Topology) LinkCost(u, v NodeId) (Cost, bool) {
	c, ok := t.costs[MakeLink(u, v)]
	return c, ok
}

// Links returns a copy of every link with its cost.
func (t *Topology) Links() map[Link]Cost {
	out := make(map[Link]Cost, len(t.costs))
	for l, c := range t.costs {
		out[l] = c
	}
	return out
}

// IncidentLinks returns the links touching n in sorted order.
func (t *Topology) IncidentLinks(n NodeId) []Link {
	links := make([]Link, 0, len(t.adj[n]))
	for _, neigh := range t.adj[n] {
		links = append(links, MakeLink(n, neigh))
	}
	return links
}
