package core

// Shortest-path extraction from a converged link-state database. The
// database is converted into a gonum graph and Dijkstra produces per-node
// routing tables; equal-cost ties are broken by the lexicographically
// smallest path so output is deterministic.

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/routelab/routelab/state"
)

// RoutingTable derives (cost, next hop) to every topology node from the
// node's current database. The node itself is always (0, self); destinations
// absent from the reachable set get (Inf, none).
func (ls *LinkState) RoutingTable(id state.NodeId) state.RoutingTable {
	return dijkstraTable(ls.dbs[id].links(), id, ls.topo.Nodes())
}

// RoutingTables derives the routing table of every node.
func (ls *LinkState) RoutingTables() map[state.NodeId]state.RoutingTable {
	out := make(map[state.NodeId]state.RoutingTable, len(ls.dbs))
	for _, id := range ls.topo.Nodes() {
		out[id] = ls.RoutingTable(id)
	}
	return out
}

// ShortestPaths computes the ground-truth single-source shortest paths over
// the full topology, with the same deterministic tie-breaking as the
// database extraction.
func ShortestPaths(topo *state.Topology, src state.NodeId) state.RoutingTable {
	return dijkstraTable(topo.Links(), src, topo.Nodes())
}

func (db Lsdb) links() map[state.Link]state.Cost {
	links := make(map[state.Link]state.Cost, len(db))
	for link, lsa := range db {
		links[link] = lsa.Cost
	}
	return links
}

func dijkstraTable(links map[state.Link]state.Cost, src state.NodeId, dests []state.NodeId) state.RoutingTable {
	// index every node appearing in the link set or destination list; the
	// mapping is sorted so gonum node ids are stable across runs
	names := slices.Clone(dests)
	for link := range links {
		names = append(names, link.A, link.B)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	index := make(map[state.NodeId]int64, len(names))
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i, name := range names {
		index[name] = int64(i)
		g.AddNode(simple.Node(int64(i)))
	}
	for link, cost := range links {
		g.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(index[link.A]),
			T: simple.Node(index[link.B]),
			W: float64(cost),
		})
	}

	all := path.DijkstraAllPaths(g)
	table := make(state.RoutingTable, len(dests))
	for _, dest := range dests {
		if dest == src {
			table[dest] = state.Route{Cost: 0, NextHop: src}
			continue
		}
		destId, known := index[dest]
		if !known {
			table[dest] = state.Route{Cost: state.Inf}
			continue
		}
		paths, weight := all.AllBetween(index[src], destId)
		// a finite weight at or beyond the sentinel saturates to unreachable,
		// matching AddCost; converting it directly would wrap
		if len(paths) == 0 || weight >= float64(state.Inf) {
			table[dest] = state.Route{Cost: state.Inf}
			continue
		}
		best := bestPath(paths, names)
		table[dest] = state.Route{
			Cost:    state.Cost(math.Round(weight)),
			NextHop: names[best[1].ID()],
		}
	}
	return table
}

// bestPath picks the lexicographically smallest of the equal-cost paths,
// comparing the node-name sequences.
func bestPath(paths [][]graph.Node, names []state.NodeId) []graph.Node {
	best := paths[0]
	for _, candidate := range paths[1:] {
		if comparePaths(candidate, best, names) < 0 {
			best = candidate
		}
	}
	return best
}

func comparePaths(a, b []graph.Node, names []state.NodeId) int {
	an := make([]state.NodeId, len(a))
	for i, n := range a {
		an[i] = names[n.ID()]
	}
	bn := make([]state.NodeId, len(b))
	for i, n := range b {
		bn[i] = names[n.ID()]
	}
	return slices.Compare(an, bn)
}
