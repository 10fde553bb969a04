package state

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	expmaps "golang.org/x/exp/maps"
)

// Route is one routing table entry. NextHop is empty when the destination is
// unreachable; a node's route to itself is (0, self).
type Route struct {
	Cost    Cost
	NextHop NodeId
}

func (r Route) String() string {
	nh := string(r.NextHop)
	if nh == "" {
		nh = "-"
	}
	return fmt.Sprintf("(cost: %s, nh: %s)", r.Cost, nh)
}

// RoutingTable maps destination to the selected route. Unreachable
// destinations are present with (Inf, none), never missing.
type RoutingTable map[NodeId]Route

// Vector is a node's distance vector. It has the same shape as a routing
// table; the distinction is that a Vector is protocol state, mutated by the
// owning node during rounds, while a RoutingTable is derived output.
type Vector = RoutingTable

// Clone returns a deep copy, used to snapshot state at the start of a round.
func (t RoutingTable) Clone() RoutingTable {
	return maps.Clone(t)
}

func (t RoutingTable) String() string {
	dests := expmaps.Keys(t)
	slices.Sort(dests)
	rows := make([]string, 0, len(dests))
	for _, d := range dests {
		rows = append(rows, fmt.Sprintf("%s via %s", d, t[d]))
	}
	return strings.Join(rows, "\n")
}

// Prefix is an opaque destination identifier advertised by path-vector
// origins. The simulation attaches no structure to it.
type Prefix string

// Path is an AS-path: the head is the most recent advertiser, the tail ends
// at the origin.
type Path []NodeId

func (p Path) String() string {
	if len(p) == 0 {
		return "unreachable"
	}
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = string(n)
	}
	return strings.Join(parts, " -> ")
}

// Contains reports whether n appears anywhere on the path.
func (p Path) Contains(n NodeId) bool {
	return slices.Contains(p, n)
}

// Rib maps prefix to the selected AS-path.
type Rib map[Prefix]Path

// Clone returns a deep copy including the path slices.
func (r Rib) Clone() Rib {
	out := make(Rib, len(r))
	for prefix, path := range r {
		out[prefix] = slices.Clone(path)
	}
	return out
}

// Equal reports whether two RIBs select identical paths.
func (r Rib) Equal(other Rib) bool {
	if len(r) != len(other) {
		return false
	}
	for prefix, path := range r {
		if !slices.Equal(path, other[prefix]) {
			return false
		}
	}
	return true
}

func (r Rib) String() string {
	prefixes := expmaps.Keys(r)
	slices.Sort(prefixes)
	rows := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		rows = append(rows, fmt.Sprintf("%s: %s", p, r[p]))
	}
	return strings.Join(rows, "\n")
}
