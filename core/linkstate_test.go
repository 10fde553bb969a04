package core

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelab/routelab/state"
)

// square with a diagonal cheaper than any two-hop alternative
//
//	a --2-- b
//	| \     |
//	2  1    2
//	|     \ |
//	d --2-- c
func diagonalSquare(t *testing.T) *state.Topology {
	t.Helper()
	topo, err := state.NewTopology([]state.Edge{
		{A: "a", B: "b", Cost: 2},
		{A: "b", B: "c", Cost: 2},
		{A: "c", B: "d", Cost: 2},
		{A: "d", B: "a", Cost: 2},
		{A: "a", B: "c", Cost: 1},
	})
	require.NoError(t, err)
	return topo
}

func TestLinkState_FloodingSynchronizes(t *testing.T) {
	topo := diagonalSquare(t)
	ls := NewLinkState(topo)

	assert.False(t, ls.Synchronized(), "databases start with local links only")

	res := Run(context.Background(), topo, ls, Options{})
	require.True(t, res.Converged)
	assert.True(t, ls.Synchronized())

	// every database holds exactly the originated link set
	ref := ls.Database("a")
	assert.Len(t, ref, 5)
	for _, id := range topo.Nodes() {
		assert.Empty(t, cmp.Diff(ref, ls.Database(id)), "database of %s differs", id)
	}
}

func TestLinkState_DiagonalWins(t *testing.T) {
	topo := diagonalSquare(t)
	ls := NewLinkState(topo)
	res := Run(context.Background(), topo, ls, Options{})
	require.True(t, res.Converged)

	// a reaches c over the diagonal, not via b or d
	aTable := ls.RoutingTable("a")
	assert.Equal(t, state.Route{Cost: 1, NextHop: "c"}, aTable[state.NodeId("c")])
	cTable := ls.RoutingTable("c")
	assert.Equal(t, state.Route{Cost: 1, NextHop: "a"}, cTable[state.NodeId("a")])

	// d reaches b the cheap way around through the diagonal: d-a-b costs 4,
	// d-c-b costs 4, d-a-c-b costs 5; the 4-cost tie breaks to the
	// lexicographically smaller path d-a-b
	dTable := ls.RoutingTable("d")
	assert.Equal(t, state.Route{Cost: 4, NextHop: "a"}, dTable[state.NodeId("b")])
}

func TestLinkState_TablesMatchGroundTruth(t *testing.T) {
	topo := diagonalSquare(t)
	ls := NewLinkState(topo)
	res := Run(context.Background(), topo, ls, Options{})
	require.True(t, res.Converged)

	for _, id := range topo.Nodes() {
		assert.Empty(t, cmp.Diff(ShortestPaths(topo, id), ls.RoutingTable(id)),
			"routing table of %s differs from a full-topology Dijkstra run", id)
	}
}

func TestLinkState_StaleSequenceRejected(t *testing.T) {
	topo := diagonalSquare(t)
	ls := NewLinkState(topo)

	link := state.MakeLink("a", "b")
	current := ls.Database("a")[link]
	require.Equal(t, uint64(1), current.Seq, "origination starts sequence numbers at 1")

	// equal sequence: stale duplicate, dropped silently
	dup := Lsdb{link: current}
	assert.False(t, ls.Deliver("a", "b", dup))

	// older sequence: dropped even with a different cost
	older := current
	older.Seq = 0
	older.Cost = 99
	assert.False(t, ls.Deliver("a", "b", Lsdb{link: older}))
	assert.Equal(t, current, ls.Database("a")[link])

	// strictly newer sequence: accepted and overwrites
	newer := current
	newer.Seq = current.Seq + 1
	newer.Cost = 7
	assert.True(t, ls.Deliver("a", "b", Lsdb{link: newer}))
	assert.Equal(t, newer, ls.Database("a")[link])
}

func TestLinkState_Idempotent(t *testing.T) {
	topo := diagonalSquare(t)
	ls := NewLinkState(topo)
	res := Run(context.Background(), topo, ls, Options{})
	require.True(t, res.Converged)

	res = Run(context.Background(), topo, ls, Options{})
	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, []int{0}, res.Changes)
}
