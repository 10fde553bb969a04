package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopology(t *testing.T) {
	topo, err := NewTopology([]Edge{
		{A: "b", B: "a", Cost: 2},
		{A: "b", B: "c"},
	})
	require.NoError(t, err)

	assert.Equal(t, []NodeId{"a", "b", "c"}, topo.Nodes())
	assert.Equal(t, []NodeId{"a", "c"}, topo.Neighbours("b"))
	assert.True(t, topo.HasNode("c"))
	assert.False(t, topo.HasNode("z"))

	// adjacency is symmetric and cost lookup ignores endpoint order
	cost, ok := topo.LinkCost("a", "b")
	require.True(t, ok)
	assert.Equal(t, Cost(2), cost)
	cost, ok = topo.LinkCost("b", "a")
	require.True(t, ok)
	assert.Equal(t, Cost(2), cost)

	// unspecified cost defaults to 1
	cost, ok = topo.LinkCost("b", "c")
	require.True(t, ok)
	assert.Equal(t, Cost(1), cost)

	_, ok = topo.LinkCost("a", "c")
	assert.False(t, ok)
}

func TestNewTopology_Rejects(t *testing.T) {
	_, err := NewTopology([]Edge{{A: "a", B: "a"}})
	assert.Error(t, err, "self-loop")

	_, err = NewTopology([]Edge{{A: "a", B: ""}})
	assert.Error(t, err, "unnamed endpoint")

	_, err = NewTopology([]Edge{{A: "a", B: "b"}, {A: "b", B: "a", Cost: 3}})
	assert.Error(t, err, "duplicate edge")

	_, err = NewTopology([]Edge{{A: "a", B: "b", Cost: Inf}})
	assert.Error(t, err, "infinite cost")
}

func TestMakeLink_Canonical(t *testing.T) {
	assert.Equal(t, MakeLink("a", "b"), MakeLink("b", "a"))
	assert.Equal(t, NodeId("b"), MakeLink("a", "b").Other("a"))
	assert.Equal(t, NodeId("a"), MakeLink("b", "a").Other("b"))
}

func TestIncidentLinks(t *testing.T) {
	topo, err := NewTopology([]Edge{
		{A: "a", B: "b"},
		{A: "a", B: "c"},
		{A: "b", B: "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Link{MakeLink("a", "b"), MakeLink("a", "c")}, topo.IncidentLinks("a"))
}
