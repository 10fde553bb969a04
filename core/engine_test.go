package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/routelab/routelab/state"
)

// flipFlop changes state on every delivery and so never converges.
type flipFlop struct{}

func (flipFlop) Advertisement(id state.NodeId) int           { return 0 }
func (flipFlop) Deliver(to, from state.NodeId, adv int) bool { return true }

// frozen never changes state.
type frozen struct{}

func (frozen) Advertisement(id state.NodeId) int           { return 0 }
func (frozen) Deliver(to, from state.NodeId, adv int) bool { return false }

func pair(t *testing.T) *state.Topology {
	t.Helper()
	topo, err := state.NewTopology([]state.Edge{{A: "a", B: "b"}})
	require.NoError(t, err)
	return topo
}

func TestRun_BudgetExhaustionIsAResult(t *testing.T) {
	topo := pair(t)
	res := Run(context.Background(), topo, flipFlop{}, Options{MaxRounds: 5})

	assert.False(t, res.Converged, "oscillation must be surfaced, not truncated silently")
	assert.Equal(t, 5, res.Rounds)
	assert.Equal(t, []int{2, 2, 2, 2, 2}, res.Changes)
	assert.Equal(t, 2, res.LastChanges())
}

func TestRun_ImmediateConvergence(t *testing.T) {
	topo := pair(t)
	res := Run(context.Background(), topo, frozen{}, Options{MaxRounds: 5})

	assert.True(t, res.Converged)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, []int{0}, res.Changes)
}

func TestRun_ContextCancellation(t *testing.T) {
	topo := pair(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Run(ctx, topo, flipFlop{}, Options{MaxRounds: 5})
	assert.False(t, res.Converged)
	assert.Equal(t, 0, res.Rounds)
}

func TestRun_PaceIsDisplayOnly(t *testing.T) {
	topo := pair(t)
	start := time.Now()
	res := Run(context.Background(), topo, flipFlop{}, Options{MaxRounds: 3, Pace: 10 * time.Millisecond})

	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Rounds)
	// two sleeps between three rounds
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestRun_ParallelMatchesSerial(t *testing.T) {
	defer goleak.VerifyNone(t)

	edges := []state.Edge{
		{A: "a", B: "b", Cost: 2},
		{A: "b", B: "c", Cost: 2},
		{A: "c", B: "d", Cost: 2},
		{A: "d", B: "e", Cost: 2},
		{A: "e", B: "f", Cost: 2},
		{A: "f", B: "a", Cost: 2},
		{A: "a", B: "d", Cost: 1},
		{A: "b", B: "e", Cost: 9},
	}
	topo, err := state.NewTopology(edges)
	require.NoError(t, err)

	serial := NewDistanceVector(topo)
	serialRes := Run(context.Background(), topo, serial, Options{Workers: 1})

	parallel := NewDistanceVector(topo)
	parallelRes := Run(context.Background(), topo, parallel, Options{Workers: 8})

	// the snapshot discipline makes the outcome independent of scheduling
	assert.Equal(t, serialRes, parallelRes)
	assert.Equal(t, serial.Tables(), parallel.Tables())
}
