package core

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/routelab/routelab/state"
)

// RuleSet is the per-protocol behaviour plugged into the round engine. One
// rule set instance owns the state of every node in the simulation.
type RuleSet[M any] interface {
	// Advertisement builds the message the node sends to all of its
	// neighbours this round. It must read only the node's own state and
	// return a copy that later mutation cannot reach: the engine treats the
	// returned messages as the atomic pre-round snapshot.
	Advertisement(id state.NodeId) M
	// Deliver applies a neighbour's advertisement to the receiving node's
	// state and reports whether that state changed. It is the only place a
	// node's state is mutated during a round.
	Deliver(to, from state.NodeId, adv M) bool
}

// Options holds run parameters for the engine.
type Options struct {
	// MaxRounds is the round budget; state.DefaultMaxRounds when zero.
	MaxRounds int
	// Pace is an optional delay between rounds. It has no semantic effect
	// and exists only so external progress display is watchable.
	Pace time.Duration
	// Workers bounds the per-round parallelism. Zero or one runs the round
	// single-threaded; correctness never depends on the value.
	Workers int
	Log     *slog.Logger
}

// Result reports how a run ended. Exhausting the round budget is not an
// error: Converged is false and the change series shows the oscillation.
type Result struct {
	Converged bool
	Rounds    int
	// Changes holds, per round, how many delivered advertisements changed
	// the receiving node's state.
	Changes []int
}

// LastChanges returns the change count of the final round, for diagnosing a
// run that gave up.
func (r Result) LastChanges() int {
	if len(r.Changes) == 0 {
		return 0
	}
	return r.Changes[len(r.Changes)-1]
}

// Run drives synchronous rounds until a round produces zero changes or the
// round budget is exhausted. Every advertisement of round R is computed from
// the state as it stood when round R began; deliveries mutate state only
// through the receiving node's own Deliver call.
func Run[M any](ctx context.Context, topo *state.Topology, rules RuleSet[M], opts Options) Result {
	if opts.MaxRounds <= 0 {
		opts.MaxRounds = state.DefaultMaxRounds
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	nodes := topo.Nodes()
	res := Result{}

	for round := 1; round <= opts.MaxRounds; round++ {
		if ctx.Err() != nil {
			return res
		}

		// phase 1: snapshot. Every node's outgoing advertisement is built
		// before any delivery happens, so all of this round's messages
		// reflect the same pre-round state regardless of iteration order.
		advs := make([]M, len(nodes))
		if opts.Workers == 1 {
			for i, id := range nodes {
				advs[i] = rules.Advertisement(id)
			}
		} else {
			g := errgroup.Group{}
			g.SetLimit(opts.Workers)
			for i, id := range nodes {
				g.Go(func() error {
					advs[i] = rules.Advertisement(id)
					return nil
				})
			}
			g.Wait()
		}
		index := make(map[state.NodeId]int, len(nodes))
		for i, id := range nodes {
			index[id] = i
		}

		// phase 2: delivery, grouped by receiver. All mutations of one
		// node's state stay on a single goroutine.
		changed := make([]int, len(nodes))
		deliverTo := func(i int, to state.NodeId) {
			for _, from := range topo.Neighbours(to) {
				if rules.Deliver(to, from, advs[index[from]]) {
					changed[i]++
				}
			}
		}
		if opts.Workers == 1 {
			for i, id := range nodes {
				deliverTo(i, id)
			}
		} else {
			g := errgroup.Group{}
			g.SetLimit(opts.Workers)
			for i, id := range nodes {
				g.Go(func() error {
					deliverTo(i, id)
					return nil
				})
			}
			g.Wait()
		}

		total := 0
		for _, c := range changed {
			total += c
		}
		res.Rounds = round
		res.Changes = append(res.Changes, total)
		log.Debug("round complete", "round", round, "changes", total)

		if total == 0 {
			res.Converged = true
			return res
		}
		if opts.Pace > 0 {
			select {
			case <-time.After(opts.Pace):
			case <-ctx.Done():
				return res
			}
		}
	}
	log.Debug("round budget exhausted", "rounds", res.Rounds, "lastChanges", res.LastChanges())
	return res
}
