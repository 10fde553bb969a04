package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/routelab/routelab/core"
	"github.com/routelab/routelab/render"
	"github.com/routelab/routelab/state"
)

// flags shared by the simulation subcommands
var (
	scenarioPath string
	maxRounds    int
	pace         time.Duration
	workers      int
	printDot     bool
)

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario yaml file")
	cmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "override the scenario round budget")
	cmd.Flags().DurationVar(&pace, "pace", 0, "override the per-round display delay")
	cmd.Flags().IntVar(&workers, "workers", 1, "per-round worker goroutines")
	cmd.Flags().BoolVar(&printDot, "dot", false, "print the topology as Graphviz DOT and exit")
	_ = cmd.MarkFlagRequired("scenario")
}

// loadSim reads the scenario, builds the topology and assembles engine
// options, honouring flag overrides.
func loadSim(prefix string) (*state.ScenarioCfg, *state.Topology, core.Options, *slog.Logger, error) {
	log, err := newLogger(prefix)
	if err != nil {
		return nil, nil, core.Options{}, nil, err
	}
	cfg, err := state.LoadScenario(scenarioPath)
	if err != nil {
		return nil, nil, core.Options{}, nil, err
	}
	topo, err := cfg.Topology()
	if err != nil {
		return nil, nil, core.Options{}, nil, err
	}
	opts := core.Options{
		MaxRounds: cfg.MaxRounds,
		Workers:   workers,
		Log:       log,
	}
	if opts.Pace, err = cfg.PaceDuration(); err != nil {
		return nil, nil, core.Options{}, nil, err
	}
	if maxRounds > 0 {
		opts.MaxRounds = maxRounds
	}
	if pace > 0 {
		opts.Pace = pace
	}
	return cfg, topo, opts, log, nil
}

// maybePrintDot handles the --dot short-circuit shared by the simulations.
func maybePrintDot(cmd *cobra.Command, topo *state.Topology) (bool, error) {
	if !printDot {
		return false, nil
	}
	out, err := render.TopologyDOT(topo)
	if err != nil {
		return true, err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return true, nil
}
