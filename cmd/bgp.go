package cmd

import (
	"fmt"
	"slices"
	"strings"

	expmaps "golang.org/x/exp/maps"

	"github.com/spf13/cobra"

	"github.com/routelab/routelab/core"
	"github.com/routelab/routelab/render"
	"github.com/routelab/routelab/state"
)

var withdrawals []string

// bgpCmd runs the path-vector simulation
var bgpCmd = &cobra.Command{
	Use:     "bgp",
	Short:   "Run a path-vector (BGP-style) simulation",
	Long: `Propagates AS-path advertisements in synchronous rounds with loop
rejection and shortest-path selection. With --withdraw, the named origins drop
their prefixes after the first convergence and the simulation re-runs so the
re-convergence (or loss of reachability) is visible.`,
	GroupID: "sim",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, topo, opts, log, err := loadSim("bgp")
		if err != nil {
			return err
		}
		if done, err := maybePrintDot(cmd, topo); done {
			return err
		}
		if len(cfg.Prefixes) == 0 {
			return fmt.Errorf("scenario %s originates no prefixes", scenarioPath)
		}

		pv := core.NewPathVector(topo, cfg.Prefixes)
		res := core.Run(cmd.Context(), topo, pv, opts)
		log.Info("path-vector run finished", "converged", res.Converged, "rounds", res.Rounds)

		out := cmd.OutOrStdout()
		prefixes := allPrefixes(cfg)
		render.Convergence(out, res)
		if err := render.Ribs(out, pv.Ribs(), prefixes); err != nil {
			return err
		}

		if len(withdrawals) == 0 {
			return nil
		}
		for _, w := range withdrawals {
			node, prefix, ok := strings.Cut(w, "/")
			if !ok {
				return fmt.Errorf("withdrawal %q: want \"node/prefix\"", w)
			}
			if !pv.Withdraw(state.NodeId(node), state.Prefix(prefix)) {
				return fmt.Errorf("node %s does not originate prefix %s", node, prefix)
			}
			log.Info("prefix withdrawn", "node", node, "prefix", prefix)
		}
		res = core.Run(cmd.Context(), topo, pv, opts)
		log.Info("re-convergence finished", "converged", res.Converged, "rounds", res.Rounds)
		render.Convergence(out, res)
		return render.Ribs(out, pv.Ribs(), prefixes)
	},
}

func allPrefixes(cfg *state.ScenarioCfg) []state.Prefix {
	seen := make(map[state.Prefix]struct{})
	for _, ps := range cfg.Prefixes {
		for _, p := range ps {
			seen[p] = struct{}{}
		}
	}
	prefixes := expmaps.Keys(seen)
	slices.Sort(prefixes)
	return prefixes
}

func init() {
	rootCmd.AddCommand(bgpCmd)
	addSimFlags(bgpCmd)
	bgpCmd.Flags().StringArrayVar(&withdrawals, "withdraw", nil, "withdraw node/prefix after first convergence")
}
