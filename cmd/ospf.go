package cmd

import (
	"github.com/spf13/cobra"

	"github.com/routelab/routelab/core"
	"github.com/routelab/routelab/render"
)

// ospfCmd runs the link-state simulation
var ospfCmd = &cobra.Command{
	Use:     "ospf",
	Short:   "Run a link-state (OSPF-style) simulation",
	Long: `Floods link-state advertisements in synchronous rounds until every node
holds an identical database, then extracts per-node routing tables with
Dijkstra.`,
	GroupID: "sim",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, topo, opts, log, err := loadSim("ospf")
		if err != nil {
			return err
		}
		if done, err := maybePrintDot(cmd, topo); done {
			return err
		}

		ls := core.NewLinkState(topo)
		res := core.Run(cmd.Context(), topo, ls, opts)
		log.Info("link-state flooding finished",
			"converged", res.Converged, "rounds", res.Rounds, "synchronized", ls.Synchronized())

		out := cmd.OutOrStdout()
		render.Convergence(out, res)
		return render.RoutingTables(out, ls.RoutingTables())
	},
}

func init() {
	rootCmd.AddCommand(ospfCmd)
	addSimFlags(ospfCmd)
}
