package cmd

import (
	"github.com/spf13/cobra"

	"github.com/routelab/routelab/core"
	"github.com/routelab/routelab/render"
)

// ripCmd runs the distance-vector simulation
var ripCmd = &cobra.Command{
	Use:     "rip",
	Short:   "Run a distance-vector (RIP-style) simulation",
	GroupID: "sim",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, topo, opts, log, err := loadSim("rip")
		if err != nil {
			return err
		}
		if done, err := maybePrintDot(cmd, topo); done {
			return err
		}

		dv := core.NewDistanceVector(topo)
		res := core.Run(cmd.Context(), topo, dv, opts)
		log.Info("distance-vector run finished", "converged", res.Converged, "rounds", res.Rounds)

		out := cmd.OutOrStdout()
		render.Convergence(out, res)
		return render.RoutingTables(out, dv.Tables())
	},
}

func init() {
	rootCmd.AddCommand(ripCmd)
	addSimFlags(ripCmd)
}
