package cmd

import (
	"fmt"
	"net/netip"

	"github.com/spf13/cobra"

	"github.com/routelab/routelab/fib"
)

var (
	routeSpecs  []string
	defaultLink string
)

// lpmCmd answers longest-prefix-match lookups against a static route set
var lpmCmd = &cobra.Command{
	Use:     "lpm [addresses...]",
	Short:   "Longest-prefix-match lookups against a static forwarding table",
	Args:    cobra.MinimumNArgs(1),
	GroupID: "tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, err := fib.ParseRoutes(routeSpecs)
		if err != nil {
			return err
		}
		fwd, err := fib.NewForwarder(routes, defaultLink)
		if err != nil {
			return err
		}
		for _, arg := range args {
			addr, err := netip.ParseAddr(arg)
			if err != nil {
				return err
			}
			link, ok := fwd.Lookup(addr)
			if !ok {
				link = "(no match)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", addr, link)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lpmCmd)
	lpmCmd.Flags().StringArrayVarP(&routeSpecs, "route", "r", nil, "route as cidr=link, repeatable")
	lpmCmd.Flags().StringVar(&defaultLink, "default", "", "link for addresses no route covers")
	_ = lpmCmd.MarkFlagRequired("route")
}
