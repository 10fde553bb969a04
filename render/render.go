// Package render formats simulation output for the console and for files.
// It consumes the plain data the simulator core hands out; nothing here
// feeds back into the protocols.
package render

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	expmaps "golang.org/x/exp/maps"

	"github.com/routelab/routelab/core"
	"github.com/routelab/routelab/state"
)

// RoutingTables writes every node's routing table as an aligned text table,
// sorted by node then destination.
func RoutingTables(w io.Writer, tables map[state.NodeId]state.RoutingTable) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tDESTINATION\tCOST\tNEXT HOP")
	nodes := expmaps.Keys(tables)
	slices.Sort(nodes)
	for _, node := range nodes {
		table := tables[node]
		dests := expmaps.Keys(table)
		slices.Sort(dests)
		for _, dest := range dests {
			route := table[dest]
			nh := string(route.NextHop)
			if nh == "" {
				nh = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", node, dest, route.Cost, nh)
		}
	}
	return tw.Flush()
}

// Ribs writes every node's selected AS-paths.
func Ribs(w io.Writer, ribs map[state.NodeId]state.Rib, prefixes []state.Prefix) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tPREFIX\tAS-PATH\tHOPS\tNEXT HOP")
	nodes := expmaps.Keys(ribs)
	slices.Sort(nodes)
	for _, node := range nodes {
		rib := ribs[node]
		for _, prefix := range prefixes {
			path, ok := rib[prefix]
			if !ok {
				fmt.Fprintf(tw, "%s\t%s\tunreachable\tinf\t-\n", node, prefix)
				continue
			}
			// the head of a stored path is the advertiser it was learned
			// from, which is the next hop; an originated prefix has the node
			// itself at the head and zero hops
			nh := path[0]
			hops := len(path)
			if nh == node {
				hops--
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", node, prefix, path, hops, nh)
		}
	}
	return tw.Flush()
}

// Convergence writes a one-line run summary followed by the per-round change
// counts, keeping "converged in R rounds" visibly distinct from "gave up
// after R rounds".
func Convergence(w io.Writer, res core.Result) {
	if res.Converged {
		fmt.Fprintf(w, "converged after %d rounds\n", res.Rounds)
	} else {
		fmt.Fprintf(w, "gave up after %d rounds, still %d changes in the last round\n",
			res.Rounds, res.LastChanges())
	}
	counts := make([]string, len(res.Changes))
	for i, c := range res.Changes {
		counts[i] = strconv.Itoa(c)
	}
	fmt.Fprintf(w, "changes per round: %s\n", strings.Join(counts, ", "))
}
