package core

// Link-state simulation in the style of OSPF (RFC 2328): links are announced
// in sequence-numbered advertisements and every node floods its whole
// database every round; receivers keep only the strictly newest record per
// link. Once the databases are identical everywhere, routing tables are
// extracted with Dijkstra (see spf.go).

import (
	"maps"

	"github.com/google/go-cmp/cmp"

	"github.com/routelab/routelab/state"
)

// Lsa is one link-state advertisement.
type Lsa struct {
	Link   state.Link
	Origin state.NodeId
	Seq    uint64
	Cost   state.Cost
}

// Lsdb is a node's link-state database: the newest known record per link.
type Lsdb map[state.Link]Lsa

// Clone returns a deep copy, used as the flooded advertisement.
func (db Lsdb) Clone() Lsdb {
	return maps.Clone(db)
}

// LinkState holds the database of every node. It implements RuleSet[Lsdb].
type LinkState struct {
	topo *state.Topology
	dbs  map[state.NodeId]Lsdb
	// seq is the per-node origination counter; sequence numbers for links
	// originated by a node start at 1 and are monotonically increasing.
	seq map[state.NodeId]uint64
}

// NewLinkState originates the initial advertisements and installs them
// directly into the originators' databases. Every link has exactly one
// originator, its canonical lower endpoint: with two independent per-node
// counters a shared link could be announced twice under equal sequence
// numbers, and the databases could never become identical.
func NewLinkState(topo *state.Topology) *LinkState {
	ls := &LinkState{
		topo: topo,
		dbs:  make(map[state.NodeId]Lsdb),
		seq:  make(map[state.NodeId]uint64),
	}
	for _, id := range topo.Nodes() {
		ls.dbs[id] = make(Lsdb)
	}
	for _, id := range topo.Nodes() {
		for _, link := range topo.IncidentLinks(id) {
			if link.A != id {
				continue
			}
			cost, _ := topo.LinkCost(link.A, link.B)
			ls.originate(id, link, cost)
		}
	}
	return ls
}

func (ls *LinkState) originate(id state.NodeId, link state.Link, cost state.Cost) {
	ls.seq[id]++
	ls.dbs[id][link] = Lsa{
		Link:   link,
		Origin: id,
		Seq:    ls.seq[id],
		Cost:   cost,
	}
}

// Advertisement floods the node's entire database. A production protocol
// floods only deltas; full flooding does not change the converged result.
func (ls *LinkState) Advertisement(id state.NodeId) Lsdb {
	return ls.dbs[id].Clone()
}

// Deliver merges a neighbour's database into the receiver's. A record is
// accepted only when the link is unknown or the received sequence number is
// strictly greater than the stored one; equal or older records are stale
// duplicates and are dropped silently.
func (ls *LinkState) Deliver(to, from state.NodeId, adv Lsdb) bool {
	db := ls.dbs[to]
	changed := false
	for link, lsa := range adv {
		existing, ok := db[link]
		if !ok || lsa.Seq > existing.Seq {
			db[link] = lsa
			changed = true
		}
	}
	return changed
}

// Database returns a copy of the node's current database.
func (ls *LinkState) Database(id state.NodeId) Lsdb {
	return ls.dbs[id].Clone()
}

// Synchronized reports whether every node's database is identical, the
// defining property of converged flooding.
func (ls *LinkState) Synchronized() bool {
	nodes := ls.topo.Nodes()
	if len(nodes) == 0 {
		return true
	}
	ref := ls.dbs[nodes[0]]
	for _, id := range nodes[1:] {
		if !cmp.Equal(ref, ls.dbs[id]) {
			return false
		}
	}
	return true
}
