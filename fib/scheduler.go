package fib

import (
	"cmp"
	"net/netip"
	"slices"
)

// Packet is the unit the schedulers order. Priority 0 is the highest.
type Packet struct {
	Src      netip.Addr
	Dst      netip.Addr
	Payload  string
	Priority int
}

// FifoOrder returns the send order of a FIFO scheduler: arrival order,
// untouched. The input is copied, never mutated.
func FifoOrder(arrived []Packet) []Packet {
	return slices.Clone(arrived)
}

// PriorityOrder returns the send order of a strict-priority scheduler. The
// sort is stable so packets of equal priority keep their arrival order.
func PriorityOrder(arrived []Packet) []Packet {
	out := slices.Clone(arrived)
	slices.SortStableFunc(out, func(a, b Packet) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return out
}
