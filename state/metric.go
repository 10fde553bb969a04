package state

import "strconv"

// Cost is a link or path cost. Costs are positive for real links; Inf is the
// "no route" sentinel and must never be produced by arithmetic overflow.
type Cost uint32

const (
	// Inf marks an unreachable destination.
	Inf = ^(Cost)(0)
)

// AddCost adds two costs, saturating at Inf.
func AddCost(a, b Cost) Cost {
	if a == Inf || b == Inf {
		return Inf
	}
	if a > Inf-b {
		return Inf
	}
	return a + b
}

func (c Cost) String() string {
	if c == Inf {
		return "inf"
	}
	return strconv.FormatUint(uint64(c), 10)
}
