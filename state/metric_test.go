package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddCost(t *testing.T) {
	assert.Equal(t, Cost(3), AddCost(1, 2))
	assert.Equal(t, Cost(0), AddCost(0, 0))
}

func TestAddCost_Saturates(t *testing.T) {
	assert.Equal(t, Inf, AddCost(Inf, 1))
	assert.Equal(t, Inf, AddCost(1, Inf))
	assert.Equal(t, Inf, AddCost(Inf, Inf))
	// near-sentinel sums must clamp, never wrap into a small cost
	assert.Equal(t, Inf, AddCost(Inf-1, 2))
	assert.Equal(t, Inf-1, AddCost(Inf-2, 1))
}

func TestCostString(t *testing.T) {
	assert.Equal(t, "7", Cost(7).String())
	assert.Equal(t, "inf", Inf.String())
}
