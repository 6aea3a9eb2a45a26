package arena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qboxing/internal/config"
	"qboxing/internal/util"
)

func TestSelectActionGreedyPicksBestLegal(t *testing.T) {
	cfg := config.Default()
	ag := NewAgent("red", cfg, util.New(1))
	ag.Epsilon = 0
	s := State{Dist: BucketClose}

	ag.Q.Set(s, ActionAdvance, 0.5)
	ag.Q.Set(s, ActionPunchClose, 2.0)
	ag.Q.Set(s, ActionIdle, 1.0)

	got := ag.SelectAction(s, []Action{ActionAdvance, ActionPunchClose, ActionIdle})
	assert.Equal(t, ActionPunchClose, got)
}

func TestSelectActionIgnoresIllegalHighValue(t *testing.T) {
	cfg := config.Default()
	ag := NewAgent("red", cfg, util.New(1))
	ag.Epsilon = 0
	s := State{Dist: BucketClose}

	// the far punch has the best value but is not in the legal set
	ag.Q.Set(s, ActionPunchFar, 10)
	ag.Q.Set(s, ActionRetreat, 0.2)

	got := ag.SelectAction(s, []Action{ActionAdvance, ActionRetreat, ActionIdle})
	assert.Equal(t, ActionRetreat, got)
}

func TestSelectActionTieBreaksByEnumerationOrder(t *testing.T) {
	cfg := config.Default()
	ag := NewAgent("red", cfg, util.New(1))
	ag.Epsilon = 0
	s := State{Dist: BucketMedium}

	// all zero: first legal action wins
	got := ag.SelectAction(s, []Action{ActionRetreat, ActionDodge, ActionIdle})
	assert.Equal(t, ActionRetreat, got)
}

func TestSelectActionNeverLeavesLegalSet(t *testing.T) {
	cfg := config.Default()
	ag := NewAgent("red", cfg, util.New(7))
	ag.Epsilon = 1 // pure exploration
	s := State{Dist: BucketFar}
	legal := []Action{ActionAdvance, ActionIdle}

	for i := 0; i < 500; i++ {
		got := ag.SelectAction(s, legal)
		require.Contains(t, legal, got)
	}
}

func TestUpdateMovesTowardTarget(t *testing.T) {
	cfg := config.Default()
	ag := NewAgent("red", cfg, util.New(1))
	s := State{Dist: BucketClose}
	next := State{Dist: BucketMedium}

	ag.Update(s, ActionPunchClose, 10, next, false)
	got := ag.Q.Get(s, ActionPunchClose)
	assert.InDelta(t, cfg.Learn.Alpha*10, got, 1e-9)
}

func TestUpdateTerminalDropsBootstrap(t *testing.T) {
	cfg := config.Default()
	ag := NewAgent("red", cfg, util.New(1))
	s := State{Dist: BucketClose}
	next := State{Dist: BucketMedium}
	ag.Q.Set(next, ActionIdle, 100) // would leak in if bootstrapped

	ag.Update(s, ActionIdle, 1, next, true)
	assert.InDelta(t, cfg.Learn.Alpha*1, ag.Q.Get(s, ActionIdle), 1e-9)
}

// Repeated zero-reward updates against a fixed next-state value must
// converge Q(s,a) monotonically toward gamma*V.
func TestUpdateConvergesToDiscountedValue(t *testing.T) {
	cfg := config.Default()
	ag := NewAgent("red", cfg, util.New(1))
	s := State{Dist: BucketClose}
	next := State{Dist: BucketMedium}

	const v = 8.0
	ag.Q.Set(next, ActionIdle, v)
	target := cfg.Learn.Gamma * v

	prevGap := math.Abs(ag.Q.Get(s, ActionAdvance) - target)
	for i := 0; i < 500; i++ {
		ag.Update(s, ActionAdvance, 0, next, false)
		gap := math.Abs(ag.Q.Get(s, ActionAdvance) - target)
		require.LessOrEqual(t, gap, prevGap, "divergence at iteration %d", i)
		prevGap = gap
	}
	assert.InDelta(t, target, ag.Q.Get(s, ActionAdvance), 1e-6)
}

func TestDecayEpsilonMonotoneWithFloor(t *testing.T) {
	cfg := config.Default()
	ag := NewAgent("red", cfg, util.New(1))

	prev := ag.Epsilon
	for i := 0; i < 20000; i++ {
		ag.DecayEpsilon()
		require.LessOrEqual(t, ag.Epsilon, prev)
		prev = ag.Epsilon
	}
	assert.Equal(t, cfg.Learn.EpsilonMin, ag.Epsilon)
}
