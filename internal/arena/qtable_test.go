package arena

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQTableLazyDefault(t *testing.T) {
	q := NewQTable(1000)
	s := State{Dist: BucketClose}

	assert.Zero(t, q.Get(s, ActionIdle))
	assert.Zero(t, q.Max(s))
	assert.Zero(t, q.Len())
}

func TestQTableMaxOverAllActions(t *testing.T) {
	q := NewQTable(1000)
	s := State{Dist: BucketMedium, Energy: EnergyHigh}

	q.Set(s, ActionAdvance, -2)
	q.Set(s, ActionPunchClose, 3.5)
	q.Set(s, ActionIdle, 1)
	assert.Equal(t, 3.5, q.Max(s))

	// all-negative values: max is the least negative, not the zero default
	s2 := State{Dist: BucketFar}
	for a := Action(0); a < actionCount; a++ {
		q.Set(s2, a, -5+float64(a)*0.1)
	}
	assert.InDelta(t, -5+float64(actionCount-1)*0.1, q.Max(s2), 1e-9)
}

func TestQTableSaveLoadRoundTrip(t *testing.T) {
	q := NewQTable(1000)
	s1 := State{Dist: BucketClose, Energy: EnergyLow, PunchReady: true}
	s2 := State{Dist: BucketOutOfRange, TimeBucket: 3, DodgeReady: true}
	q.Set(s1, ActionPunchClose, 1.25)
	q.Set(s1, ActionDodge, -0.75)
	q.Set(s2, ActionAdvance, 0.001953125)

	path := filepath.Join(t.TempDir(), "q.json")
	require.NoError(t, q.Save(path))

	loaded := NewQTable(1000)
	require.NoError(t, loaded.Load(path))

	assert.Equal(t, q.Len(), loaded.Len())
	assert.Equal(t, 1.25, loaded.Get(s1, ActionPunchClose))
	assert.Equal(t, -0.75, loaded.Get(s1, ActionDodge))
	assert.Equal(t, 0.001953125, loaded.Get(s2, ActionAdvance))
}

func TestQTableLoadMissingFile(t *testing.T) {
	q := NewQTable(1000)
	assert.Error(t, q.Load(filepath.Join(t.TempDir(), "absent.json")))
}
