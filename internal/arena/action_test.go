package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qboxing/internal/config"
)

func TestLegalActionsExcludeUnaffordablePunches(t *testing.T) {
	cfg := config.Default()
	space := NewActionSpace(cfg)
	f := NewFighter("red", 100, cfg)
	f.Energy = 25 // enough for close (20), not medium (30) or far (50)

	legal := space.LegalActions(f, BucketClose)
	assert.Contains(t, legal, ActionPunchClose)
	assert.NotContains(t, legal, ActionPunchMedium)
	assert.NotContains(t, legal, ActionPunchFar)
}

func TestLegalActionsNoPunchBelowEveryCost(t *testing.T) {
	cfg := config.Default()
	space := NewActionSpace(cfg)
	f := NewFighter("red", 100, cfg)
	f.Energy = 5

	for _, a := range space.LegalActions(f, BucketClose) {
		assert.False(t, a.IsPunch(), "punch %s should be illegal at energy 5", a)
	}
}

func TestOutOfRangeExcludesAllPunches(t *testing.T) {
	cfg := config.Default()
	space := NewActionSpace(cfg)
	f := NewFighter("red", 100, cfg)

	legal := space.LegalActions(f, BucketOutOfRange)
	for _, a := range legal {
		assert.False(t, a.IsPunch())
	}
	assert.Contains(t, legal, ActionAdvance)
	assert.Contains(t, legal, ActionRetreat)
	assert.Contains(t, legal, ActionIdle)
}

func TestPunchCooldownBlocksPunches(t *testing.T) {
	cfg := config.Default()
	space := NewActionSpace(cfg)
	f := NewFighter("red", 100, cfg)
	f.PunchCD = 10

	for _, a := range []Action{ActionPunchClose, ActionPunchMedium, ActionPunchFar} {
		assert.False(t, space.Legal(f, BucketClose, a))
	}
	assert.True(t, space.Legal(f, BucketClose, ActionDodge))
}

func TestDodgeRequiresEnergyAndCooldown(t *testing.T) {
	cfg := config.Default()
	space := NewActionSpace(cfg)

	f := NewFighter("red", 100, cfg)
	f.Energy = cfg.Dodge.Cost - 1
	assert.False(t, space.Legal(f, BucketMedium, ActionDodge))

	f.Energy = cfg.Dodge.Cost
	assert.True(t, space.Legal(f, BucketMedium, ActionDodge))

	f.DodgeCD = 1
	assert.False(t, space.Legal(f, BucketMedium, ActionDodge))
}

func TestLegalActionsNeverEmpty(t *testing.T) {
	cfg := config.Default()
	space := NewActionSpace(cfg)
	f := NewFighter("red", 100, cfg)
	f.Energy = 0
	f.PunchCD = 99
	f.DodgeCD = 99

	for _, b := range []DistBucket{BucketClose, BucketMedium, BucketFar, BucketOutOfRange} {
		assert.NotEmpty(t, space.LegalActions(f, b))
	}
}

func TestCosts(t *testing.T) {
	cfg := config.Default()
	space := NewActionSpace(cfg)

	assert.Equal(t, cfg.Punches.Close.Cost, space.Cost(ActionPunchClose))
	assert.Equal(t, cfg.Punches.Medium.Cost, space.Cost(ActionPunchMedium))
	assert.Equal(t, cfg.Punches.Far.Cost, space.Cost(ActionPunchFar))
	assert.Equal(t, cfg.Dodge.Cost, space.Cost(ActionDodge))
	assert.Zero(t, space.Cost(ActionAdvance))
	assert.Zero(t, space.Cost(ActionRetreat))
	assert.Zero(t, space.Cost(ActionIdle))
}
