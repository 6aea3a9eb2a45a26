package arena

import (
	"fmt"

	"qboxing/internal/config"
)

// DistBucket discretizes the gap between the two fighters. Out of range is
// its own bucket because it changes the legal action set, not just the
// damage roll.
type DistBucket int

const (
	BucketClose DistBucket = iota
	BucketMedium
	BucketFar
	BucketOutOfRange
)

var bucketNames = [...]string{"close", "medium", "far", "out_of_range"}

func (b DistBucket) String() string {
	if b < 0 || int(b) >= len(bucketNames) {
		return "unknown"
	}
	return bucketNames[b]
}

// EnergyBucket is a coarse thirds split of an energy bar.
type EnergyBucket int

const (
	EnergyLow EnergyBucket = iota
	EnergyMedium
	EnergyHigh
)

// State is the discrete observation a fighter learns over. It is computed
// fresh each tick and used only as a Q-table key.
type State struct {
	Dist        DistBucket
	Energy      EnergyBucket
	OppEnergy   EnergyBucket
	TimeBucket  int
	PunchReady  bool
	DodgeReady  bool
	CounterOpen bool
}

// Key renders the state as a stable Q-table key.
func (s State) Key() string {
	return fmt.Sprintf("%d.%d.%d.%d.%d%d%d",
		s.Dist, s.Energy, s.OppEnergy, s.TimeBucket,
		b2i(s.PunchReady), b2i(s.DodgeReady), b2i(s.CounterOpen))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Encoder maps continuous fighter state into State. Pure and deterministic;
// bucket boundaries come from the config.
type Encoder struct {
	cfg *config.Config
}

func NewEncoder(cfg *config.Config) *Encoder {
	return &Encoder{cfg: cfg}
}

// Bucket classifies a gap distance.
func (e *Encoder) Bucket(gap float64) DistBucket {
	switch {
	case gap <= e.cfg.CloseMax:
		return BucketClose
	case gap <= e.cfg.MediumMax:
		return BucketMedium
	case gap <= e.cfg.FarMax:
		return BucketFar
	default:
		return BucketOutOfRange
	}
}

func (e *Encoder) energyBucket(energy, max float64) EnergyBucket {
	frac := energy / max
	switch {
	case frac < 1.0/3.0:
		return EnergyLow
	case frac < 2.0/3.0:
		return EnergyMedium
	default:
		return EnergyHigh
	}
}

func (e *Encoder) timeBucket(ticksLeft int) int {
	frac := float64(ticksLeft) / float64(e.cfg.RoundTicks)
	switch {
	case frac > 0.75:
		return 0
	case frac > 0.50:
		return 1
	case frac > 0.25:
		return 2
	default:
		return 3
	}
}

// Encode builds the observing fighter's state from its own perspective.
func (e *Encoder) Encode(self, opp *Fighter, ticksLeft int) State {
	return State{
		Dist:        e.Bucket(gap(self, opp)),
		Energy:      e.energyBucket(self.Energy, e.cfg.MaxEnergy),
		OppEnergy:   e.energyBucket(opp.Energy, e.cfg.MaxEnergy),
		TimeBucket:  e.timeBucket(ticksLeft),
		PunchReady:  self.PunchCD == 0,
		DodgeReady:  self.DodgeCD == 0,
		CounterOpen: self.CounterWindow > 0,
	}
}
