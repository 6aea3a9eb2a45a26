package arena

import (
	"math/rand"

	"qboxing/internal/config"
)

// Outcome describes how one punch resolved. The round controller applies
// the damage and any side effects; the resolver itself mutates nothing.
type Outcome struct {
	Damage   float64
	Missed   bool
	Dodged   bool
	Super    bool
	Knockout bool
	Counter  bool
}

// Resolver computes stochastic punch damage. Every roll comes from the
// single rng stream threaded through the simulation, so a fixed seed
// reproduces identical fights.
type Resolver struct {
	cfg   *config.Config
	space *ActionSpace
}

func NewResolver(cfg *config.Config, space *ActionSpace) *Resolver {
	return &Resolver{cfg: cfg, space: space}
}

// triangular draws from a triangular distribution on [lo, hi] peaked at
// mode, using the sum of two uniforms.
func triangular(rng *rand.Rand, lo, hi, mode float64) float64 {
	t := rng.Float64() + rng.Float64()
	if t < 1 {
		return lo + (mode-lo)*t
	}
	return hi - (hi-mode)*(2-t)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Resolve resolves attacker's action against defender at the tick-start
// gap and bucket. energyFrac is the attacker's energy fraction at tick
// start, before the punch cost was charged; the whole resolution works
// from that snapshot. Non-punch actions resolve to zero damage. The
// attacker is guaranteed affordable energy by the action space, so no
// energy check happens here.
func (r *Resolver) Resolve(attacker, defender *Fighter, action Action, energyFrac, dist float64, bucket DistBucket, rng *rand.Rand) Outcome {
	if !action.IsPunch() {
		return Outcome{}
	}

	pc := r.space.punch(action)
	if dist > pc.Reach {
		return Outcome{Missed: true}
	}

	// A live dodge window gambles on full negation; the dodger paid its
	// cost regardless of the roll.
	if defender.Dodging() && rng.Float64() < r.cfg.Dodge.EvadeProb {
		return Outcome{Dodged: true}
	}

	d := r.cfg.Damage
	mode := pc.DamageMin + (pc.DamageMax-pc.DamageMin)*d.ModeRatio
	dmg := triangular(rng, pc.DamageMin, pc.DamageMax, mode)

	dmg *= lerp(d.EnergyMultMin, d.EnergyMultMax, clamp(energyFrac, 0, 1))

	if bucket != action.IdealBucket() {
		dmg *= d.MismatchMult
	}

	dmg *= lerp(d.ChaosMin, d.ChaosMax, rng.Float64())

	out := Outcome{}
	if attacker.CounterWindow > 0 {
		dmg *= r.cfg.Dodge.CounterMult
		out.Counter = true
	}

	// Super Punch replaces the computed damage outright; none of the
	// modifiers above survive it.
	if rng.Float64() < d.SuperChance {
		dmg = d.SuperMin + (d.SuperMax-d.SuperMin)*rng.Float64()
		out.Super = true
	}

	if rng.Float64() < defender.KnockoutVuln {
		out.Knockout = true
	}

	out.Damage = dmg
	return out
}
