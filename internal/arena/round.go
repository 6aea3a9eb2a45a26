package arena

import (
	"math"
	"math/rand"

	"github.com/golang/glog"

	"qboxing/internal/config"
)

// RoundStatus tracks the round state machine: Active until a knockout or
// the clock ends it.
type RoundStatus int

const (
	RoundActive RoundStatus = iota
	RoundKnockedOut
	RoundTimedOut
)

const (
	ReasonKnockout = "knockout"
	ReasonTimeout  = "timeout"
)

// RoundResult is the immutable outcome of a finished round. Winner is the
// fighter id, or empty for a draw.
type RoundResult struct {
	Winner  string  `json:"winner,omitempty"`
	Reason  string  `json:"reason"`
	Ticks   int     `json:"ticks"`
	HealthA float64 `json:"health_a"`
	HealthB float64 `json:"health_b"`
}

// RoundController runs one timed round as a discrete tick loop with
// simultaneous-move semantics: both actions are chosen from the same
// tick-start snapshot, then both take effect together.
type RoundController struct {
	cfg      *config.Config
	enc      *Encoder
	space    *ActionSpace
	resolver *Resolver
	rng      *rand.Rand
	emit     func(Event)

	agentA, agentB *Agent
	fa, fb         *Fighter

	tick   int
	status RoundStatus
	result RoundResult
}

func NewRound(cfg *config.Config, agentA, agentB *Agent, fa, fb *Fighter, rng *rand.Rand, emit func(Event)) *RoundController {
	if emit == nil {
		emit = func(Event) {}
	}
	space := NewActionSpace(cfg)
	return &RoundController{
		cfg:      cfg,
		enc:      NewEncoder(cfg),
		space:    space,
		resolver: NewResolver(cfg, space),
		rng:      rng,
		emit:     emit,
		agentA:   agentA,
		agentB:   agentB,
		fa:       fa,
		fb:       fb,
	}
}

// Status returns the current state of the round machine.
func (r *RoundController) Status() RoundStatus { return r.status }

// Result is valid once Status is terminal.
func (r *RoundController) Result() RoundResult { return r.result }

// Snapshot exposes the visible state after the last tick as a value copy;
// an observer cannot mutate the simulation through it.
func (r *RoundController) Snapshot() TickSnapshot {
	return TickSnapshot{
		Tick:      r.tick,
		TicksLeft: r.cfg.RoundTicks - r.tick,
		A:         r.fa.view(),
		B:         r.fb.view(),
	}
}

// Run drives the round to termination.
func (r *RoundController) Run() RoundResult {
	for !r.Step() {
	}
	return r.result
}

// Step advances the round by one tick and reports whether it terminated.
// Calling Step on a finished round is a no-op returning true.
func (r *RoundController) Step() bool {
	return r.StepWith(nil, nil)
}

// StepWith lets an external driver force one or both actions. A forced
// action outside the legal set is substituted with idle and logged rather
// than aborting the round.
func (r *RoundController) StepWith(forceA, forceB *Action) bool {
	if r.status != RoundActive {
		return true
	}

	ticksLeft := r.cfg.RoundTicks - r.tick
	distBefore := gap(r.fa, r.fb)
	bucket := r.enc.Bucket(distBefore)

	sA := r.enc.Encode(r.fa, r.fb, ticksLeft)
	sB := r.enc.Encode(r.fb, r.fa, ticksLeft)

	actA := r.pickAction(r.agentA, r.fa, sA, bucket, forceA)
	actB := r.pickAction(r.agentB, r.fb, sB, bucket, forceB)
	r.fa.LastAction = actA
	r.fb.LastAction = actB

	outA := tickOutcome{action: actA, distBefore: distBefore, ticksLeft: ticksLeft,
		energyFrac: r.fa.Energy / r.cfg.MaxEnergy}
	outB := tickOutcome{action: actB, distBefore: distBefore, ticksLeft: ticksLeft,
		energyFrac: r.fb.Energy / r.cfg.MaxEnergy}

	r.payAndArm(r.fa, actA)
	r.payAndArm(r.fb, actB)

	r.move(r.fa, r.fb, actA)
	r.move(r.fb, r.fa, actB)
	r.separate()

	// Combat uses the tick-start distance, bucket and energy for both
	// fighters, so simultaneous movement or the punch's own cost cannot
	// sidestep the snapshot semantics. Both punches resolve independently
	// from the same snapshot; both can land.
	r.resolvePunch(r.fa, r.fb, actA, distBefore, bucket, &outA, &outB)
	r.resolvePunch(r.fb, r.fa, actB, distBefore, bucket, &outB, &outA)

	r.fa.Health = clamp(r.fa.Health, 0, r.cfg.MaxHealth)
	r.fb.Health = clamp(r.fb.Health, 0, r.cfg.MaxHealth)

	r.regen(r.fa, actA)
	r.regen(r.fb, actB)

	r.fa.tickTimers()
	r.fb.tickTimers()
	r.tick++

	distAfter := gap(r.fa, r.fb)
	outA.distAfter = distAfter
	outB.distAfter = distAfter

	koA := r.fa.Health <= 0
	koB := r.fb.Health <= 0
	if koA {
		r.fa.KnockedOut = true
	}
	if koB {
		r.fb.KnockedOut = true
	}

	done := koA || koB || r.tick >= r.cfg.RoundTicks

	rA := shapeReward(&r.cfg.Rewards, outA)
	rB := shapeReward(&r.cfg.Rewards, outB)

	if koA || koB {
		r.status = RoundKnockedOut
		switch {
		case koA && koB:
			// double knockout, no terminal bonus either way
			r.result = RoundResult{Reason: ReasonKnockout}
		case koB:
			rA += r.cfg.Rewards.Win
			rB += r.cfg.Rewards.Lose
			r.result = RoundResult{Winner: r.fa.ID, Reason: ReasonKnockout}
		default:
			rA += r.cfg.Rewards.Lose
			rB += r.cfg.Rewards.Win
			r.result = RoundResult{Winner: r.fb.ID, Reason: ReasonKnockout}
		}
	} else if done {
		r.status = RoundTimedOut
		switch {
		case r.fa.Health > r.fb.Health:
			r.result = RoundResult{Winner: r.fa.ID, Reason: ReasonTimeout}
		case r.fb.Health > r.fa.Health:
			r.result = RoundResult{Winner: r.fb.ID, Reason: ReasonTimeout}
		default:
			r.result = RoundResult{Reason: ReasonTimeout}
		}
	}

	nextLeft := r.cfg.RoundTicks - r.tick
	s2A := r.enc.Encode(r.fa, r.fb, nextLeft)
	s2B := r.enc.Encode(r.fb, r.fa, nextLeft)

	r.agentA.Update(sA, actA, rA, s2A, done)
	r.agentB.Update(sB, actB, rB, s2B, done)
	r.agentA.DecayEpsilon()
	r.agentB.DecayEpsilon()

	if done {
		r.result.Ticks = r.tick
		r.result.HealthA = r.fa.Health
		r.result.HealthB = r.fb.Health
		r.emit(Event{Tick: r.tick, Type: "RoundEnd", Payload: map[string]any{
			"winner": r.result.Winner, "reason": r.result.Reason,
			"health_a": r.fa.Health, "health_b": r.fb.Health,
		}})
	}
	return done
}

func (r *RoundController) pickAction(ag *Agent, f *Fighter, s State, bucket DistBucket, forced *Action) Action {
	if forced != nil {
		if r.space.Legal(f, bucket, *forced) {
			return *forced
		}
		glog.Warningf("fighter %s: illegal action %s substituted with idle", f.ID, forced.String())
		return ActionIdle
	}
	return ag.SelectAction(s, r.space.LegalActions(f, bucket))
}

// payAndArm charges the action's energy cost and starts its timers. The
// action space already rejected anything unaffordable.
func (r *RoundController) payAndArm(f *Fighter, act Action) {
	switch {
	case act.IsPunch():
		pc := r.space.punch(act)
		f.Energy -= pc.Cost
		f.PunchCD = pc.Cooldown
	case act == ActionDodge:
		f.Energy -= r.cfg.Dodge.Cost
		f.DodgeCD = r.cfg.Dodge.Cooldown
		f.DodgeTimer = r.cfg.Dodge.ActiveTicks
		r.emit(Event{Tick: r.tick, Type: "Dodge", Payload: map[string]any{"id": f.ID}})
	}
	if f.Energy < 0 {
		f.Energy = 0
	}
}

func (r *RoundController) move(f, opp *Fighter, act Action) {
	if act != ActionAdvance && act != ActionRetreat {
		return
	}
	dir := 1.0
	if opp.Pos < f.Pos {
		dir = -1.0
	}
	if act == ActionRetreat {
		dir = -dir
	}
	old := f.Pos
	f.Pos = clamp(f.Pos+dir*r.cfg.Speed, 0, r.cfg.ArenaLength)
	if f.Pos != old {
		r.emit(Event{Tick: r.tick, Type: "Move", Payload: map[string]any{
			"id": f.ID, "from": old, "to": f.Pos,
		}})
	}
}

// separate keeps the bodies from overlapping by pushing both fighters
// apart symmetrically.
func (r *RoundController) separate() {
	d := gap(r.fa, r.fb)
	if d >= r.cfg.BodyGap {
		return
	}
	push := (r.cfg.BodyGap - d) / 2
	if r.fa.Pos <= r.fb.Pos {
		r.fa.Pos = clamp(r.fa.Pos-push, 0, r.cfg.ArenaLength)
		r.fb.Pos = clamp(r.fb.Pos+push, 0, r.cfg.ArenaLength)
	} else {
		r.fa.Pos = clamp(r.fa.Pos+push, 0, r.cfg.ArenaLength)
		r.fb.Pos = clamp(r.fb.Pos-push, 0, r.cfg.ArenaLength)
	}
}

func (r *RoundController) resolvePunch(attacker, defender *Fighter, act Action, dist float64, bucket DistBucket, atk, def *tickOutcome) {
	if !act.IsPunch() {
		return
	}
	out := r.resolver.Resolve(attacker, defender, act, atk.energyFrac, dist, bucket, r.rng)
	switch {
	case out.Missed:
		atk.punchMissed = true
		r.emit(Event{Tick: r.tick, Type: "Miss", Payload: map[string]any{
			"id": attacker.ID, "punch": act.String(), "dist": dist,
		}})
	case out.Dodged:
		atk.gotDodged = true
		def.dodged = true
		defender.CounterWindow = r.cfg.Dodge.CounterWindow
		r.emit(Event{Tick: r.tick, Type: "Evaded", Payload: map[string]any{
			"attacker": attacker.ID, "defender": defender.ID, "punch": act.String(),
		}})
	default:
		dmg := out.Damage
		defender.Health = math.Max(0, defender.Health-dmg)
		if out.Knockout {
			defender.Health = 0
		}
		atk.dmgDealt += dmg
		def.dmgTaken += dmg
		if out.Counter {
			atk.counterHit = true
			attacker.CounterWindow = 0
		}
		r.emit(Event{Tick: r.tick, Type: "Hit", Payload: map[string]any{
			"attacker": attacker.ID, "defender": defender.ID, "punch": act.String(),
			"dmg": dmg, "health": defender.Health,
			"super": out.Super, "counter": out.Counter, "knockout": out.Knockout,
		}})
	}
}

func (r *RoundController) regen(f *Fighter, act Action) {
	moved := act == ActionAdvance || act == ActionRetreat || f.Dodging()
	rate := r.cfg.RegenIdle
	if moved {
		rate = r.cfg.RegenMove
	}
	f.Energy = clamp(f.Energy+rate, 0, r.cfg.MaxEnergy)
}
