package arena

import "qboxing/internal/config"

// tickOutcome collects what happened to one fighter during a tick, as seen
// for reward attribution.
type tickOutcome struct {
	action     Action
	dmgDealt   float64
	dmgTaken   float64
	distBefore float64
	distAfter  float64
	ticksLeft  int
	energyFrac float64

	punchMissed bool
	dodged      bool // this fighter evaded an incoming punch
	gotDodged   bool // this fighter's punch was evaded
	counterHit  bool // this fighter landed a counter-window punch
}

// shapeReward turns a tick outcome into the scalar learning signal.
// Terminal win/lose bonuses are added by the round controller.
func shapeReward(rc *config.RewardConfig, o tickOutcome) float64 {
	r := rc.Base
	r += rc.DamageDealt * o.dmgDealt
	r -= rc.DamageTaken * o.dmgTaken

	if o.dodged {
		r += rc.DodgeSuccess
	}
	if o.gotDodged {
		r += rc.GotDodged
	}
	if o.counterHit {
		r += rc.CounterHit
	}

	if o.distBefore > rc.CloseFrom {
		shrink := o.distBefore - o.distAfter
		if shrink > 0 {
			r += rc.Close * shrink
		}
	}
	if o.distBefore > rc.FarFrom {
		r += rc.FarStep
	}
	if o.punchMissed {
		r += rc.PunchMiss
	}
	if o.action == ActionIdle && o.distBefore > rc.FarFrom && o.energyFrac*100 > rc.IdleFarEnergy {
		r += rc.IdleFar
	}
	if o.action.IsPunch() && o.energyFrac < rc.LowEnergyFrac {
		r += rc.LowEnergyWaste
	}
	if o.ticksLeft <= rc.EndgameTicks && o.distBefore > rc.EndgameGap {
		r += rc.Endgame
	}
	return r
}
