package arena

import (
	"math/rand"

	"qboxing/internal/config"
)

// RoundRecord is one finished round in a fight, immutable once appended.
type RoundRecord struct {
	Round int `json:"round"`
	RoundResult
}

// FightRecord is the final account of a fight.
type FightRecord struct {
	Rounds []RoundRecord `json:"rounds"`
	WinsA  int           `json:"wins_a"`
	WinsB  int           `json:"wins_b"`
	Draws  int           `json:"draws"`
	// Winner holds the fighter id with strictly more round wins, empty on
	// a drawn fight.
	Winner string `json:"winner,omitempty"`
}

// FightController runs a sequence of rounds between two persistent agents.
// Fighter state is rebuilt each round; the Q-tables live for the whole
// fight and beyond.
type FightController struct {
	cfg  *config.Config
	rng  *rand.Rand
	emit func(Event)

	AgentA, AgentB *Agent
	fa, fb         *Fighter
}

// NewFight builds a fight from a validated config. The rng is the single
// random stream for every roll in the fight.
func NewFight(cfg *config.Config, agentA, agentB *Agent, rng *rand.Rand, emit func(Event)) *FightController {
	margin := (cfg.ArenaLength - cfg.StartGap) / 2
	return &FightController{
		cfg:    cfg,
		rng:    rng,
		emit:   emit,
		AgentA: agentA,
		AgentB: agentB,
		fa:     NewFighter(agentA.ID, margin, cfg),
		fb:     NewFighter(agentB.ID, margin+cfg.StartGap, cfg),
	}
}

// Run plays the configured number of rounds and tallies wins. The fight
// ends early once a lead can no longer be overturned.
func (fc *FightController) Run() FightRecord {
	rec := FightRecord{}
	for round := 1; round <= fc.cfg.RoundsPerBout; round++ {
		fc.fa.Reset(fc.cfg)
		fc.fb.Reset(fc.cfg)

		rc := NewRound(fc.cfg, fc.AgentA, fc.AgentB, fc.fa, fc.fb, fc.rng, fc.emit)
		res := rc.Run()
		rec.Rounds = append(rec.Rounds, RoundRecord{Round: round, RoundResult: res})

		switch res.Winner {
		case fc.fa.ID:
			rec.WinsA++
			fc.fb.roundLost = true
			if res.Reason == ReasonKnockout {
				fc.fb.KnockoutVuln += fc.cfg.KnockoutEscalation
			}
		case fc.fb.ID:
			rec.WinsB++
			fc.fa.roundLost = true
			if res.Reason == ReasonKnockout {
				fc.fa.KnockoutVuln += fc.cfg.KnockoutEscalation
			}
		default:
			rec.Draws++
		}

		if fc.decided(rec, fc.cfg.RoundsPerBout-round) {
			break
		}
	}

	switch {
	case rec.WinsA > rec.WinsB:
		rec.Winner = fc.fa.ID
	case rec.WinsB > rec.WinsA:
		rec.Winner = fc.fb.ID
	}
	return rec
}

// decided reports whether the current lead exceeds the rounds remaining.
func (fc *FightController) decided(rec FightRecord, roundsLeft int) bool {
	if rec.WinsA > rec.WinsB+roundsLeft {
		return true
	}
	return rec.WinsB > rec.WinsA+roundsLeft
}
