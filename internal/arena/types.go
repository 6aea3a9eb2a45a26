package arena

import (
	"encoding/json"
	"math"

	"qboxing/internal/config"
)

// Event is one entry of the observation stream handed to a renderer or a
// log sink. Payload values are plain JSON-friendly types.
type Event struct {
	Tick    int            `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Fighter is the mutable per-round combat state of one boxer. It is owned
// by the round controller; other code sees it read-only.
type Fighter struct {
	ID     string
	Pos    float64
	Health float64
	Energy float64

	PunchCD       int
	DodgeCD       int
	DodgeTimer    int
	CounterWindow int

	LastAction Action
	KnockedOut bool

	// Carried across rounds within a fight.
	KnockoutVuln float64
	carryDamage  float64
	roundLost    bool

	startPos float64
}

// NewFighter creates a fighter standing at pos, ready for a first round.
func NewFighter(id string, pos float64, cfg *config.Config) *Fighter {
	f := &Fighter{
		ID:           id,
		Pos:          pos,
		startPos:     pos,
		Health:       cfg.MaxHealth,
		Energy:       cfg.MaxEnergy,
		KnockoutVuln: cfg.KnockoutChance,
		LastAction:   ActionIdle,
	}
	return f
}

// Reset prepares the fighter for the next round. A round loss carries
// accumulated damage into the new starting health, floored at the
// configured minimum.
func (f *Fighter) Reset(cfg *config.Config) {
	if f.roundLost {
		f.carryDamage += cfg.CarryDamagePerLoss
	}
	maxCarry := math.Max(0, cfg.MaxHealth-cfg.MinStartHealth)
	f.carryDamage = clamp(f.carryDamage, 0, maxCarry)

	f.Health = math.Max(cfg.MinStartHealth, cfg.MaxHealth-f.carryDamage)
	f.Energy = cfg.MaxEnergy
	f.Pos = f.startPos
	f.PunchCD = 0
	f.DodgeCD = 0
	f.DodgeTimer = 0
	f.CounterWindow = 0
	f.LastAction = ActionIdle
	f.KnockedOut = false
	f.roundLost = false
}

// Dodging reports whether the fighter is inside an active dodge window.
func (f *Fighter) Dodging() bool { return f.DodgeTimer > 0 }

func (f *Fighter) tickTimers() {
	if f.PunchCD > 0 {
		f.PunchCD--
	}
	if f.DodgeCD > 0 {
		f.DodgeCD--
	}
	if f.DodgeTimer > 0 {
		f.DodgeTimer--
	}
	if f.CounterWindow > 0 {
		f.CounterWindow--
	}
}

// FighterView is the read-only copy of a fighter exposed to observers.
type FighterView struct {
	ID         string  `json:"id"`
	Pos        float64 `json:"pos"`
	Health     float64 `json:"health"`
	Energy     float64 `json:"energy"`
	LastAction string  `json:"last_action"`
	Dodging    bool    `json:"dodging"`
	KnockedOut bool    `json:"knocked_out"`
}

func (f *Fighter) view() FighterView {
	return FighterView{
		ID:         f.ID,
		Pos:        f.Pos,
		Health:     f.Health,
		Energy:     f.Energy,
		LastAction: f.LastAction.String(),
		Dodging:    f.Dodging(),
		KnockedOut: f.KnockedOut,
	}
}

// TickSnapshot is a value copy of the visible simulation state after a tick.
type TickSnapshot struct {
	Tick      int         `json:"tick"`
	TicksLeft int         `json:"ticks_left"`
	A         FighterView `json:"a"`
	B         FighterView `json:"b"`
}

func gap(a, b *Fighter) float64 {
	return math.Abs(a.Pos - b.Pos)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MarshalPretty renders any result structure as indented JSON.
func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
