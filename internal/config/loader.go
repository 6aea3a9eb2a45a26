package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads fight tuning from a yaml file on top of the defaults and
// validates the result, so a bad file never reaches a running round.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validate config %s", path)
	}
	return cfg, nil
}

// Validate fails fast on constants that would corrupt a simulation.
func (c *Config) Validate() error {
	if c.MaxHealth <= 0 || c.MaxEnergy <= 0 {
		return errors.Errorf("max_health and max_energy must be positive (got %.1f, %.1f)", c.MaxHealth, c.MaxEnergy)
	}
	if c.Speed <= 0 {
		return errors.New("speed must be positive")
	}
	if c.ArenaLength <= 0 || c.StartGap <= 0 || c.StartGap >= c.ArenaLength {
		return errors.Errorf("start_gap %.1f must fit inside arena_length %.1f", c.StartGap, c.ArenaLength)
	}
	if c.BodyGap < 0 {
		return errors.New("body_gap must not be negative")
	}
	if c.RoundTicks <= 0 {
		return errors.New("round_ticks must be positive")
	}
	if c.RoundsPerBout <= 0 {
		return errors.New("rounds_per_bout must be positive")
	}
	if !(c.CloseMax < c.MediumMax && c.MediumMax < c.FarMax) {
		return errors.Errorf("distance thresholds must be strictly increasing: %.1f, %.1f, %.1f",
			c.CloseMax, c.MediumMax, c.FarMax)
	}
	for _, p := range []struct {
		name string
		pc   PunchConfig
	}{
		{"close", c.Punches.Close},
		{"medium", c.Punches.Medium},
		{"far", c.Punches.Far},
	} {
		if p.pc.Cost < 0 {
			return errors.Errorf("punch %s: cost must not be negative", p.name)
		}
		if p.pc.Cooldown < 0 {
			return errors.Errorf("punch %s: cooldown must not be negative", p.name)
		}
		if p.pc.Reach <= 0 {
			return errors.Errorf("punch %s: reach must be positive", p.name)
		}
		if p.pc.DamageMin < 0 || p.pc.DamageMax < p.pc.DamageMin {
			return errors.Errorf("punch %s: damage range [%.1f, %.1f] invalid", p.name, p.pc.DamageMin, p.pc.DamageMax)
		}
	}
	if c.Dodge.Cost < 0 || c.Dodge.Cooldown < 0 || c.Dodge.ActiveTicks < 0 {
		return errors.New("dodge cost/cooldown/active_ticks must not be negative")
	}
	if c.Dodge.EvadeProb < 0 || c.Dodge.EvadeProb > 1 {
		return errors.Errorf("dodge evade_prob %.3f outside [0,1]", c.Dodge.EvadeProb)
	}
	if c.Dodge.CounterMult < 0 {
		return errors.New("dodge counter_mult must not be negative")
	}
	d := c.Damage
	if d.ModeRatio < 0 || d.ModeRatio > 1 {
		return errors.Errorf("damage mode_ratio %.3f outside [0,1]", d.ModeRatio)
	}
	if d.EnergyMultMin < 0 || d.EnergyMultMax < d.EnergyMultMin {
		return errors.New("damage energy multiplier range invalid")
	}
	if d.MismatchMult < 0 || d.ChaosMin < 0 || d.ChaosMax < d.ChaosMin {
		return errors.New("damage mismatch/chaos multipliers invalid")
	}
	if d.SuperChance < 0 || d.SuperChance > 1 {
		return errors.Errorf("super_chance %.4f outside [0,1]", d.SuperChance)
	}
	if d.SuperMin < 0 || d.SuperMax < d.SuperMin {
		return errors.New("super punch damage range invalid")
	}
	if c.RegenIdle < 0 || c.RegenMove < 0 {
		return errors.New("regen rates must not be negative")
	}
	if c.CarryDamagePerLoss < 0 {
		return errors.New("carry_damage_per_loss must not be negative")
	}
	if c.MinStartHealth < 0 || c.MinStartHealth > c.MaxHealth {
		return errors.Errorf("min_start_health %.1f outside [0, max_health]", c.MinStartHealth)
	}
	if c.KnockoutChance < 0 || c.KnockoutChance > 1 || c.KnockoutEscalation < 0 {
		return errors.New("knockout chance/escalation invalid")
	}
	l := c.Learn
	if l.Alpha < 0 || l.Alpha > 1 {
		return errors.Errorf("alpha %.3f outside [0,1]", l.Alpha)
	}
	if l.Gamma < 0 || l.Gamma > 1 {
		return errors.Errorf("gamma %.3f outside [0,1]", l.Gamma)
	}
	if l.Epsilon < 0 || l.Epsilon > 1 || l.EpsilonMin < 0 || l.EpsilonMin > l.Epsilon {
		return errors.Errorf("epsilon schedule invalid: start %.3f, min %.3f", l.Epsilon, l.EpsilonMin)
	}
	if l.EpsilonDecay <= 0 || l.EpsilonDecay > 1 {
		return errors.Errorf("epsilon_decay %.5f outside (0,1]", l.EpsilonDecay)
	}
	if c.StateSpaceWarnLimit <= 0 {
		return errors.New("state_space_warn_limit must be positive")
	}
	return nil
}
